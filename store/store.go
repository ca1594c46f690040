package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	operational_train_number TEXT NOT NULL,
	advertised_train_number TEXT,
	bearing REAL,
	speed REAL,
	position_wgs84 TEXT,
	timestamp TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_positions_train ON positions(operational_train_number);
CREATE INDEX IF NOT EXISTS idx_positions_created_at ON positions(created_at);

CREATE TABLE IF NOT EXISTS announcements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	advertised_train_ident TEXT NOT NULL,
	activity_type TEXT,
	location_signature TEXT,
	from_location TEXT,
	to_location TEXT,
	advertised_time_at_location TEXT,
	time_at_location TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_announcements_ident ON announcements(advertised_train_ident);
CREATE INDEX IF NOT EXISTS idx_announcements_created_at ON announcements(created_at);`

// Store is the shared time-bounded store. Safe for concurrent use; sqlite
// serializes conflicting writes and WAL mode keeps reads from blocking them.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the sqlite database at path and ensures
// the schema exists. An empty path defaults to data/trains.db.
func Open(path string) (*Store, error) {
	if path == "" {
		path = filepath.Join("data", "trains.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertPosition appends a position row, assigning created_at.
func (s *Store) InsertPosition(p Position) error {
	_, err := s.db.Exec(`
		INSERT INTO positions(operational_train_number, advertised_train_number, bearing, speed, position_wgs84, timestamp, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		p.OperationalTrainNumber, p.AdvertisedTrainNumber, p.Bearing, p.Speed, p.PositionWGS84, p.TimeStamp,
		s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position for train %s: %w", p.OperationalTrainNumber, err)
	}
	return nil
}

// InsertAnnouncement appends an announcement row, assigning created_at.
func (s *Store) InsertAnnouncement(a Announcement) error {
	_, err := s.db.Exec(`
		INSERT INTO announcements(advertised_train_ident, activity_type, location_signature, from_location, to_location, advertised_time_at_location, time_at_location, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		a.AdvertisedTrainIdent, a.ActivityType, a.LocationSignature, a.FromLocation, a.ToLocation,
		a.AdvertisedTimeAtLocation, a.TimeAtLocation,
		s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert announcement for train %s: %w", a.AdvertisedTrainIdent, err)
	}
	return nil
}

// PositionsByTrain returns positions for an exact operational train number
// with created_at > since (ms epoch), newest first.
func (s *Store) PositionsByTrain(trainNumber string, since int64) ([]Position, error) {
	rows, err := s.db.Query(`
		SELECT id, operational_train_number, advertised_train_number, bearing, speed, position_wgs84, timestamp, created_at
		FROM positions
		WHERE operational_train_number = ? AND created_at > ?
		ORDER BY created_at DESC`,
		trainNumber, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions for train %s: %w", trainNumber, err)
	}
	defer rows.Close()
	return scanPositions(rows)
}

// RecentPositions returns the limit most recent positions across all trains.
func (s *Store) RecentPositions(limit int) ([]Position, error) {
	rows, err := s.db.Query(`
		SELECT id, operational_train_number, advertised_train_number, bearing, speed, position_wgs84, timestamp, created_at
		FROM positions
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent positions: %w", err)
	}
	defer rows.Close()
	return scanPositions(rows)
}

// AnnouncementsByTrain returns announcements for an exact advertised train
// ident with created_at > since (ms epoch), newest first.
func (s *Store) AnnouncementsByTrain(trainIdent string, since int64) ([]Announcement, error) {
	rows, err := s.db.Query(`
		SELECT id, advertised_train_ident, activity_type, location_signature, from_location, to_location, advertised_time_at_location, time_at_location, created_at
		FROM announcements
		WHERE advertised_train_ident = ? AND created_at > ?
		ORDER BY created_at DESC`,
		trainIdent, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements for train %s: %w", trainIdent, err)
	}
	defer rows.Close()
	return scanAnnouncements(rows)
}

// RecentAnnouncements returns the limit most recent announcements.
func (s *Store) RecentAnnouncements(limit int) ([]Announcement, error) {
	rows, err := s.db.Query(`
		SELECT id, advertised_train_ident, activity_type, location_signature, from_location, to_location, advertised_time_at_location, time_at_location, created_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent announcements: %w", err)
	}
	defer rows.Close()
	return scanAnnouncements(rows)
}

// Sweep deletes all rows older than horizonHours in both collections and
// returns the per-kind counts. Each delete is its own short statement so
// concurrent inserts and reads interleave with the sweep instead of waiting
// on one long transaction.
func (s *Store) Sweep(horizonHours int) (SweepResult, error) {
	cutoff := s.now().Add(-time.Duration(horizonHours) * time.Hour).UnixMilli()

	var result SweepResult
	res, err := s.db.Exec("DELETE FROM positions WHERE created_at < ?", cutoff)
	if err != nil {
		return result, fmt.Errorf("failed to sweep positions: %w", err)
	}
	result.Positions, _ = res.RowsAffected()

	res, err = s.db.Exec("DELETE FROM announcements WHERE created_at < ?", cutoff)
	if err != nil {
		return result, fmt.Errorf("failed to sweep announcements: %w", err)
	}
	result.Announcements, _ = res.RowsAffected()

	return result, nil
}

// Stats returns per-collection row counts and created_at extremes.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	if err := s.collectionStats("positions", &st.Positions); err != nil {
		return st, err
	}
	if err := s.collectionStats("announcements", &st.Announcements); err != nil {
		return st, err
	}
	return st, nil
}

func (s *Store) collectionStats(table string, cs *CollectionStats) error {
	var oldest, newest sql.NullInt64
	err := s.db.QueryRow("SELECT COUNT(*), MIN(created_at), MAX(created_at) FROM " + table).
		Scan(&cs.Count, &oldest, &newest)
	if err != nil {
		return fmt.Errorf("failed to query %s stats: %w", table, err)
	}
	cs.OldestCreatedAt = oldest.Int64
	cs.NewestCreatedAt = newest.Int64
	return nil
}

func scanPositions(rows *sql.Rows) ([]Position, error) {
	result := []Position{}
	for rows.Next() {
		var p Position
		if err := rows.Scan(
			&p.ID,
			&p.OperationalTrainNumber,
			&p.AdvertisedTrainNumber,
			&p.Bearing,
			&p.Speed,
			&p.PositionWGS84,
			&p.TimeStamp,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan position row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during position row iteration: %w", err)
	}
	return result, nil
}

func scanAnnouncements(rows *sql.Rows) ([]Announcement, error) {
	result := []Announcement{}
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(
			&a.ID,
			&a.AdvertisedTrainIdent,
			&a.ActivityType,
			&a.LocationSignature,
			&a.FromLocation,
			&a.ToLocation,
			&a.AdvertisedTimeAtLocation,
			&a.TimeAtLocation,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during announcement row iteration: %w", err)
	}
	return result, nil
}
