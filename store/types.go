package store

// Position is one stored train position row. CreatedAt is the ingestion
// time in milliseconds since the Unix epoch, assigned by the store.
type Position struct {
	ID                     int64   `json:"id"`
	OperationalTrainNumber string  `json:"operational_train_number"`
	AdvertisedTrainNumber  string  `json:"advertised_train_number,omitempty"`
	Bearing                float64 `json:"bearing"`
	Speed                  float64 `json:"speed"`
	PositionWGS84          string  `json:"position_wgs84,omitempty"`
	TimeStamp              string  `json:"timestamp"`
	CreatedAt              int64   `json:"created_at"`
}

// Announcement is one stored train announcement row.
type Announcement struct {
	ID                       int64  `json:"id"`
	AdvertisedTrainIdent     string `json:"advertised_train_ident"`
	ActivityType             string `json:"activity_type,omitempty"`
	LocationSignature        string `json:"location_signature,omitempty"`
	FromLocation             string `json:"from_location,omitempty"`
	ToLocation               string `json:"to_location,omitempty"`
	AdvertisedTimeAtLocation string `json:"advertised_time_at_location,omitempty"`
	TimeAtLocation           string `json:"time_at_location,omitempty"`
	CreatedAt                int64  `json:"created_at"`
}

// SweepResult reports the per-kind number of rows a Sweep deleted.
type SweepResult struct {
	Positions     int64 `json:"positions"`
	Announcements int64 `json:"announcements"`
}

// Stats summarizes store contents for the /stats endpoint.
type Stats struct {
	Positions     CollectionStats `json:"positions"`
	Announcements CollectionStats `json:"announcements"`
}

// CollectionStats summarizes one collection.
type CollectionStats struct {
	Count           int64 `json:"count"`
	OldestCreatedAt int64 `json:"oldest_created_at"`
	NewestCreatedAt int64 `json:"newest_created_at"`
}
