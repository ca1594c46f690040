package trainstream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/train-stream/store"
)

func newTestAPI(t *testing.T) (*store.Store, *httptest.Server) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	srv := httptest.NewServer(Handler(st, time.Now()))
	t.Cleanup(func() {
		srv.Close()
		_ = st.Close()
	})
	return st, srv
}

func getJSON(t *testing.T, url string, wantStatus int, into any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("expected status %d, got %d", wantStatus, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if into != nil {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
}

func TestHealth(t *testing.T) {
	_, srv := newTestAPI(t)
	var body map[string]string
	getJSON(t, srv.URL+"/health", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStats(t *testing.T) {
	st, srv := newTestAPI(t)
	if err := st.InsertPosition(store.Position{OperationalTrainNumber: "101"}); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	var body struct {
		Positions struct {
			Count int64 `json:"count"`
		} `json:"positions"`
		StartedAt string `json:"started_at"`
	}
	getJSON(t, srv.URL+"/stats", http.StatusOK, &body)
	if body.Positions.Count != 1 {
		t.Errorf("expected 1 position, got %d", body.Positions.Count)
	}
	if body.StartedAt == "" {
		t.Error("expected started_at to be set")
	}
}

func TestRecentPositions(t *testing.T) {
	st, srv := newTestAPI(t)
	for _, n := range []string{"101", "102", "103"} {
		if err := st.InsertPosition(store.Position{OperationalTrainNumber: n}); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}

	var rows []store.Position
	getJSON(t, srv.URL+"/positions", http.StatusOK, &rows)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	rows = nil
	getJSON(t, srv.URL+"/positions?limit=2", http.StatusOK, &rows)
	if len(rows) != 2 {
		t.Errorf("expected limit to apply, got %d rows", len(rows))
	}

	// An oversized limit is clamped, not an error.
	rows = nil
	getJSON(t, srv.URL+"/positions?limit=5000", http.StatusOK, &rows)
	if len(rows) != 3 {
		t.Errorf("expected all 3 rows under clamped limit, got %d", len(rows))
	}
}

func TestPositionsByTrain(t *testing.T) {
	st, srv := newTestAPI(t)
	if err := st.InsertPosition(store.Position{OperationalTrainNumber: "101", Bearing: 90}); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	if err := st.InsertPosition(store.Position{OperationalTrainNumber: "202"}); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	var rows []store.Position
	getJSON(t, srv.URL+"/positions/101?hours=1", http.StatusOK, &rows)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for train 101, got %d", len(rows))
	}
	if rows[0].Bearing != 90 {
		t.Errorf("expected row returned verbatim, got %+v", rows[0])
	}

	rows = nil
	getJSON(t, srv.URL+"/positions/999?hours=1", http.StatusOK, &rows)
	if len(rows) != 0 {
		t.Errorf("expected empty result for unknown train, got %d rows", len(rows))
	}

	// Unparsable hours falls back to the default window and still succeeds.
	rows = nil
	getJSON(t, srv.URL+"/positions/101?hours=soon", http.StatusOK, &rows)
	if len(rows) != 1 {
		t.Errorf("expected default window to include the row, got %d rows", len(rows))
	}
}

func TestAnnouncementsEndpoints(t *testing.T) {
	st, srv := newTestAPI(t)
	if err := st.InsertAnnouncement(store.Announcement{
		AdvertisedTrainIdent: "2245",
		ActivityType:         "Avgang",
		ToLocation:           "Cst",
	}); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	var rows []store.Announcement
	getJSON(t, srv.URL+"/announcements", http.StatusOK, &rows)
	if len(rows) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(rows))
	}

	rows = nil
	getJSON(t, srv.URL+"/announcements/2245", http.StatusOK, &rows)
	if len(rows) != 1 || rows[0].ActivityType != "Avgang" {
		t.Errorf("expected verbatim announcement for ident 2245, got %+v", rows)
	}
}

func TestUnknownPathListsEndpoints(t *testing.T) {
	_, srv := newTestAPI(t)

	for _, path := range []string{"/nope", "/", "/positions/101/extra"} {
		t.Run(path, func(t *testing.T) {
			var body errorResponse
			getJSON(t, srv.URL+path, http.StatusNotFound, &body)
			if body.Error != "Not found" {
				t.Errorf("expected Not found error, got %q", body.Error)
			}
			if len(body.AvailableEndpoints) != len(availableEndpoints) {
				t.Errorf("expected %d documented endpoints, got %d",
					len(availableEndpoints), len(body.AvailableEndpoints))
			}
		})
	}
}
