package trainstream

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/train-stream/store"
)

var availableEndpoints = []string{
	"GET /health",
	"GET /stats",
	"GET /positions?limit=100",
	"GET /positions/{trainNumber}?hours=1",
	"GET /announcements?limit=100",
	"GET /announcements/{trainIdent}?hours=1",
}

type healthResponse struct {
	Status string `json:"status"`
}

type statsResponse struct {
	store.Stats
	StartedAt     string `json:"started_at"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type errorResponse struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints,omitempty"`
}

// Handler returns the read API. All responses are JSON; rows come back
// verbatim from the store.
func Handler(st *store.Store, startedAt time.Time) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})

	mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := st.Stats()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{
			Stats:         stats,
			StartedAt:     startedAt.UTC().Format(time.RFC3339),
			UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		})
	})

	mux.HandleFunc("GET /positions", func(w http.ResponseWriter, r *http.Request) {
		rows, err := st.RecentPositions(parseLimit(r.URL.Query()))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	})

	mux.HandleFunc("GET /positions/{trainNumber}", func(w http.ResponseWriter, r *http.Request) {
		since := parseSince(r.URL.Query(), time.Now())
		rows, err := st.PositionsByTrain(r.PathValue("trainNumber"), since)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	})

	mux.HandleFunc("GET /announcements", func(w http.ResponseWriter, r *http.Request) {
		rows, err := st.RecentAnnouncements(parseLimit(r.URL.Query()))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	})

	mux.HandleFunc("GET /announcements/{trainIdent}", func(w http.ResponseWriter, r *http.Request) {
		since := parseSince(r.URL.Query(), time.Now())
		rows, err := st.AnnouncementsByTrain(r.PathValue("trainIdent"), since)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:              "Not found",
			AvailableEndpoints: availableEndpoints,
		})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Printf("read API error: %v", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
