package retention

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/train-stream/store"
)

func TestSchedulerSweepRuns(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	if err := st.InsertPosition(store.Position{OperationalTrainNumber: "101"}); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	s := New(st, 20, time.Hour)
	s.sweep()

	// A fresh row is inside the horizon and must survive.
	rows, err := st.RecentPositions(10)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected fresh row to survive the sweep, got %d rows", len(rows))
	}
}

func TestSchedulerStartStop(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	s := New(st, 20, time.Hour)
	s.Start()
	s.Stop()
}
