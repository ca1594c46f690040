// Package retention runs the periodic sweep that enforces the store's
// retention horizon.
package retention

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/theoremus-urban-solutions/train-stream/store"
)

// Scheduler fires the store sweep on a fixed interval. Sweep failures are
// logged and the next tick retries independently; no backlog is tracked.
type Scheduler struct {
	cron         *cron.Cron
	store        *store.Store
	horizonHours int
}

// New creates a scheduler sweeping rows older than horizonHours every
// interval, starting one interval after Start.
func New(st *store.Store, horizonHours int, interval time.Duration) *Scheduler {
	s := &Scheduler{
		cron:         cron.New(),
		store:        st,
		horizonHours: horizonHours,
	}
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(s.sweep))
	return s
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("retention sweep scheduled, horizon %d hours", s.horizonHours)
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweep() {
	result, err := s.store.Sweep(s.horizonHours)
	if err != nil {
		log.Printf("retention sweep failed: %v", err)
		return
	}
	log.Printf("retention sweep removed %d old positions and %d old announcements",
		result.Positions, result.Announcements)
}
