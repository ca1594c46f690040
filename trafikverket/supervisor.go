package trafikverket

import (
	"context"
	"log"
	"math/rand"
	"time"
)

const (
	backoffBase = time.Second
	backoffCap  = 5 * time.Minute
)

// QueryBuilder produces the subscription request for one connection attempt.
type QueryBuilder func(now time.Time) string

// Supervisor keeps one event stream alive: it runs the full subscription
// exchange, consumes the stream until it fails, then resubscribes after an
// exponential backoff with jitter. The SSE URL is not assumed stable across
// reconnects.
type Supervisor struct {
	name       string
	client     *Client
	buildQuery QueryBuilder
	sink       RecordSink
}

// NewSupervisor creates a supervisor for one event class.
func NewSupervisor(name string, client *Client, buildQuery QueryBuilder, sink RecordSink) *Supervisor {
	return &Supervisor{
		name:       name,
		client:     client,
		buildQuery: buildQuery,
		sink:       sink,
	}
}

// Run supervises the stream until the context is cancelled.
func (sv *Supervisor) Run(ctx context.Context) {
	delay := backoffBase
	for {
		start := time.Now()
		if err := sv.connectOnce(ctx); err != nil {
			if ctx.Err() != nil {
				log.Printf("%s stream supervisor stopped", sv.name)
				return
			}
			log.Printf("%s stream failed: %v", sv.name, err)
		}

		// A connection that held for a while earns a fresh backoff.
		if time.Since(start) > time.Minute {
			delay = backoffBase
		}
		wait := delay + time.Duration(rand.Int63n(int64(delay)))
		log.Printf("%s stream: reconnecting in %s", sv.name, wait.Round(time.Millisecond))
		select {
		case <-ctx.Done():
			log.Printf("%s stream supervisor stopped", sv.name)
			return
		case <-time.After(wait):
		}
		if delay *= 2; delay > backoffCap {
			delay = backoffCap
		}
	}
}

func (sv *Supervisor) connectOnce(ctx context.Context) error {
	log.Printf("connecting to Trafikverket %s stream...", sv.name)
	sseURL, err := sv.client.Subscribe(ctx, sv.buildQuery(time.Now()))
	if err != nil {
		return err
	}
	return NewStream(sv.name, sseURL, sv.sink).Run(ctx)
}
