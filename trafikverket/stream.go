package trafikverket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/theoremus-urban-solutions/train-stream/store"
)

// dataPrefix marks the payload lines of the event stream.
const dataPrefix = "data: "

// RecordSink receives validated records decoded from a stream.
// *store.Store satisfies it.
type RecordSink interface {
	InsertPosition(store.Position) error
	InsertAnnouncement(store.Announcement) error
}

// Stream consumes one SSE connection and forwards decoded records to its
// sink. The sink is registered at construction; the connection is owned by
// Run and closed when Run returns.
type Stream struct {
	name       string
	url        string
	sink       RecordSink
	httpClient *http.Client
}

// NewStream creates a stream for the given SSE endpoint. name labels log
// lines ("position" or "announcement").
func NewStream(name, url string, sink RecordSink) *Stream {
	return &Stream{
		name:       name,
		url:        url,
		sink:       sink,
		httpClient: &http.Client{},
	}
}

// Run opens the connection and consumes messages until the context is
// cancelled or the transport fails. A provider-side close counts as a
// transport failure: the feed is endless by contract. Message decode and
// record validation failures are logged and isolated; they never end the
// connection.
func (s *Stream) Run(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return &StreamTransportError{URL: s.url, Err: err}
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &StreamTransportError{URL: s.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StreamTransportError{URL: s.url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}
	log.Printf("%s stream connected", s.name)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		s.handleMessage([]byte(strings.TrimPrefix(line, dataPrefix)))
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := scanner.Err(); err != nil {
		return &StreamTransportError{URL: s.url, Err: err}
	}
	return &StreamTransportError{URL: s.url, Err: fmt.Errorf("stream closed by provider")}
}

// handleMessage decodes one pushed envelope and inserts its records. Failure
// scope is one message for decode errors and one record for validation or
// insert errors.
func (s *Stream) handleMessage(data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("%s stream: discarding undecodable message: %v", s.name, err)
		return
	}

	positions, announcements := 0, 0
	for _, item := range env.Response.Result {
		for i := range item.TrainPosition {
			rec, err := item.TrainPosition[i].ToRecord()
			if err != nil {
				log.Printf("%s stream: skipping invalid position record: %v", s.name, err)
				continue
			}
			if err := s.sink.InsertPosition(rec); err != nil {
				log.Printf("%s stream: failed to store position: %v", s.name, err)
				continue
			}
			positions++
		}
		for i := range item.TrainAnnouncement {
			rec, err := item.TrainAnnouncement[i].ToRecord()
			if err != nil {
				log.Printf("%s stream: skipping invalid announcement record: %v", s.name, err)
				continue
			}
			if err := s.sink.InsertAnnouncement(rec); err != nil {
				log.Printf("%s stream: failed to store announcement: %v", s.name, err)
				continue
			}
			announcements++
		}
	}
	if positions > 0 {
		log.Printf("%s stream: %d positions", s.name, positions)
	}
	if announcements > 0 {
		log.Printf("%s stream: %d announcements", s.name, announcements)
	}
}
