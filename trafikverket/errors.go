package trafikverket

import "fmt"

// ProviderError reports a non-success response from the subscription
// exchange.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("trafikverket API error: HTTP %d: %s", e.Status, e.Body)
}

// ProtocolError reports a malformed subscription response envelope or a
// missing SSE URL.
type ProtocolError struct{ Msg string }

func (e *ProtocolError) Error() string { return "trafikverket protocol error: " + e.Msg }

// StreamTransportError reports a connection-level failure on an established
// event stream.
type StreamTransportError struct {
	URL string
	Err error
}

func (e *StreamTransportError) Error() string {
	return fmt.Sprintf("stream transport error on %s: %v", e.URL, e.Err)
}

func (e *StreamTransportError) Unwrap() error { return e.Err }
