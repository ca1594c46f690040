// Package trafikverket implements the client side of the Trafikverket open
// data push feeds: building subscription queries, initiating a subscription
// to obtain an SSE endpoint, and consuming the event stream.
package trafikverket
