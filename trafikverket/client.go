package trafikverket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client performs the subscription exchange against the provider data
// endpoint.
type Client struct {
	httpClient *http.Client
	dataURL    string
}

// NewClient creates a client for the given data endpoint URL.
func NewClient(dataURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		dataURL:    dataURL,
	}
}

// Subscribe posts a subscription query and returns the SSE endpoint URL the
// provider allocated for it. No retry is performed here; reconnection policy
// belongs to the stream supervisor.
func (c *Client) Subscribe(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.dataURL, strings.NewReader(query))
	if err != nil {
		return "", fmt.Errorf("failed to build subscription request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("subscription request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read subscription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Status: resp.StatusCode, Body: string(body)}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", &ProtocolError{Msg: "malformed subscription response: " + err.Error()}
	}
	if len(env.Response.Result) == 0 || env.Response.Result[0].Info == nil {
		return "", &ProtocolError{Msg: "subscription response carries no INFO section"}
	}
	sseURL := env.Response.Result[0].Info.SSEURL
	if sseURL == "" {
		return "", &ProtocolError{Msg: "no SSE URL returned"}
	}
	return sseURL, nil
}
