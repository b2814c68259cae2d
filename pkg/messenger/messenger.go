// Package messenger is the outbound delivery gateway over the local
// message-transport sidecar. The sidecar owns the chat session and
// authentication; this client only posts text to its send endpoint.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends messages through the transport sidecar HTTP API
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// Config holds transport client settings
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// sendRequest is the sidecar's send payload
type sendRequest struct {
	To  string `json:"to"`
	Msg string `json:"msg"`
}

// New creates a transport client
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Send delivers one text message to a phone. Failures come back as
// errors, never as panics, so callers can log and continue.
func (c *Client) Send(ctx context.Context, phone, text string) error {
	body, err := json.Marshal(sendRequest{To: phone, Msg: text})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send to %s: %w", phone, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send to %s: HTTP %d %s", phone, resp.StatusCode, string(detail))
	}

	return nil
}
