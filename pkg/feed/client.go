// Package feed fetches published notes from the content endpoints. The
// feed is a JSON object mapping a department key (daily) or topic key
// (weekly) to an ordered list of {title, link} entries.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/ojoconmipisto/superbot/pkg/domain"
)

// Client fetches the daily and weekly content feeds
type Client struct {
	dailyURL  string
	weeklyURL string
	userAgent string
	client    *http.Client
}

// Config holds feed client settings
type Config struct {
	DailyURL  string
	WeeklyURL string
	Timeout   time.Duration
	UserAgent string
}

// NewClient creates a feed client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "Superbot/1.0"
	}
	return &Client{
		dailyURL:  cfg.DailyURL,
		weeklyURL: cfg.WeeklyURL,
		userAgent: userAgent,
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

// Daily returns today's notes grouped by department key
func (c *Client) Daily(ctx context.Context) (domain.ContentFeed, error) {
	return c.fetch(ctx, c.dailyURL)
}

// Weekly returns the week's notes grouped by topic key
func (c *Client) Weekly(ctx context.Context) (domain.ContentFeed, error) {
	return c.fetch(ctx, c.weeklyURL)
}

// fetch retrieves and decodes one feed endpoint, retrying transient
// failures with backoff
func (c *Client) fetch(ctx context.Context, url string) (domain.ContentFeed, error) {
	var result domain.ContentFeed

	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch feed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var feed domain.ContentFeed
		if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
			return fmt.Errorf("decode feed: %w", err)
		}
		result = feed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	return result, nil
}
