// Package factsource fetches the optional fact-of-the-day ("#OjoAlDato")
// from its external source, exposed to us as a JSON endpoint.
package factsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ojoconmipisto/superbot/pkg/domain"
)

// prefixRe strips the "#OjoAlDato" marker and a following dash or colon
// from the fact body before rendering
var prefixRe = regexp.MustCompile(`(?i)^#?OjoAlDato\s*[-–—:]?\s*`)

// Client fetches fact-of-the-day rows
type Client struct {
	url    string
	client *http.Client
}

// Config holds fact source settings
type Config struct {
	URL     string
	Timeout time.Duration
}

// factRow is one row of the source sheet
type factRow struct {
	Date       string `json:"fecha"` // YYYY-MM-DD
	Department string `json:"departamento"`
	Text       string `json:"texto"`
}

// New creates a fact source client
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

// FactForDate returns the fact scheduled for a date (YYYY-MM-DD), or nil
// when none exists. The last row of the day wins when several are listed.
func (c *Client) FactForDate(ctx context.Context, date string) (*domain.FactOfDay, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch facts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rows []factRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode facts: %w", err)
	}

	var fact *domain.FactOfDay
	for _, row := range rows {
		if row.Date != date || row.Text == "" || row.Department == "" {
			continue
		}
		fact = &domain.FactOfDay{
			Department: row.Department,
			Text:       strings.TrimSpace(prefixRe.ReplaceAllString(row.Text, "")),
		}
	}
	return fact, nil
}
