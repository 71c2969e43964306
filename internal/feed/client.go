package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://stats.nba.com/stats"

// Client fetches result-set envelopes from the stats feed. The feed rejects
// requests without browser-shaped headers, so every request carries them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	seasonType string
}

// NewClient creates a new stats feed client.
func NewClient(baseURL, seasonType string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		seasonType: seasonType,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// LeagueGames fetches the league game finder for a season. One row per team
// per game.
func (c *Client) LeagueGames(ctx context.Context, season string) (*Envelope, error) {
	return c.get(ctx, "leaguegamefinder", map[string]string{
		"Season":     season,
		"SeasonType": c.seasonType,
		"LeagueID":   "00",
	})
}

// PlayerGameLogs fetches per-player box score lines for a season.
func (c *Client) PlayerGameLogs(ctx context.Context, season string) (*Envelope, error) {
	return c.get(ctx, "playergamelogs", map[string]string{
		"Season":     season,
		"SeasonType": c.seasonType,
		"LeagueID":   "00",
	})
}

// Scoreboard fetches game headers for one date, the source of arena names
// and attendance.
func (c *Client) Scoreboard(ctx context.Context, date string) (*Envelope, error) {
	return c.get(ctx, "scoreboardv2", map[string]string{
		"GameDate":  date,
		"LeagueID":  "00",
		"DayOffset": "0",
	})
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) (*Envelope, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Headers the feed requires before it will answer
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	q := req.URL.Query()
	for key, value := range params {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	log.Printf("[feed] GET %s", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// Success

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("feed returned retryable status %d for %s", resp.StatusCode, path)

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("feed rejected request (status %d): %s", resp.StatusCode, truncate(body, 200))

	default:
		return nil, fmt.Errorf("feed returned unexpected status %d for %s: %s", resp.StatusCode, path, truncate(body, 200))
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	return &env, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
