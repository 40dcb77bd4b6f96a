package igdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"playnext/internal/logging"
	"playnext/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.igdb.com/v4"

	// IGDB allows 4 requests per second per client
	rateLimit = 4
	rateBurst = 4

	// Retry configuration
	maxRetries   = 3
	initialDelay = 500 * time.Millisecond
	maxDelay     = 8 * time.Second

	searchLimit = 5

	gameFields = "name, url, genres.name, platforms.name, id, cover.url, release_dates.human, age_ratings.rating"
)

var ErrNotFound = errors.New("igdb: no matching record")

// StatusError is a non-retryable, non-2xx IGDB response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("igdb: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Options tune a Client. Zero values fall back to the package defaults.
type Options struct {
	BaseURL      string
	ClientID     string
	Tokens       *TokenProvider
	HTTPClient   *http.Client
	RateLimit    rate.Limit
	RateBurst    int
	MaxRetries   int
	InitialDelay time.Duration
}

// Client queries the IGDB v4 API with rate limiting, retries on 429/5xx,
// a single token refresh on 401, and a circuit breaker around the lot.
type Client struct {
	baseURL      string
	clientID     string
	tokens       *TokenProvider
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[[]byte]
	maxRetries   int
	initialDelay time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = rateLimit
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = rateBurst
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = maxRetries
	}
	if opts.InitialDelay == 0 {
		opts.InitialDelay = initialDelay
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		clientID:     opts.ClientID,
		tokens:       opts.Tokens,
		httpClient:   opts.HTTPClient,
		rateLimiter:  rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		breaker:      newBreaker("igdb"),
		maxRetries:   opts.MaxRetries,
		initialDelay: opts.InitialDelay,
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(name, to)
		},
		// Bad queries and expired credentials say nothing about IGDB's health
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < 500
			}
			return err == nil || errors.Is(err, ErrCredentials) || errors.Is(err, context.Canceled)
		},
	})
}

// SearchGames runs a full-text search and returns up to five matches.
func (c *Client) SearchGames(ctx context.Context, title string) ([]Game, error) {
	query := fmt.Sprintf(`search "%s"; fields %s; limit %d;`, escapeQuery(title), gameFields, searchLimit)

	var games []Game
	if err := c.query(ctx, "games", query, &games); err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return games, nil
}

// GetGame fetches a single game by IGDB id.
func (c *Client) GetGame(ctx context.Context, id int64) (*Game, error) {
	query := fmt.Sprintf("fields %s; where id = %d;", gameFields, id)

	var games []Game
	if err := c.query(ctx, "games", query, &games); err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	if len(games) == 0 {
		return nil, ErrNotFound
	}
	return &games[0], nil
}

// CoverURL resolves a cover id to a displayable image URL.
func (c *Client) CoverURL(ctx context.Context, coverID int64) (string, error) {
	query := fmt.Sprintf("fields url; where id = %d;", coverID)

	var covers []Cover
	if err := c.query(ctx, "covers", query, &covers); err != nil {
		return "", fmt.Errorf("get cover %d: %w", coverID, err)
	}
	if len(covers) == 0 || covers[0].URL == "" {
		return "", ErrNotFound
	}
	return NormalizeCoverURL(covers[0].URL), nil
}

func (c *Client) query(ctx context.Context, endpoint, body string, out interface{}) error {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doRequest(ctx, endpoint, body)
	})
	metrics.ObserveUpstream("igdb", err)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// doRequest performs one logical IGDB call with rate limiting and retry logic
func (c *Client) doRequest(ctx context.Context, endpoint, body string) ([]byte, error) {
	log := logging.Ctx(ctx).With().Str("adapter", "igdb").Str("endpoint", endpoint).Logger()
	url := c.baseURL + "/" + endpoint
	delay := c.initialDelay
	refreshed := false

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Client-ID", c.clientID)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "text/plain")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() == nil && attempt < c.maxRetries {
				log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", delay).Msg("request failed, retrying")
				if err := sleep(ctx, delay); err != nil {
					return nil, err
				}
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return nil, fmt.Errorf("request failed after %d attempts: %w", attempt+1, err)
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized && !refreshed:
			refreshed = true
			log.Info().Msg("access token rejected, refreshing")
			if _, err := c.tokens.Refresh(ctx); err != nil {
				return nil, err
			}
			continue
		case shouldRetry(resp.StatusCode) && attempt < c.maxRetries:
			log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).Dur("backoff", delay).Msg("retryable status")
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay = minDuration(delay*2, maxDelay)
			continue
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(data), 256)}
		}

		if readErr != nil {
			return nil, fmt.Errorf("read response: %w", readErr)
		}
		return data, nil
	}
}

func shouldRetry(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
