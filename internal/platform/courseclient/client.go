// Package courseclient is the HTTP client for the course API.
package courseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courseapi/internal/entity"

	"golang.org/x/time/rate"
)

const defaultTimeout = 5 * time.Second

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.Code, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

// NewClient returns a client for the server at baseURL. rps <= 0 disables
// pacing; maxRetries applies to reads that fail with 429 or 5xx.
func NewClient(baseURL string, rps int, maxRetries int) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Every(time.Second / time.Duration(rps))
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: maxRetries,
		backoff:    time.Second,
	}
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func coursePath(s entity.Summary) string {
	return fmt.Sprintf("/course/%s/%s/", url.PathEscape(s.Subject), url.PathEscape(s.Number))
}

func ratingPath(s entity.Summary) string {
	return fmt.Sprintf("/rating/%s/%s", url.PathEscape(s.Subject), url.PathEscape(s.Number))
}

// Ping issues a single GET / and returns the liveness body. It never
// retries; the lifecycle probe owns that policy.
func (c *Client) Ping(ctx context.Context) (string, error) {
	body, err := c.send(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Reset restores every rating on the server to its seeded value.
func (c *Client) Reset(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, "/reset/", nil)
	return err
}

func (c *Client) Summaries(ctx context.Context) ([]entity.Summary, error) {
	var res []entity.Summary
	if err := c.get(ctx, "/summary/", &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Course(ctx context.Context, summary entity.Summary) (*entity.Course, error) {
	var res entity.Course
	if err := c.get(ctx, coursePath(summary), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Rating(ctx context.Context, summary entity.Summary) (*entity.Rating, error) {
	var res entity.Rating
	if err := c.get(ctx, ratingPath(summary), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PostRating stores rating and returns the rating the server now holds,
// read back through the redirect the server answers with.
func (c *Client) PostRating(ctx context.Context, rating entity.Rating) (*entity.Rating, error) {
	payload, err := json.Marshal(rating)
	if err != nil {
		return nil, fmt.Errorf("encode rating: %w", err)
	}
	body, err := c.send(ctx, http.MethodPost, "/rating/", payload)
	if err != nil {
		return nil, err
	}
	var res entity.Rating
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode rating: %w", err)
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1x, 2x, 4x...
			backoff := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		body, err := c.send(ctx, http.MethodGet, path, nil)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && se.Code != http.StatusTooManyRequests && se.Code < 500 {
				return err
			}
			lastErr = err
			continue
		}
		return json.Unmarshal(body, target)
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
