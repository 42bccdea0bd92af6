// Package backend is the HTTP client for the optional fitlog sync service.
// Completed activities and workouts are pushed after the fact; the device
// store remains the source of truth and the app is fully usable offline.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"fitlog/internal/store"
)

// Client is a sync backend API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new sync backend client
func NewClient(baseURL string, tokenSource oauth2.TokenSource) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  oauth2.NewClient(context.Background(), tokenSource),
		rateLimiter: NewRateLimiter(),
	}
}

// PushActivity uploads one completed cardio activity
func (c *Client) PushActivity(ctx context.Context, a *store.Activity) error {
	return c.post(ctx, "/v1/activities", a)
}

// PushWorkout uploads one completed workout
func (c *Client) PushWorkout(ctx context.Context, w *store.Workout) error {
	return c.post(ctx, "/v1/workouts", w)
}

// RateLimitStatus returns the current rate limit status
func (c *Client) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return c.rateLimiter.Status()
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	// 409 means the backend already has this record; the push is
	// effectively done, so treat it as success and let the caller mark the
	// row synced.
	if resp.StatusCode == http.StatusConflict {
		return nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(msg))
	}

	return nil
}
