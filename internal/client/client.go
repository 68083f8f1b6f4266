// Package client provides a typed HTTP client for the bingo API. It is the
// programmatic surface used by the poller and the gamecheck tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/internal/verify"
)

const defaultTimeout = 10 * time.Second

// Client talks to a bingo server.
type Client struct {
	baseURL   string
	adminCode string
	http      *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithAdminCode attaches the shared admin secret to administrative calls.
func WithAdminCode(code string) Option {
	return func(c *Client) { c.adminCode = code }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitRequest is the payload for player submission.
type SubmitRequest struct {
	Name       string   `json:"name"`
	Picks      []string `json:"picks"`
	Tiebreaker string   `json:"tiebreaker"`
}

// SubmitResponse is the success payload for player submission.
type SubmitResponse struct {
	Success bool        `json:"success"`
	Player  game.Player `json:"player"`
}

// Players fetches all submitted players in submission order.
func (c *Client) Players(ctx context.Context) ([]game.Player, error) {
	var players []game.Player
	if err := c.do(ctx, http.MethodGet, "/api/players", nil, false, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// Submit sends a new player submission.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error) {
	var out SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/api/players", req, false, &out); err != nil {
		return SubmitResponse{}, err
	}
	return out, nil
}

// DeletePlayer removes a player by name (admin).
func (c *Client) DeletePlayer(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/api/players/"+url.PathEscape(name), nil, true, nil)
}

// Outcomes fetches the current outcome map.
func (c *Client) Outcomes(ctx context.Context) (game.Outcomes, error) {
	outcomes := game.Outcomes{}
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, false, &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// ToggleOutcome flips one event's occurred flag (admin) and returns the full
// updated map.
func (c *Client) ToggleOutcome(ctx context.Context, id string) (game.Outcomes, error) {
	outcomes := game.Outcomes{}
	if err := c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), nil, true, &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// GameState fetches the lock/identity record.
func (c *Client) GameState(ctx context.Context) (game.State, error) {
	var state game.State
	if err := c.do(ctx, http.MethodGet, "/api/game-state", nil, false, &state); err != nil {
		return game.State{}, err
	}
	return state, nil
}

// ToggleLock flips the submission lock (admin).
func (c *Client) ToggleLock(ctx context.Context) (bool, error) {
	var out struct {
		Locked bool `json:"locked"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/lock", nil, true, &out); err != nil {
		return false, err
	}
	return out.Locked, nil
}

// Reset wipes the game (admin).
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/reset", nil, true, nil)
}

// Leaderboard fetches the ranked player list.
func (c *Client) Leaderboard(ctx context.Context) ([]game.ScoredPlayer, error) {
	var ranked []game.ScoredPlayer
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, false, &ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

// VerifyRequest is the payload for a verification run.
type VerifyRequest struct {
	Period     string `json:"period"`
	ManualText string `json:"manualText,omitempty"`
}

// RunVerification starts a verification run for one period (admin).
func (c *Client) RunVerification(ctx context.Context, req VerifyRequest) (verify.Result, error) {
	var result verify.Result
	if err := c.do(ctx, http.MethodPost, "/api/verify", req, true, &result); err != nil {
		return verify.Result{}, err
	}
	return result, nil
}

// VerificationStatus fetches the pending result and applied history (admin).
func (c *Client) VerificationStatus(ctx context.Context) (verify.State, error) {
	var state verify.State
	if err := c.do(ctx, http.MethodGet, "/api/verify/status", nil, true, &state); err != nil {
		return verify.State{}, err
	}
	return state, nil
}

// ApproveVerification applies the pending result (admin) and returns the
// updated outcome map.
func (c *Client) ApproveVerification(ctx context.Context) (game.Outcomes, error) {
	outcomes := game.Outcomes{}
	if err := c.do(ctx, http.MethodPost, "/api/verify/approve", nil, true, &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// DismissVerification discards the pending result (admin).
func (c *Client) DismissVerification(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/verify/dismiss", nil, true, nil)
}

// Stats fetches service statistics.
func (c *Client) Stats(ctx context.Context) (map[string]any, error) {
	stats := map[string]any{}
	if err := c.do(ctx, http.MethodGet, "/stats", nil, false, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Healthy reports whether the server answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (c *Client) do(ctx context.Context, method, path string, body any, admin bool, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("X-Admin-Code", c.adminCode)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
