package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultSourceTimeout = 15 * time.Second
	maxSourceBytes       = 1 << 20 // 1 MiB of play-by-play text is plenty
)

// Source fetches raw game data text for the analyzer. When a fetch fails,
// the admin falls back to pasting play-by-play text manually.
type Source interface {
	FetchGameData(ctx context.Context) (string, error)
}

// HTTPSource fetches game data from a scoreboard summary URL.
type HTTPSource struct {
	url  string
	http *http.Client
}

// NewHTTPSource creates a Source for the given summary URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:  url,
		http: &http.Client{Timeout: defaultSourceTimeout},
	}
}

// FetchGameData implements Source.
func (s *HTTPSource) FetchGameData(ctx context.Context) (string, error) {
	if s.url == "" {
		return "", ErrNoSourceConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("build game data request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: game data status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return string(body), nil
}
