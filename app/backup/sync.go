package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lysyi3m/radio-guiones/app/store"
)

var ErrNoBackupURL = errors.New("backup URL is not configured")

// Syncer downloads the published snapshot (Sincronizar).
type Syncer struct {
	httpClient *http.Client
	url        string
	userAgent  string
	timeout    time.Duration
}

func NewSyncer(httpClient *http.Client, url, userAgent string) *Syncer {
	return &Syncer{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
		timeout:    30 * time.Second,
	}
}

// Fetch downloads and decodes the snapshot. It is attempted once.
func (s *Syncer) Fetch(ctx context.Context) (*Bundle, error) {
	if s.url == "" {
		return nil, ErrNoBackupURL
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid backup document: %w", err)
	}
	return &b, nil
}

// Sync fetches the snapshot and restores it. A failed fetch leaves the store
// untouched.
func (s *Syncer) Sync(ctx context.Context, st store.Store) (*Bundle, error) {
	b, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := Restore(st, b); err != nil {
		return nil, err
	}
	return b, nil
}
