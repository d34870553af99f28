package guiones

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/reports"
	"github.com/lysyi3m/radio-guiones/app/store"
	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

// HistoryTTL is how long a search query stays in the history.
const HistoryTTL = 24 * time.Hour

var ErrEmptyQuery = errors.New("search query is empty")

// Search finds scripts whose title, writer, advisor or themes contain query
// once both are normalized. The query is recorded in the search history.
func (s *Service) Search(query string) ([]reports.Row, error) {
	needle := textnorm.Normalize(query)
	if needle == "" {
		return nil, ErrEmptyQuery
	}

	rows, err := s.All()
	if err != nil {
		return nil, err
	}

	var hits []reports.Row
	for _, row := range rows {
		if matches(row.Script, needle) {
			hits = append(hits, row)
		}
	}

	if err := s.remember(strings.TrimSpace(query)); err != nil {
		return hits, err
	}

	return hits, nil
}

func matches(script records.Script, needle string) bool {
	fields := append([]string{script.Title, script.Writer, script.Advisor}, script.Themes...)
	for _, field := range fields {
		if strings.Contains(textnorm.Normalize(field), needle) {
			return true
		}
	}
	return false
}

// History returns the queries of the last 24 hours, newest last.
func (s *Service) History() ([]records.SearchEntry, error) {
	entries, err := store.Load[[]records.SearchEntry](s.store, records.KeySearchHistory)
	if err != nil {
		return nil, err
	}
	return fresh(entries, s.now()), nil
}

// PruneHistory drops expired queries from the stored history and returns
// how many were removed.
func (s *Service) PruneHistory() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := store.Load[[]records.SearchEntry](s.store, records.KeySearchHistory)
	if err != nil {
		return 0, err
	}

	kept := fresh(entries, s.now())
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.Set(records.KeySearchHistory, kept); err != nil {
		return 0, fmt.Errorf("failed to save search history: %w", err)
	}
	return removed, nil
}

// remember appends query to the history, moving a repeated query to the end.
func (s *Service) remember(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := store.Load[[]records.SearchEntry](s.store, records.KeySearchHistory)
	if err != nil {
		return err
	}

	now := s.now()
	var kept []records.SearchEntry
	for _, entry := range fresh(entries, now) {
		if !textnorm.Equal(entry.Query, query) {
			kept = append(kept, entry)
		}
	}
	kept = append(kept, records.SearchEntry{Query: query, At: now.UnixMilli()})

	if err := s.store.Set(records.KeySearchHistory, kept); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

func fresh(entries []records.SearchEntry, now time.Time) []records.SearchEntry {
	cutoff := now.Add(-HistoryTTL).UnixMilli()
	var kept []records.SearchEntry
	for _, entry := range entries {
		if entry.At > cutoff {
			kept = append(kept, entry)
		}
	}
	return kept
}
