// Package newsdesk publishes the station news read on the listener page.
package newsdesk

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

var (
	ErrNotFound      = errors.New("news item not found")
	ErrTitleRequired = errors.New("news title is required")
)

type Service struct {
	store store.Store
	now   func() time.Time
	mu    sync.Mutex
}

func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Import replaces the whole news list with the items parsed from raw.
// Nothing is written when raw holds no item.
func (s *Service) Import(raw string) (parser.Result[records.NewsItem], error) {
	result := parser.ParseNews(raw, s.now())
	if err := result.Err(); err != nil {
		return result, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(records.KeyNews, result.Records); err != nil {
		return result, fmt.Errorf("failed to save news: %w", err)
	}

	slog.Info("News imported", "count", len(result.Records), "with_defaults", result.WithDefaults)
	return result, nil
}

func (s *Service) List() ([]records.NewsItem, error) {
	return store.Load[[]records.NewsItem](s.store, records.KeyNews)
}

// Add publishes a single item at the top of the list.
func (s *Service) Add(item records.NewsItem) (records.NewsItem, error) {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return item, ErrTitleRequired
	}

	item.ID = uuid.NewString()
	item.Author = cmp.Or(strings.TrimSpace(item.Author), records.DefaultNewsBy)
	item.Category = cmp.Or(strings.TrimSpace(item.Category), parser.DetectCategory(item.Title, item.Content))
	if strings.TrimSpace(item.Date) == "" {
		item.Date = dates.ISO(s.now())
	} else {
		parsed, _ := dates.ParseAt(item.Date, s.now())
		item.Date = dates.ISO(parsed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := store.Load[[]records.NewsItem](s.store, records.KeyNews)
	if err != nil {
		return item, err
	}

	items = append([]records.NewsItem{item}, items...)
	if err := s.store.Set(records.KeyNews, items); err != nil {
		return item, fmt.Errorf("failed to save news: %w", err)
	}
	return item, nil
}

func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := store.Load[[]records.NewsItem](s.store, records.KeyNews)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			if err := s.store.Set(records.KeyNews, items); err != nil {
				return fmt.Errorf("failed to save news: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

// RSS renders the current news list as a feed for channel.
func (s *Service) RSS(channel Channel) (string, error) {
	items, err := s.List()
	if err != nil {
		return "", err
	}
	return NewGenerator().Run(channel, items)
}
