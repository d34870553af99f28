package catalog

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

// Service keeps the catalog dataset in the store.
type Service struct {
	store store.Store
	mu    sync.Mutex
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Import replaces the stored catalog with the programs parsed from raw.
// Nothing is written when raw holds no program.
func (s *Service) Import(raw string) (parser.Result[records.ProgramCatalog], error) {
	result := parser.ParseCatalog(raw)
	if err := result.Err(); err != nil {
		return result, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(records.KeyCatalog, result.Records); err != nil {
		return result, fmt.Errorf("failed to save catalog: %w", err)
	}

	slog.Info("Catalog imported", "programs", len(result.Records), "with_defaults", result.WithDefaults)
	return result, nil
}

// Current returns the stored catalog; an absent dataset is an empty catalog.
func (s *Service) Current() (*Catalog, error) {
	programs, err := store.Load[[]records.ProgramCatalog](s.store, records.KeyCatalog)
	if err != nil {
		return nil, err
	}
	return New(programs), nil
}
