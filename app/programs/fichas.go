package programs

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

// Fichas keeps the technical sheets of the programs in the store.
type Fichas struct {
	store store.Store
	mu    sync.Mutex
}

func NewFichas(s store.Store) *Fichas {
	return &Fichas{store: s}
}

// Import replaces the stored fichas with the ones parsed from raw.
func (f *Fichas) Import(raw string) (parser.Result[records.ProgramFicha], error) {
	result := parser.ParseFichas(raw)
	if err := result.Err(); err != nil {
		return result, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.store.Set(records.KeyFichas, result.Records); err != nil {
		return result, fmt.Errorf("failed to save fichas: %w", err)
	}

	slog.Info("Fichas imported", "count", len(result.Records), "with_defaults", result.WithDefaults)
	return result, nil
}

func (f *Fichas) List() ([]records.ProgramFicha, error) {
	return store.Load[[]records.ProgramFicha](f.store, records.KeyFichas)
}

// On returns the fichas of the programs airing on date.
func (f *Fichas) On(date time.Time) ([]records.ProgramFicha, error) {
	fichas, err := f.List()
	if err != nil {
		return nil, err
	}
	return ScheduledOn(fichas, date), nil
}
