// Package backup exports the whole store as one JSON document and restores
// it, either from an uploaded file or from the published cloud snapshot.
package backup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

// Bundle is the backup document.
type Bundle struct {
	CreatedAt   string                      `json:"createdAt,omitempty"`
	Users       []records.User              `json:"users"`
	HistoryText string                      `json:"historyText"`
	AboutText   string                      `json:"aboutText"`
	News        []records.NewsItem          `json:"news"`
	Fichas      []records.ProgramFicha      `json:"fichas"`
	Catalog     []records.ProgramCatalog    `json:"catalogo"`
	WorkLogs    []records.WorkLog           `json:"workLogs"`
	Scripts     map[string][]records.Script `json:"guiones"` // by store key
	Agenda      map[string]json.RawMessage  `json:"agenda"`  // by store key, kept opaque
}

// Build collects the current datasets into a bundle (Respaldar).
func Build(s store.Store) (*Bundle, error) {
	b := &Bundle{
		CreatedAt: time.Now().Format(time.RFC3339),
		Scripts:   make(map[string][]records.Script),
		Agenda:    make(map[string]json.RawMessage),
	}

	loads := []struct {
		key string
		v   any
	}{
		{records.KeyUsers, &b.Users},
		{records.KeyHistoryText, &b.HistoryText},
		{records.KeyAboutText, &b.AboutText},
		{records.KeyNews, &b.News},
		{records.KeyFichas, &b.Fichas},
		{records.KeyCatalog, &b.Catalog},
		{records.KeyWorkLogs, &b.WorkLogs},
	}
	for _, l := range loads {
		if _, err := s.Get(l.key, l.v); err != nil {
			return nil, err
		}
	}

	keys, err := s.Keys(records.KeyScriptsPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list script collections: %w", err)
	}
	for _, key := range keys {
		scripts, err := store.Load[[]records.Script](s, key)
		if err != nil {
			return nil, err
		}
		b.Scripts[key] = scripts
	}

	for _, key := range records.AgendaKeys {
		var raw json.RawMessage
		ok, err := s.Get(key, &raw)
		if err != nil {
			return nil, err
		}
		if ok {
			b.Agenda[key] = raw
		}
	}

	return b, nil
}

// Restore overwrites the store with the bundle. Datasets missing from the
// bundle are removed; nothing is merged.
func Restore(s store.Store, b *Bundle) error {
	sets := []struct {
		key string
		v   any
	}{
		{records.KeyUsers, b.Users},
		{records.KeyHistoryText, b.HistoryText},
		{records.KeyAboutText, b.AboutText},
		{records.KeyNews, b.News},
		{records.KeyFichas, b.Fichas},
		{records.KeyCatalog, b.Catalog},
		{records.KeyWorkLogs, b.WorkLogs},
	}
	for _, set := range sets {
		if err := s.Set(set.key, set.v); err != nil {
			return fmt.Errorf("failed to restore %s: %w", set.key, err)
		}
	}

	existing, err := s.Keys(records.KeyScriptsPrefix)
	if err != nil {
		return fmt.Errorf("failed to list script collections: %w", err)
	}
	for _, key := range existing {
		if _, ok := b.Scripts[key]; !ok {
			if err := s.Delete(key); err != nil {
				return fmt.Errorf("failed to remove %s: %w", key, err)
			}
		}
	}
	for key, scripts := range b.Scripts {
		if !strings.HasPrefix(key, records.KeyScriptsPrefix) {
			slog.Warn("Backup entry ignored", "key", key)
			continue
		}
		if err := s.Set(key, scripts); err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}

	for _, key := range records.AgendaKeys {
		raw, ok := b.Agenda[key]
		if !ok {
			if err := s.Delete(key); err != nil {
				return fmt.Errorf("failed to remove %s: %w", key, err)
			}
			continue
		}
		if err := s.Set(key, raw); err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}

	slog.Info("Backup restored",
		"created_at", b.CreatedAt,
		"users", len(b.Users),
		"news", len(b.News),
		"collections", len(b.Scripts),
		"work_logs", len(b.WorkLogs))

	return nil
}
