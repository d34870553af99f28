// Package guiones keeps the script collections of every program.
package guiones

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/programs"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/reports"
	"github.com/lysyi3m/radio-guiones/app/store"
)

var (
	ErrNotFound       = errors.New("script not found")
	ErrUnknownProgram = errors.New("unknown program")
	ErrTitleRequired  = errors.New("script title is required")
	ErrEmptyFind      = errors.New("search text is empty")
	ErrNothingRouted  = errors.New("no script matched a known program")
)

// Service reads and writes the per-program script collections.
type Service struct {
	store    store.Store
	registry *programs.Registry
	now      func() time.Time
	mu       sync.Mutex
}

// NewService creates a new script service
func NewService(s store.Store, registry *programs.Registry) *Service {
	return &Service{
		store:    s,
		registry: registry,
		now:      time.Now,
	}
}

// ImportReport summarizes one bulk import.
type ImportReport struct {
	Parsed       int            `json:"parsed"`
	Stored       int            `json:"stored"`
	WithDefaults int            `json:"withDefaults"`
	Skipped      int            `json:"skipped"`
	Unmatched    int            `json:"unmatched"`
	Ambiguous    int            `json:"ambiguous"`
	PerProgram   map[string]int `json:"perProgram"`
}

// Import parses raw, routes each script to its program and merges it into
// that program's collection. A script equal to a stored one by DedupKey
// replaces it; scripts whose program cannot be resolved are dropped.
func (s *Service) Import(raw string) (ImportReport, error) {
	result := parser.ParseScripts(raw, s.now())
	report := ImportReport{
		Parsed:       len(result.Records),
		WithDefaults: result.WithDefaults,
		Skipped:      result.Skipped,
		PerProgram:   make(map[string]int),
	}
	if err := result.Err(); err != nil {
		return report, err
	}

	incoming := make(map[string][]records.Script)
	var order []*programs.Program
	for _, script := range result.Records {
		program, err := s.registry.Match(script.Genre)
		switch {
		case errors.Is(err, programs.ErrAmbiguous):
			report.Ambiguous++
			slog.Debug("Script dropped", "title", script.Title, "genre", script.Genre, "error", err)
			continue
		case err != nil:
			report.Unmatched++
			slog.Debug("Script dropped", "title", script.Title, "genre", script.Genre, "error", err)
			continue
		}

		if _, seen := incoming[program.Slug]; !seen {
			order = append(order, program)
		}
		script.Genre = program.Name
		incoming[program.Slug] = append(incoming[program.Slug], script)
	}

	if len(order) == 0 {
		slog.Warn("Scripts import stored nothing",
			"parsed", report.Parsed,
			"unmatched", report.Unmatched,
			"ambiguous", report.Ambiguous)
		return report, ErrNothingRouted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, program := range order {
		key := records.ScriptsKey(program.Slug)
		existing, err := store.Load[[]records.Script](s.store, key)
		if err != nil {
			return report, err
		}

		merged := merge(existing, incoming[program.Slug])
		if err := s.store.Set(key, merged); err != nil {
			return report, fmt.Errorf("failed to save scripts of %s: %w", program.Name, err)
		}

		report.Stored += len(incoming[program.Slug])
		report.PerProgram[program.Name] += len(incoming[program.Slug])
	}

	slog.Info("Scripts imported",
		"parsed", report.Parsed,
		"stored", report.Stored,
		"with_defaults", report.WithDefaults,
		"unmatched", report.Unmatched,
		"ambiguous", report.Ambiguous)

	return report, nil
}

// merge keeps the order of existing, overwriting in place the records that
// share a DedupKey with an incoming one and appending the rest.
func merge(existing, incoming []records.Script) []records.Script {
	merged := make([]records.Script, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	put := func(script records.Script) {
		key := script.DedupKey()
		if i, ok := index[key]; ok {
			if script.ID == "" {
				script.ID = merged[i].ID
			}
			merged[i] = script
			return
		}
		if script.ID == "" {
			script.ID = uuid.NewString()
		}
		index[key] = len(merged)
		merged = append(merged, script)
	}

	for _, script := range existing {
		put(script)
	}
	for _, script := range incoming {
		script.ID = ""
		put(script)
	}

	return merged
}

// List returns the scripts of the program with the given slug.
func (s *Service) List(slug string) ([]records.Script, error) {
	if _, err := s.program(slug); err != nil {
		return nil, err
	}
	return store.Load[[]records.Script](s.store, records.ScriptsKey(slug))
}

// Add stores a script entered by hand. Missing fields take the same
// placeholders the importer uses.
func (s *Service) Add(slug string, script records.Script) (records.Script, error) {
	program, err := s.program(slug)
	if err != nil {
		return records.Script{}, err
	}
	script, err = s.prepare(program, script)
	if err != nil {
		return records.Script{}, err
	}
	script.ID = uuid.NewString()

	err = s.update(slug, func(scripts []records.Script) ([]records.Script, error) {
		return append(scripts, script), nil
	})
	return script, err
}

// Update replaces the fields of the script with the given id.
func (s *Service) Update(slug, id string, script records.Script) (records.Script, error) {
	program, err := s.program(slug)
	if err != nil {
		return records.Script{}, err
	}
	script, err = s.prepare(program, script)
	if err != nil {
		return records.Script{}, err
	}
	script.ID = id

	err = s.update(slug, func(scripts []records.Script) ([]records.Script, error) {
		for i := range scripts {
			if scripts[i].ID == id {
				scripts[i] = script
				return scripts, nil
			}
		}
		return nil, ErrNotFound
	})
	return script, err
}

func (s *Service) Delete(slug, id string) error {
	if _, err := s.program(slug); err != nil {
		return err
	}

	return s.update(slug, func(scripts []records.Script) ([]records.Script, error) {
		for i := range scripts {
			if scripts[i].ID == id {
				return append(scripts[:i], scripts[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// ClearProgram removes every script of a program.
func (s *Service) ClearProgram(slug string) error {
	if _, err := s.program(slug); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(records.ScriptsKey(slug)); err != nil {
		return fmt.Errorf("failed to clear scripts of %s: %w", slug, err)
	}
	slog.Info("Program scripts cleared", "program", slug)
	return nil
}

// Pulir replaces find with replacement in the text fields of a program's
// scripts and returns how many scripts changed.
func (s *Service) Pulir(slug, find, replacement string) (int, error) {
	if find == "" {
		return 0, ErrEmptyFind
	}
	if _, err := s.program(slug); err != nil {
		return 0, err
	}

	changed := 0
	err := s.update(slug, func(scripts []records.Script) ([]records.Script, error) {
		for i := range scripts {
			if polish(&scripts[i], find, replacement) {
				changed++
			}
		}
		return scripts, nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Scripts polished", "program", slug, "find", find, "changed", changed)
	return changed, nil
}

func polish(script *records.Script, find, replacement string) bool {
	changed := false
	replace := func(field *string) {
		if strings.Contains(*field, find) {
			*field = strings.ReplaceAll(*field, find, replacement)
			changed = true
		}
	}

	replace(&script.Title)
	replace(&script.Writer)
	replace(&script.Advisor)
	replace(&script.Content)
	for i := range script.Themes {
		replace(&script.Themes[i])
	}

	return changed
}

// All returns every stored script with the name of its program, including
// collections restored from a backup for programs not in the registry.
func (s *Service) All() ([]reports.Row, error) {
	keys, err := s.store.Keys(records.KeyScriptsPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list script collections: %w", err)
	}

	var rows []reports.Row
	for _, key := range keys {
		slug := strings.TrimPrefix(key, records.KeyScriptsPrefix)
		name := slug
		if program, err := s.registry.Get(slug); err == nil {
			name = program.Name
		}

		scripts, err := store.Load[[]records.Script](s.store, key)
		if err != nil {
			return nil, err
		}
		for _, script := range scripts {
			rows = append(rows, reports.Row{Program: name, Script: script})
		}
	}

	return rows, nil
}

func (s *Service) program(slug string) (*programs.Program, error) {
	program, err := s.registry.Get(slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, slug)
	}
	return program, nil
}

func (s *Service) prepare(program *programs.Program, script records.Script) (records.Script, error) {
	script.Title = strings.TrimSpace(script.Title)
	if script.Title == "" {
		return script, ErrTitleRequired
	}

	script.Genre = program.Name
	script.Writer = orPlaceholder(script.Writer, records.UnknownWriter)
	script.Advisor = orPlaceholder(script.Advisor, records.UnknownAdvisor)

	var themes []string
	for _, theme := range script.Themes {
		if theme = strings.TrimSpace(theme); theme != "" {
			themes = append(themes, theme)
		}
	}
	if len(themes) == 0 {
		themes = []string{records.DefaultTheme}
	}
	script.Themes = themes

	if strings.TrimSpace(script.DateAdded) == "" {
		script.DateAdded = dates.ISO(s.now())
	} else {
		parsed, _ := dates.ParseAt(script.DateAdded, s.now())
		script.DateAdded = dates.ISO(parsed)
	}

	return script, nil
}

// update runs one read-modify-write cycle on a program's collection.
func (s *Service) update(slug string, fn func([]records.Script) ([]records.Script, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := records.ScriptsKey(slug)
	scripts, err := store.Load[[]records.Script](s.store, key)
	if err != nil {
		return err
	}

	scripts, err = fn(scripts)
	if err != nil {
		return err
	}

	if err := s.store.Set(key, scripts); err != nil {
		return fmt.Errorf("failed to save scripts of %s: %w", slug, err)
	}
	return nil
}

func orPlaceholder(value, placeholder string) string {
	if value = strings.TrimSpace(value); value == "" {
		return placeholder
	}
	return value
}
