// Package programs holds the registry of known programs and the rules that
// route free-text program names onto it.
package programs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

var (
	ErrNoMatch   = errors.New("no program matches")
	ErrAmbiguous = errors.New("program name is ambiguous")
)

type Registry struct {
	programsDir string
	cache       map[string]*Program
	mu          sync.RWMutex
}

func NewRegistry(programsDir string) *Registry {
	return &Registry{
		programsDir: programsDir,
		cache:       make(map[string]*Program),
	}
}

// Run loads every .yml file of the programs directory.
func (r *Registry) Run() error {
	if _, err := os.Stat(r.programsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(r.programsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		slug := strings.TrimSuffix(filepath.Base(file), ".yml")

		program, err := r.LoadProgram(slug)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Program loaded", "slug", slug, "name", program.Name, "aliases", len(program.Aliases))
	}

	return nil
}

func (r *Registry) LoadProgram(slug string) (*Program, error) {
	file := filepath.Join(r.programsDir, slug+".yml")

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var program Program
	if err := yaml.Unmarshal(data, &program); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	program.Slug = slug

	if err := r.Add(&program); err != nil {
		return nil, fmt.Errorf("invalid program %s: %w", file, err)
	}

	return &program, nil
}

// Add registers a program directly, without a backing file.
func (r *Registry) Add(program *Program) error {
	if program == nil {
		return fmt.Errorf("program is nil")
	}
	if strings.TrimSpace(program.Name) == "" {
		return fmt.Errorf("program name is required")
	}
	if program.Slug == "" {
		program.Slug = textnorm.Slug(program.Name)
	}
	if program.Slug == "" {
		return fmt.Errorf("program slug is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for slug, other := range r.cache {
		if slug != program.Slug && textnorm.Equal(other.Name, program.Name) {
			return fmt.Errorf("program name %q already used by %s", program.Name, slug)
		}
	}
	r.cache[program.Slug] = program

	return nil
}

func (r *Registry) Get(slug string) (*Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	program, ok := r.cache[slug]
	if !ok {
		return nil, fmt.Errorf("program with slug '%s' not found", slug)
	}
	return program, nil
}

// All returns the programs ordered by name.
func (r *Registry) All() []*Program {
	r.mu.RLock()
	defer r.mu.RUnlock()

	programs := make([]*Program, 0, len(r.cache))
	for _, p := range r.cache {
		programs = append(programs, p)
	}
	sort.Slice(programs, func(i, j int) bool {
		return programs[i].Name < programs[j].Name
	})
	return programs
}

// Names returns the program names ordered alphabetically.
func (r *Registry) Names() []string {
	programs := r.All()
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return names
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// Match resolves a free-text program name. An exact normalized name wins,
// then the alias table, then containment in either direction. Several
// containment candidates are reported as ErrAmbiguous.
func (r *Registry) Match(name string) (*Program, error) {
	needle := textnorm.Normalize(name)
	if needle == "" {
		return nil, ErrNoMatch
	}

	programs := r.All()

	for _, p := range programs {
		if textnorm.Normalize(p.Name) == needle || textnorm.Normalize(p.Slug) == needle {
			return p, nil
		}
	}

	for _, p := range programs {
		for _, alias := range p.Aliases {
			if textnorm.Normalize(alias) == needle {
				return p, nil
			}
		}
	}

	var candidates []*Program
	for _, p := range programs {
		if textnorm.Contains(p.Name, name) {
			candidates = append(candidates, p)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, name)
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, name, strings.Join(names, ", "))
	}
}
