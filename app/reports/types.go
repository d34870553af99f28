// Package reports builds the statistical views over the script archive and
// renders them for download.
package reports

import (
	"sort"
	"time"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

// Row is one script together with the program whose collection holds it.
type Row struct {
	Program string         `json:"program"`
	Script  records.Script `json:"script"`
}

// Date returns the broadcast date of the script. Dates that cannot be read
// report false and never match a date filter.
func (r Row) Date() (time.Time, bool) {
	t, fallback := dates.ParseAt(r.Script.DateAdded, time.Time{})
	return t, !fallback
}

// Selection is the program multi-select shared by every report.
type Selection struct {
	all      []string
	selected map[string]bool
}

func NewSelection(all []string) *Selection {
	return &Selection{all: all, selected: make(map[string]bool)}
}

// Toggle flips one program in or out of the selection.
func (s *Selection) Toggle(program string) {
	if s.selected[program] {
		delete(s.selected, program)
		return
	}
	s.selected[program] = true
}

// ToggleAll empties a full selection and fills any other.
func (s *Selection) ToggleAll() {
	if len(s.selected) == len(s.all) && len(s.all) > 0 {
		s.selected = make(map[string]bool)
		return
	}
	for _, program := range s.all {
		s.selected[program] = true
	}
}

// Programs returns the selected programs in the order of the full list.
func (s *Selection) Programs() []string {
	var programs []string
	for _, program := range s.all {
		if s.selected[program] {
			programs = append(programs, program)
		}
	}
	return programs
}

// programSet matches program names after normalization.
type programSet map[string]bool

func newProgramSet(programs []string) programSet {
	set := make(programSet, len(programs))
	for _, p := range programs {
		set[textnorm.Normalize(p)] = true
	}
	return set
}

func (p programSet) has(program string) bool {
	return p[textnorm.Normalize(program)]
}

// dated is a row with its parsed date.
type dated struct {
	Row
	date time.Time
}

// selectRows keeps the rows of the selected programs with a readable date
// accepted by keep.
func selectRows(rows []Row, programs []string, keep func(time.Time) bool) []dated {
	set := newProgramSet(programs)

	var out []dated
	for _, row := range rows {
		if !set.has(row.Program) {
			continue
		}
		date, ok := row.Date()
		if !ok || !keep(date) {
			continue
		}
		out = append(out, dated{Row: row, date: date})
	}
	return out
}

func chronological(rows []dated) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].date.Before(rows[j].date)
	})
}

func plain(rows []dated) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Row
	}
	return out
}
