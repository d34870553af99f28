// Package catalog answers what a program pays a role at a given level.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

var (
	ErrProgramNotFound = errors.New("program not in catalog")
	ErrRoleNotFound    = errors.New("role not in program")
	ErrLevelNotPriced  = errors.New("level not priced")
	ErrAmbiguous       = errors.New("name matches several catalog entries")
)

// roleAliases maps staff classifications onto the role names used by the
// catalog text.
var roleAliases = map[string]string{
	"realizador de sonido": "realizador",
}

const (
	directorRole        = "director"
	musicProductionRole = "produccion musical"
)

type Catalog struct {
	programs []records.ProgramCatalog
}

func New(programs []records.ProgramCatalog) *Catalog {
	return &Catalog{programs: programs}
}

func (c *Catalog) Programs() []records.ProgramCatalog {
	return c.programs
}

// Lookup returns the rate of role at level in program. The director of a
// program also earns the music production rate at the same level when the
// program prices one.
func (c *Catalog) Lookup(program, role, level string) (float64, error) {
	rate, err := c.amount(program, role, level, rateTable)
	if err != nil {
		return 0, err
	}

	if textnorm.Normalize(role) == directorRole {
		if extra, err := c.amount(program, musicProductionRole, level, rateTable); err == nil {
			rate += extra
		}
	}

	return rate, nil
}

// Rate is Lookup with every failure read as zero.
func (c *Catalog) Rate(program, role, level string) float64 {
	rate, _ := c.Lookup(program, role, level)
	return rate
}

// Salary reads the salary table of role at level.
func (c *Catalog) Salary(program, role, level string) (float64, error) {
	return c.amount(program, role, level, salaryTable)
}

func rateTable(r *records.RolePaymentInfo) []records.LevelAmount   { return r.Rates }
func salaryTable(r *records.RolePaymentInfo) []records.LevelAmount { return r.Salaries }

func (c *Catalog) amount(program, role, level string, table func(*records.RolePaymentInfo) []records.LevelAmount) (float64, error) {
	p, err := c.findProgram(program)
	if err != nil {
		return 0, err
	}

	r, err := findRole(p, role)
	if err != nil {
		return 0, err
	}

	level = strings.TrimSpace(level)
	for _, entry := range table(r) {
		if entry.Level == level {
			return entry.Amount, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %s level %q", ErrLevelNotPriced, p.Name, r.Role, level)
}

func (c *Catalog) findProgram(name string) (*records.ProgramCatalog, error) {
	needle := textnorm.Normalize(name)
	if needle == "" {
		return nil, ErrProgramNotFound
	}

	var candidates []*records.ProgramCatalog
	for i := range c.programs {
		p := &c.programs[i]
		if textnorm.Normalize(p.Name) == needle {
			return p, nil
		}
		if textnorm.Contains(p.Name, needle) {
			candidates = append(candidates, p)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrProgramNotFound, name)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%w: program %q", ErrAmbiguous, name)
	}
}

func findRole(program *records.ProgramCatalog, name string) (*records.RolePaymentInfo, error) {
	needle := textnorm.Normalize(name)
	if alias, ok := roleAliases[needle]; ok {
		needle = alias
	}
	if needle == "" {
		return nil, ErrRoleNotFound
	}

	var candidates []*records.RolePaymentInfo
	for i := range program.Roles {
		r := &program.Roles[i]
		if textnorm.Normalize(r.Role) == needle {
			return r, nil
		}
		if textnorm.Contains(r.Role, needle) {
			candidates = append(candidates, r)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %q in %s", ErrRoleNotFound, name, program.Name)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%w: role %q in %s", ErrAmbiguous, name, program.Name)
	}
}
