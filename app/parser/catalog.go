package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

var (
	catalogDelimiter = regexp.MustCompile(`_{10,}`)
	levelLine        = regexp.MustCompile(`^(?:-\s*)?([IVX]+|SR)\s*:\s*(.*)$`)
	keyValueLine     = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	programLine      = regexp.MustCompile(`^(?i:Programa)\s*:\s*(.*)$`)
)

type levelMode int

const (
	modeNone levelMode = iota
	modeSalaries
	modeRates
)

// ParseCatalog reads the payment catalog: one block per program, separated by
// runs of ten or more underscores. The first line names the program; each
// line that is not a field, a section header or a level entry opens a role.
func ParseCatalog(raw string) Result[records.ProgramCatalog] {
	var result Result[records.ProgramCatalog]

	for _, block := range splitBlocks(raw, catalogDelimiter) {
		program, ok := parseCatalogBlock(block)
		if !ok {
			result.Skipped++
			continue
		}
		if len(program.Roles) == 0 {
			result.WithDefaults++
		}
		result.Records = append(result.Records, program)
	}

	return result
}

func parseCatalogBlock(block string) (records.ProgramCatalog, bool) {
	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return records.ProgramCatalog{}, false
	}

	name := lines[0]
	if m := programLine.FindStringSubmatch(name); m != nil {
		name = m[1]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return records.ProgramCatalog{}, false
	}

	program := records.ProgramCatalog{Name: name}
	var current *records.RolePaymentInfo
	mode := modeNone

	emit := func() {
		if current != nil {
			program.Roles = append(program.Roles, *current)
		}
	}

	for _, line := range lines[1:] {
		if m := levelLine.FindStringSubmatch(line); m != nil {
			if current == nil || mode == modeNone {
				continue
			}
			amount, _ := ParseAmount(m[2])
			entry := records.LevelAmount{Level: m[1], Amount: amount}
			if mode == modeSalaries {
				current.Salaries = append(current.Salaries, entry)
			} else {
				current.Rates = append(current.Rates, entry)
			}
			continue
		}

		header := textnorm.Normalize(line)
		switch {
		case strings.HasPrefix(header, "salarios por niveles"):
			mode = modeSalaries
			continue
		case strings.HasPrefix(header, "tasas por niveles"):
			mode = modeRates
			continue
		}

		if m := keyValueLine.FindStringSubmatch(line); m != nil {
			if current == nil {
				continue
			}
			switch strings.ReplaceAll(textnorm.Normalize(m[1]), " ", "") {
			case "porcentaje":
				current.Percentage, _ = ParseAmount(strings.TrimSuffix(strings.TrimSpace(m[2]), "%"))
			case "tr":
				current.TR = strings.TrimSpace(m[2])
			}
			continue
		}

		emit()
		current = &records.RolePaymentInfo{Role: strings.TrimSpace(strings.TrimSuffix(line, ":"))}
		mode = modeNone
	}
	emit()

	return program, true
}

// ParseAmount reads a money amount such as "$1.250,50", "1,250.50" or "300".
// A lone separator followed by exactly three digits is read as a thousands
// separator.
func ParseAmount(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return 0, false
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		clean = normalizeSingleSeparator(clean, ",")
	case lastDot >= 0:
		clean = normalizeSingleSeparator(clean, ".")
	}

	amount, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func normalizeSingleSeparator(s, sep string) string {
	parts := strings.Split(s, sep)
	if len(parts) > 2 || len(parts[len(parts)-1]) == 3 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, ".")
}
