package reports

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

// MinFingerprintLength keeps very short titles out of the repeated topics.
const MinFingerprintLength = 4

// OneYearAgoWindow is the tolerance in days around the same date last year.
const OneYearAgoWindow = 3

// MonthGroup is the scripts of one program in one month.
type MonthGroup struct {
	Program string           `json:"program"`
	Month   int              `json:"month"`
	Scripts []records.Script `json:"scripts"`
}

// MonthlyTopics groups the scripts of year by program and month.
func MonthlyTopics(rows []Row, programs []string, year int) []MonthGroup {
	selected := selectRows(rows, programs, func(d time.Time) bool {
		return d.Year() == year
	})
	chronological(selected)

	index := make(map[string]int)
	var groups []MonthGroup
	for _, r := range selected {
		key := r.Program + "|" + r.date.Month().String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{Program: r.Program, Month: int(r.date.Month())})
		}
		groups[i].Scripts = append(groups[i].Scripts, r.Script)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Program != groups[j].Program {
			return groups[i].Program < groups[j].Program
		}
		return groups[i].Month < groups[j].Month
	})
	return groups
}

// Repeat is a script whose title shares its fingerprint with another one.
type Repeat struct {
	Row
	Fingerprint string `json:"fingerprint"`
	Count       int    `json:"count"`
}

// RepeatedTopics returns the scripts of the given years whose title, with
// its words sorted, appears more than once.
func RepeatedTopics(rows []Row, programs []string, years []int) []Repeat {
	wanted := make(map[int]bool, len(years))
	for _, y := range years {
		wanted[y] = true
	}

	selected := selectRows(rows, programs, func(d time.Time) bool {
		return wanted[d.Year()]
	})

	counts := make(map[string]int)
	prints := make([]string, len(selected))
	for i, r := range selected {
		fp := textnorm.Fingerprint(r.Script.Title)
		if utf8.RuneCountInString(fp) < MinFingerprintLength {
			continue
		}
		prints[i] = fp
		counts[fp]++
	}

	type repeat struct {
		Repeat
		date time.Time
	}
	var repeats []repeat
	for i, r := range selected {
		if fp := prints[i]; fp != "" && counts[fp] > 1 {
			repeats = append(repeats, repeat{
				Repeat: Repeat{Row: r.Row, Fingerprint: fp, Count: counts[fp]},
				date:   r.date,
			})
		}
	}

	sort.SliceStable(repeats, func(i, j int) bool {
		if repeats[i].Fingerprint != repeats[j].Fingerprint {
			return repeats[i].Fingerprint < repeats[j].Fingerprint
		}
		return repeats[i].date.Before(repeats[j].date)
	})

	out := make([]Repeat, len(repeats))
	for i, r := range repeats {
		out[i] = r.Repeat
	}
	return out
}

// Detailed filters by year and, when non-zero, by month and week of month.
func Detailed(rows []Row, programs []string, year, month, week int) []Row {
	selected := selectRows(rows, programs, func(d time.Time) bool {
		if d.Year() != year {
			return false
		}
		if month != 0 && int(d.Month()) != month {
			return false
		}
		return week == 0 || dates.WeekOfMonth(d) == week
	})
	chronological(selected)

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Program < selected[j].Program
	})
	return plain(selected)
}

// OneYearAgo returns the scripts aired within a few days of the same
// calendar date one year before today.
func OneYearAgo(rows []Row, programs []string, today time.Time) []Row {
	target := dates.Midnight(today).AddDate(-1, 0, 0)
	from := target.AddDate(0, 0, -OneYearAgoWindow)
	to := target.AddDate(0, 0, OneYearAgoWindow)

	selected := selectRows(rows, programs, func(d time.Time) bool {
		d = dates.Midnight(d)
		return !d.Before(from) && !d.After(to)
	})
	chronological(selected)
	return plain(selected)
}

// MonthlyDigest returns the scripts of one month between two days of that
// month, inclusive, that carry a real writer and advisor.
func MonthlyDigest(rows []Row, programs []string, year, month, fromDay, toDay int) []Row {
	selected := selectRows(rows, programs, func(d time.Time) bool {
		return d.Year() == year && int(d.Month()) == month && d.Day() >= fromDay && d.Day() <= toDay
	})

	var credited []dated
	for _, r := range selected {
		if isCredited(r.Script.Writer) && isCredited(r.Script.Advisor) {
			credited = append(credited, r)
		}
	}
	chronological(credited)
	return plain(credited)
}

var placeholderMarks = []string{"no especificado", "pecificado"}

func isCredited(name string) bool {
	n := textnorm.Normalize(name)
	if n == "" {
		return false
	}
	for _, mark := range placeholderMarks {
		if strings.Contains(n, mark) {
			return false
		}
	}
	return true
}

// Gap is a script with missing metadata.
type Gap struct {
	Row
	Missing []string `json:"missing"`
}

// Metadata fields reported by Balance.
const (
	MissingWriter  = "writer"
	MissingAdvisor = "advisor"
	MissingThemes  = "themes"
)

// Balance lists the scripts of the selected programs whose writer, advisor
// or themes are empty or still hold the import placeholders.
func Balance(rows []Row, programs []string) []Gap {
	set := newProgramSet(programs)

	var gaps []Gap
	for _, row := range rows {
		if !set.has(row.Program) {
			continue
		}

		var missing []string
		if !isCredited(row.Script.Writer) || textnorm.Equal(row.Script.Writer, records.UnknownWriter) {
			missing = append(missing, MissingWriter)
		}
		if !isCredited(row.Script.Advisor) {
			missing = append(missing, MissingAdvisor)
		}
		if !hasThemes(row.Script.Themes) {
			missing = append(missing, MissingThemes)
		}

		if len(missing) > 0 {
			gaps = append(gaps, Gap{Row: row, Missing: missing})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Program < gaps[j].Program
	})
	return gaps
}

func hasThemes(themes []string) bool {
	for _, theme := range themes {
		n := textnorm.Normalize(theme)
		if n != "" && !textnorm.Equal(n, records.DefaultTheme) {
			return true
		}
	}
	return false
}
