// Package dates reads the date strings found in station exports: ISO dates,
// Spanish day-first dates, month/year pairs and free text such as
// "15 de enero de 2024".
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

const isoLayout = "2006-01-02"

var (
	isoPattern       = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	dayFirstPattern  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
	monthYearPattern = regexp.MustCompile(`^(\d{1,2})[-/](\d{4})$`)
	yearToken        = regexp.MustCompile(`\b(20\d{2})\b`)
	dayToken         = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// MonthNames holds the Spanish month names, January first.
var MonthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var monthAbbreviations = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// Parse never fails. Input that matches no rule yields the current time.
func Parse(s string) time.Time {
	t, _ := ParseAt(s, time.Now())
	return t
}

// ParseAt applies the parsing rules in order and reports whether it had to
// fall back to now.
func ParseAt(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, true
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return date(atoi(m[1]), atoi(m[2]), atoi(m[3])), false
	}

	if m := dayFirstPattern.FindStringSubmatch(s); m != nil {
		first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if second > 12 {
			return date(year, first, second), false
		}
		return date(year, second, first), false
	}

	if m := monthYearPattern.FindStringSubmatch(s); m != nil {
		return date(atoi(m[2]), atoi(m[1]), 1), false
	}

	if t, ok := parseSpanishText(s, now); ok {
		return t, false
	}

	if t, err := dateparse.ParseLocal(s); err == nil {
		return t, false
	}

	return now, true
}

// Valid reports whether s can be read without falling back to now.
func Valid(s string) bool {
	_, fallback := ParseAt(s, time.Now())
	return !fallback
}

// Format renders s as "15 de enero de 2024", or returns s unchanged when it
// cannot be read.
func Format(s string) string {
	t, fallback := ParseAt(s, time.Now())
	if fallback {
		return s
	}
	return Long(t)
}

// Long renders t as "<day> de <month> de <year>".
func Long(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), MonthNames[t.Month()-1], t.Year())
}

// ISO renders t as YYYY-MM-DD, the stored form of record dates.
func ISO(t time.Time) string {
	return t.Format(isoLayout)
}

// WeekOfMonth is the calendar week of the month, ceil(day/7).
func WeekOfMonth(t time.Time) int {
	return (t.Day() + 6) / 7
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Midnight truncates t to the start of its day in the local zone.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func parseSpanishText(s string, now time.Time) (time.Time, bool) {
	text := textnorm.Normalize(s)

	month := findMonth(text)
	if month == 0 {
		return time.Time{}, false
	}

	year := now.Year()
	if m := yearToken.FindStringSubmatch(text); m != nil {
		year = atoi(m[1])
		text = strings.Replace(text, m[1], " ", 1)
	}

	day := 1
	if m := dayToken.FindStringSubmatch(text); m != nil {
		day = atoi(m[1])
	}

	return date(year, month, day), true
}

func findMonth(text string) int {
	for i, name := range MonthNames {
		if strings.Contains(text, name) {
			return i + 1
		}
	}
	if strings.Contains(text, "setiembre") {
		return 9
	}
	for i, abbr := range monthAbbreviations {
		if strings.Contains(text, abbr) {
			return i + 1
		}
	}
	return 0
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
