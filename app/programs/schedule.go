package programs

import (
	"strings"
	"time"

	"github.com/lysyi3m/radio-guiones/app/records"
)

var dayKeywords = map[time.Weekday][]string{
	time.Sunday:    {"domingo", "dominical"},
	time.Monday:    {"lunes"},
	time.Tuesday:   {"martes"},
	time.Wednesday: {"miércoles", "miercoles"},
	time.Thursday:  {"jueves"},
	time.Friday:    {"viernes"},
	time.Saturday:  {"sábado", "sabado", "sabatina"},
}

// IsOnDay reports whether a program with the given frequency text airs on day.
// Only case is folded here; both accented and plain spellings are listed.
func IsOnDay(frequency string, day time.Weekday) bool {
	f := strings.ToLower(frequency)

	switch {
	case strings.Contains(f, "diario"), strings.Contains(f, "lunes a domingo"):
		return true
	case strings.Contains(f, "lunes a sábado"), strings.Contains(f, "lunes a sabado"):
		return day != time.Sunday
	case strings.Contains(f, "lunes a viernes"):
		return day != time.Saturday && day != time.Sunday
	}

	for _, keyword := range dayKeywords[day] {
		if strings.Contains(f, keyword) {
			return true
		}
	}
	return false
}

// ScheduledOn returns the fichas whose frequency includes the weekday of date.
func ScheduledOn(fichas []records.ProgramFicha, date time.Time) []records.ProgramFicha {
	var scheduled []records.ProgramFicha
	for _, f := range fichas {
		if IsOnDay(f.Frequency, date.Weekday()) {
			scheduled = append(scheduled, f)
		}
	}
	return scheduled
}
