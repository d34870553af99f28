package programs

import (
	"testing"
	"time"

	"github.com/lysyi3m/radio-guiones/app/records"
)

func TestIsOnDay(t *testing.T) {
	tests := []struct {
		frequency string
		day       time.Weekday
		want      bool
	}{
		{"Diario", time.Sunday, true},
		{"De lunes a domingo", time.Wednesday, true},
		{"Lunes a sábado", time.Saturday, true},
		{"Lunes a sabado", time.Sunday, false},
		{"Lunes a viernes", time.Friday, true},
		{"Lunes a viernes", time.Saturday, false},
		{"Dominical", time.Sunday, true},
		{"Dominical", time.Monday, false},
		{"Sabatina", time.Saturday, true},
		{"Martes y jueves", time.Tuesday, true},
		{"Martes y jueves", time.Thursday, true},
		{"Martes y jueves", time.Wednesday, false},
		{"MIÉRCOLES", time.Wednesday, true},
		{"Miercoles", time.Wednesday, true},
		{"", time.Monday, false},
	}

	for _, tt := range tests {
		if got := IsOnDay(tt.frequency, tt.day); got != tt.want {
			t.Errorf("IsOnDay(%q, %s) = %v, want %v", tt.frequency, tt.day, got, tt.want)
		}
	}
}

func TestScheduledOn(t *testing.T) {
	fichas := []records.ProgramFicha{
		{Name: "Matutino", Frequency: "Lunes a viernes"},
		{Name: "Campesino", Frequency: "Sabatina"},
		{Name: "Deportes", Frequency: "Diario"},
	}

	saturday := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.Local)
	got := ScheduledOn(fichas, saturday)
	if len(got) != 2 || got[0].Name != "Campesino" || got[1].Name != "Deportes" {
		t.Errorf("Unexpected programs on Saturday: %+v", got)
	}
}
