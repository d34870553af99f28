package programs

import (
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/radio-guiones/app/store"
)

func TestFichasImportAndOn(t *testing.T) {
	f := NewFichas(store.NewMemoryStore())

	rule := strings.Repeat("_", 56)
	raw := "Programa: Sembrando Valores\nFrecuencia: Lunes a viernes\n" + rule +
		"\nPrograma: Dominical Campesino\nFrecuencia: Dominical\n"

	result, err := f.Import(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Expected 2 fichas, got %d", len(result.Records))
	}

	sunday := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	onSunday, err := f.On(sunday)
	if err != nil {
		t.Fatal(err)
	}
	if len(onSunday) != 1 || onSunday[0].Name != "Dominical Campesino" {
		t.Errorf("Unexpected Sunday programs: %+v", onSunday)
	}

	monday := sunday.AddDate(0, 0, 1)
	onMonday, _ := f.On(monday)
	if len(onMonday) != 1 || onMonday[0].Name != "Sembrando Valores" {
		t.Errorf("Unexpected Monday programs: %+v", onMonday)
	}
}

func TestFichasImportRejectsEmpty(t *testing.T) {
	f := NewFichas(store.NewMemoryStore())

	if _, err := f.Import("Horario: 9:00"); err == nil {
		t.Error("Expected error when no ficha names a program")
	}

	fichas, err := f.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(fichas) != 0 {
		t.Errorf("Expected no stored fichas, got %d", len(fichas))
	}
}
