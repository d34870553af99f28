package guiones

import (
	"errors"
	"testing"
	"time"

	"github.com/lysyi3m/radio-guiones/app/records"
)

func TestSearch(t *testing.T) {
	s := newTestService(t)

	for _, script := range []records.Script{
		{Title: "Día del Medio Ambiente", Writer: "María Pérez"},
		{Title: "El son", Writer: "Pedro", Advisor: "José Martí"},
		{Title: "Cocina", Writer: "Ana", Themes: []string{"Tradición"}},
	} {
		if _, err := s.Add("sembrando-valores", script); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"medio ambiente", 1},
		{"PEREZ", 1},
		{"marti", 1},
		{"tradicion", 1},
		{"nada", 0},
	}

	for _, tt := range tests {
		hits, err := s.Search(tt.query)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		if len(hits) != tt.want {
			t.Errorf("Search(%q) = %d hits, want %d", tt.query, len(hits), tt.want)
		}
	}

	if _, err := s.Search(" ¡! "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchHistory(t *testing.T) {
	s := newTestService(t)

	now := testNow
	s.now = func() time.Time { return now }

	for _, q := range []string{"son", "cocina", "Son"} {
		if _, err := s.Search(q); err != nil {
			t.Fatal(err)
		}
	}

	history, err := s.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].Query != "cocina" || history[1].Query != "Son" {
		t.Errorf("Unexpected history: %+v", history)
	}

	now = testNow.Add(HistoryTTL + time.Minute)
	if history, _ := s.History(); len(history) != 0 {
		t.Errorf("Expected expired history to be hidden, got %+v", history)
	}

	removed, err := s.PruneHistory()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 pruned entries, got %d", removed)
	}

	stored, _ := s.store.Get(records.KeySearchHistory, &[]records.SearchEntry{})
	if !stored {
		t.Error("Expected the pruned history to be written back")
	}
}
