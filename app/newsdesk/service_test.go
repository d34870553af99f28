package newsdesk

import (
	"errors"
	"testing"
	"time"

	"github.com/lysyi3m/radio-guiones/app/parser"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
)

func newTestService() *Service {
	s := NewService(store.NewMemoryStore())
	s.now = func() time.Time { return time.Date(2026, 10, 15, 8, 0, 0, 0, time.Local) }
	return s
}

func TestImportReplacesNews(t *testing.T) {
	s := newTestService()

	first := "Titular: Inicia la zafra\nAutor: Carmen\nTexto: Primera noticia.\n___\nTitular: Festival\nAutor: Luis\nTexto: Segunda noticia."
	if _, err := s.Import(first); err != nil {
		t.Fatal(err)
	}

	items, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Inicia la zafra" || items[1].Title != "Festival" {
		t.Errorf("Expected source order, got %q, %q", items[0].Title, items[1].Title)
	}
	if items[0].Date != "2026-10-15" || items[0].Category != records.DefaultNewsLabel {
		t.Errorf("Unexpected defaults: %+v", items[0])
	}

	second := "Titular: Nuevo titular\nAutor: Ana\nTexto: Reemplazo."
	if _, err := s.Import(second); err != nil {
		t.Fatal(err)
	}

	items, _ = s.List()
	if len(items) != 1 || items[0].Title != "Nuevo titular" {
		t.Errorf("Expected the second import to replace the list, got %+v", items)
	}
}

func TestImportWithoutItemsKeepsNews(t *testing.T) {
	s := newTestService()

	if _, err := s.Import("Titular: Uno\nTexto: x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Import("Autor: sin titular"); !errors.Is(err, parser.ErrNoRecords) {
		t.Errorf("Expected ErrNoRecords, got %v", err)
	}

	items, _ := s.List()
	if len(items) != 1 {
		t.Errorf("Expected the previous news to stay, got %d items", len(items))
	}
}

func TestAddAndDelete(t *testing.T) {
	s := newTestService()

	if _, err := s.Import("Titular: Antigua\nTexto: x"); err != nil {
		t.Fatal(err)
	}

	item, err := s.Add(records.NewsItem{Title: "Urgente", Content: "Texto", Date: "20 de octubre de 2026"})
	if err != nil {
		t.Fatal(err)
	}
	if item.Author != records.DefaultNewsBy || item.Date != "2026-10-20" || item.ID == "" {
		t.Errorf("Unexpected item: %+v", item)
	}

	items, _ := s.List()
	if len(items) != 2 || items[0].ID != item.ID {
		t.Errorf("Expected the new item first, got %+v", items)
	}

	if _, err := s.Add(records.NewsItem{Title: " "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("Expected ErrTitleRequired, got %v", err)
	}

	if err := s.Delete(item.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	items, _ = s.List()
	if len(items) != 1 || items[0].Title != "Antigua" {
		t.Errorf("Unexpected items after delete: %+v", items)
	}
}
