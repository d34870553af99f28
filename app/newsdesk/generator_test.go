package newsdesk

import (
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/radio-guiones/app/records"
)

func TestGeneratorProducesValidRSS(t *testing.T) {
	items := []records.NewsItem{
		{
			ID:       "news-1",
			Title:    "Inicia la zafra & la cosecha",
			Author:   "Carmen Díaz",
			Content:  "Los trabajadores <azucareros> comenzaron.",
			Date:     "2024-01-15",
			Category: "Noticia",
			Image:    "https://radio.example.com/zafra.jpg",
		},
		{
			ID:       "news-2",
			Title:    "Festival",
			Author:   "Redacción",
			Content:  "Fin de semana.",
			Date:     "2024-01-14",
			Category: "Noticia",
		},
	}

	channel := Channel{Title: "Radio Local", Link: "https://radio.example.com", Version: "test"}
	output, err := NewGenerator().Run(channel, items)
	if err != nil {
		t.Fatalf("Failed to generate RSS: %v", err)
	}

	feed, err := gofeed.NewParser().ParseString(output)
	if err != nil {
		t.Fatalf("Generated RSS does not parse: %v\n%s", err, output)
	}

	if feed.Title != "Radio Local" {
		t.Errorf("Expected channel title 'Radio Local', got %q", feed.Title)
	}
	if feed.Language != "es" {
		t.Errorf("Expected language 'es', got %q", feed.Language)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(feed.Items))
	}

	first := feed.Items[0]
	if first.Title != "Inicia la zafra & la cosecha" {
		t.Errorf("Unexpected item title %q", first.Title)
	}
	if first.GUID != "news-1" {
		t.Errorf("Expected guid 'news-1', got %q", first.GUID)
	}
	if len(first.Categories) != 1 || first.Categories[0] != "Noticia" {
		t.Errorf("Unexpected categories %v", first.Categories)
	}
	if first.PublishedParsed == nil || first.PublishedParsed.Day() != 15 {
		t.Errorf("Expected publication on the 15th, got %v", first.PublishedParsed)
	}
	if len(first.Enclosures) != 1 || first.Enclosures[0].URL != "https://radio.example.com/zafra.jpg" {
		t.Errorf("Unexpected enclosures %+v", first.Enclosures)
	}

	if !strings.Contains(output, `<atom:link href="https://radio.example.com/news/rss"`) {
		t.Error("Expected self link in channel")
	}
}

func TestGeneratorEmptyList(t *testing.T) {
	output, err := NewGenerator().Run(Channel{Title: "Radio Local", Link: "http://localhost:8080"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	feed, err := gofeed.NewParser().ParseString(output)
	if err != nil {
		t.Fatalf("Generated RSS does not parse: %v", err)
	}
	if len(feed.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(feed.Items))
	}
}
