package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/records"
)

var (
	newsDelimiter = regexp.MustCompile(`(?m)^[ \t]*_{3,}[ \t]*$`)
	headlineMark  = regexp.MustCompile(`(?i)titular\s*:`)
	authorMark    = regexp.MustCompile(`(?i)autor\s*:`)
	textMark      = regexp.MustCompile(`(?i)texto\s*:`)
)

// ParseNews reads a news export. Blocks are separated by lines made only of
// underscores; blocks without a headline are skipped.
func ParseNews(raw string, now time.Time) Result[records.NewsItem] {
	var result Result[records.NewsItem]

	for _, block := range splitBlocks(raw, newsDelimiter) {
		item, withDefaults, ok := parseNewsBlock(block, now)
		if !ok {
			result.Skipped++
			continue
		}
		if withDefaults {
			result.WithDefaults++
		}
		result.Records = append(result.Records, item)
	}

	return result
}

func parseNewsBlock(block string, now time.Time) (records.NewsItem, bool, bool) {
	head := headlineMark.FindStringIndex(block)
	if head == nil {
		return records.NewsItem{}, false, false
	}
	rest := block[head[1]:]

	author := authorMark.FindStringIndex(rest)
	text := textMark.FindStringIndex(rest)

	titleEnd := len(rest)
	for _, idx := range [][]int{author, text} {
		if idx != nil && idx[0] < titleEnd {
			titleEnd = idx[0]
		}
	}
	title := strings.TrimSpace(rest[:titleEnd])
	if title == "" {
		return records.NewsItem{}, false, false
	}

	var rawAuthor string
	if author != nil {
		authorEnd := len(rest)
		if text != nil && text[0] > author[1] {
			authorEnd = text[0]
		}
		rawAuthor = rest[author[1]:authorEnd]
	}
	authorF := orDefault(rawAuthor, records.DefaultNewsBy)

	var content string
	if text != nil {
		content = strings.TrimSpace(rest[text[1]:])
	}

	item := records.NewsItem{
		ID:       uuid.NewString(),
		Title:    title,
		Author:   authorF.value,
		Content:  content,
		Date:     dates.ISO(now),
		Category: DetectCategory(title, content),
	}

	return item, authorF.fallback || content == "", true
}

// DetectCategory classifies a news item. Every item is currently filed under
// the generic category.
func DetectCategory(title, content string) string {
	return records.DefaultNewsLabel
}
