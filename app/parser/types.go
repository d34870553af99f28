// Package parser turns the plain-text exports produced by station staff into
// typed records. Parsers never fail: missing fields take placeholder values
// and the result reports how many records needed them.
package parser

import (
	"errors"
	"regexp"
	"strings"
)

var ErrNoRecords = errors.New("no valid records found")

// Result is the outcome of one import.
type Result[T any] struct {
	Records      []T
	WithDefaults int // records where at least one field fell back to its default
	Skipped      int // blocks or lines that produced no record
}

// Err returns ErrNoRecords when nothing usable was parsed.
func (r Result[T]) Err() error {
	if len(r.Records) == 0 {
		return ErrNoRecords
	}
	return nil
}

// field is a parsed value tagged with whether the default was used.
type field struct {
	value    string
	fallback bool
}

func orDefault(value, def string) field {
	value = strings.TrimSpace(value)
	if value == "" {
		return field{value: def, fallback: true}
	}
	return field{value: value}
}

func anyFallback(fields ...field) bool {
	for _, f := range fields {
		if f.fallback {
			return true
		}
	}
	return false
}

// splitBlocks cuts raw on delimiter and drops blank blocks.
func splitBlocks(raw string, delimiter *regexp.Regexp) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var blocks []string
	for _, block := range delimiter.Split(raw, -1) {
		if block = strings.TrimSpace(block); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
