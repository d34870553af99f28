package parser

import (
	"regexp"
	"strings"

	"github.com/lysyi3m/radio-guiones/app/records"
)

var fichaDelimiter = regexp.MustCompile(`(?m)^[ \t]*_{56}[ \t]*$`)

const (
	fichaProgram   = "Programa"
	fichaSchedule  = "Horario"
	fichaFrequency = "Frecuencia"
	fichaDuration  = "Duración"
	fichaAudience  = "Público"
	fichaMusicTime = "Tiempo de música"
	fichaTalkTime  = "Tiempo de palabra"

	objectiveMarker   = "Objetivo:"
	sectionsMarker    = "Secciones:"
	sectionsEndMarker = "Fin de secciones"
)

// ParseFichas reads program technical sheets separated by a line of exactly
// 56 underscores. Single-line fields are looked up by exact key; the
// objective runs from its marker to the sections marker and the sections run
// to their end marker or the end of the block.
func ParseFichas(raw string) Result[records.ProgramFicha] {
	var result Result[records.ProgramFicha]

	for _, block := range splitBlocks(raw, fichaDelimiter) {
		ficha, withDefaults, ok := parseFichaBlock(block)
		if !ok {
			result.Skipped++
			continue
		}
		if withDefaults {
			result.WithDefaults++
		}
		result.Records = append(result.Records, ficha)
	}

	return result
}

func parseFichaBlock(block string) (records.ProgramFicha, bool, bool) {
	fields := make(map[string]string)
	var objective []string
	var sections []string
	mode := ""

	for _, line := range nonEmptyLines(block) {
		switch {
		case strings.HasPrefix(line, objectiveMarker):
			mode = objectiveMarker
			if rest := strings.TrimSpace(strings.TrimPrefix(line, objectiveMarker)); rest != "" {
				objective = append(objective, rest)
			}
			continue
		case strings.HasPrefix(line, sectionsMarker):
			mode = sectionsMarker
			if rest := strings.TrimSpace(strings.TrimPrefix(line, sectionsMarker)); rest != "" {
				sections = append(sections, cleanSection(rest))
			}
			continue
		case line == sectionsEndMarker:
			mode = ""
			continue
		}

		switch mode {
		case objectiveMarker:
			objective = append(objective, line)
			continue
		case sectionsMarker:
			if section := cleanSection(line); section != "" {
				sections = append(sections, section)
			}
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	name := fields[fichaProgram]
	if name == "" {
		return records.ProgramFicha{}, false, false
	}

	ficha := records.ProgramFicha{
		Name:      name,
		Schedule:  fields[fichaSchedule],
		Frequency: fields[fichaFrequency],
		Duration:  fields[fichaDuration],
		Audience:  fields[fichaAudience],
		MusicTime: fields[fichaMusicTime],
		TalkTime:  fields[fichaTalkTime],
		Objective: strings.Join(objective, "\n"),
		Sections:  sections,
	}

	withDefaults := false
	for _, key := range []string{fichaSchedule, fichaFrequency, fichaDuration, fichaAudience, fichaMusicTime, fichaTalkTime} {
		if fields[key] == "" {
			withDefaults = true
		}
	}

	return ficha, withDefaults, true
}

func cleanSection(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-•* \t"))
}
