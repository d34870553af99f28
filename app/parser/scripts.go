package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/records"
)

var scriptDelimiter = regexp.MustCompile(`_{4,}`)

// labelField matches "Label: value" where the value runs up to the next
// capitalized "Word:" label or the end of the block.
func labelField(labels string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)(?:^|\s)(?i:` + labels + `)\s*:[ \t]*(.*?)(?:\s+\p{Lu}[\p{L}/]*\s*:|\z)`)
}

var (
	titleField   = labelField(`Título|Titulo|Titular`)
	writerField  = labelField(`Escritor|Escritora|Autor|Autora`)
	advisorField = labelField(`Asesor|Asesora`)
	dateField    = labelField(`Fecha`)
	themesField  = labelField(`Temáticas|Tematicas|Temática|Tematica|Temas|Tema`)
	programField = labelField(`Programa|Género|Genero`)
	contentField = labelField(`Contenido`)

	themeSeparator = regexp.MustCompile(`[,;]`)
)

// ParseScripts reads a bulk script export. Blocks are separated by runs of
// four or more underscores; a block with no known label is skipped.
func ParseScripts(raw string, now time.Time) Result[records.Script] {
	var result Result[records.Script]

	for _, block := range splitBlocks(raw, scriptDelimiter) {
		script, withDefaults, ok := parseScriptBlock(block, now)
		if !ok {
			result.Skipped++
			continue
		}
		if withDefaults {
			result.WithDefaults++
		}
		result.Records = append(result.Records, script)
	}

	return result
}

func parseScriptBlock(block string, now time.Time) (records.Script, bool, bool) {
	title, hasTitle := extract(titleField, block)
	writer, hasWriter := extract(writerField, block)
	advisor, hasAdvisor := extract(advisorField, block)
	rawDate, hasDate := extract(dateField, block)
	rawThemes, hasThemes := extract(themesField, block)
	program, hasProgram := extract(programField, block)
	content, _ := extract(contentField, block)

	if !hasTitle && !hasWriter && !hasAdvisor && !hasDate && !hasThemes && !hasProgram {
		return records.Script{}, false, false
	}

	titleF := orDefault(title, records.UntitledScript)
	writerF := orDefault(writer, records.UnknownWriter)
	advisorF := orDefault(advisor, records.UnknownAdvisor)
	programF := orDefault(program, records.UnknownGenre)
	dateF := parseDateField(rawDate, now)
	themes, themesFallback := splitThemes(rawThemes)

	script := records.Script{
		ID:        uuid.NewString(),
		Title:     titleF.value,
		Genre:     programF.value,
		DateAdded: dateF.value,
		Writer:    writerF.value,
		Advisor:   advisorF.value,
		Themes:    themes,
		Content:   strings.TrimSpace(content),
	}

	withDefaults := themesFallback || anyFallback(titleF, writerF, advisorF, programF, dateF)
	return script, withDefaults, true
}

func extract(re *regexp.Regexp, block string) (string, bool) {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func parseDateField(raw string, now time.Time) field {
	if strings.TrimSpace(raw) == "" {
		return field{value: dates.ISO(now), fallback: true}
	}
	t, fallback := dates.ParseAt(raw, now)
	return field{value: dates.ISO(t), fallback: fallback}
}

func splitThemes(raw string) ([]string, bool) {
	var themes []string
	for _, theme := range themeSeparator.Split(raw, -1) {
		if theme = strings.TrimSpace(theme); theme != "" {
			themes = append(themes, theme)
		}
	}
	if len(themes) == 0 {
		return []string{records.DefaultTheme}, true
	}
	return themes, false
}
