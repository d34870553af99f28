package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lysyi3m/radio-guiones/app/records"
)

func TestParseFichas(t *testing.T) {
	rule := strings.Repeat("_", 56)
	raw := strings.Join([]string{
		"Programa: Sembrando Valores",
		"Horario: 9:00 a.m. - 9:30 a.m.",
		"Frecuencia: Lunes a viernes",
		"Duración: 30 minutos",
		"Público: Infantil",
		"Tiempo de música: 40%",
		"Tiempo de palabra: 60%",
		"Objetivo: Promover valores",
		"en niños y niñas.",
		"Secciones:",
		"- Cuento del día",
		"• Adivinanzas",
		"Fin de secciones",
		rule,
		"Horario: sin programa",
		rule,
		"Programa: Deportes al Día",
		"Frecuencia: Diario",
		"Secciones: Resultados",
		"Entrevista",
	}, "\n")

	result := ParseFichas(raw)

	want := []records.ProgramFicha{
		{
			Name:      "Sembrando Valores",
			Schedule:  "9:00 a.m. - 9:30 a.m.",
			Frequency: "Lunes a viernes",
			Duration:  "30 minutos",
			Audience:  "Infantil",
			MusicTime: "40%",
			TalkTime:  "60%",
			Objective: "Promover valores\nen niños y niñas.",
			Sections:  []string{"Cuento del día", "Adivinanzas"},
		},
		{
			Name:      "Deportes al Día",
			Frequency: "Diario",
			Sections:  []string{"Resultados", "Entrevista"},
		},
	}

	if diff := cmp.Diff(want, result.Records); diff != "" {
		t.Errorf("ParseFichas mismatch (-want +got):\n%s", diff)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped block, got %d", result.Skipped)
	}
	if result.WithDefaults != 1 {
		t.Errorf("Expected 1 ficha with defaults, got %d", result.WithDefaults)
	}
}

func TestParseFichasRequiresExactDelimiter(t *testing.T) {
	raw := "Programa: Uno\n" + strings.Repeat("_", 55) + "\nPrograma: Dos"

	result := ParseFichas(raw)
	if len(result.Records) != 1 {
		t.Fatalf("Expected 1 ficha, got %d", len(result.Records))
	}
	if result.Records[0].Name != "Dos" {
		t.Errorf("Expected the later key to win inside one block, got %q", result.Records[0].Name)
	}
}

func TestParseFichasKeysAreExact(t *testing.T) {
	raw := "programa: minúsculas\nPrograma : Con espacio"

	result := ParseFichas(raw)
	if len(result.Records) != 1 || result.Records[0].Name != "Con espacio" {
		t.Errorf("Unexpected fichas: %+v", result.Records)
	}
}
