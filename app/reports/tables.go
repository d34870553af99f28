package reports

import (
	"strconv"
	"strings"

	"github.com/lysyi3m/radio-guiones/app/dates"
)

var scriptHeaders = []string{"Programa", "Fecha", "Título", "Escritor", "Asesor", "Temas"}

func scriptCells(r Row) []string {
	return []string{
		r.Program,
		dates.Format(r.Script.DateAdded),
		r.Script.Title,
		r.Script.Writer,
		r.Script.Advisor,
		strings.Join(r.Script.Themes, ", "),
	}
}

// RowsTable tabulates plain script rows.
func RowsTable(title string, rows []Row) Table {
	t := Table{Title: title, Headers: scriptHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, scriptCells(r))
	}
	return t
}

func MonthlyTable(title string, groups []MonthGroup) Table {
	t := Table{Title: title, Headers: []string{"Programa", "Mes", "Guiones", "Títulos"}}
	for _, g := range groups {
		titles := make([]string, len(g.Scripts))
		for i, s := range g.Scripts {
			titles[i] = s.Title
		}
		t.Rows = append(t.Rows, []string{
			g.Program,
			dates.MonthNames[g.Month-1],
			strconv.Itoa(len(g.Scripts)),
			strings.Join(titles, "; "),
		})
	}
	return t
}

func RepeatsTable(title string, repeats []Repeat) Table {
	t := Table{Title: title, Headers: append([]string{"Veces"}, scriptHeaders...)}
	for _, r := range repeats {
		t.Rows = append(t.Rows, append([]string{strconv.Itoa(r.Count)}, scriptCells(r.Row)...))
	}
	return t
}

var missingLabels = map[string]string{
	MissingWriter:  "escritor",
	MissingAdvisor: "asesor",
	MissingThemes:  "temas",
}

func BalanceTable(title string, gaps []Gap) Table {
	t := Table{Title: title, Headers: append(append([]string{}, scriptHeaders...), "Falta")}
	for _, g := range gaps {
		missing := make([]string, len(g.Missing))
		for i, m := range g.Missing {
			missing[i] = missingLabels[m]
		}
		t.Rows = append(t.Rows, append(scriptCells(g.Row), strings.Join(missing, ", ")))
	}
	return t
}
