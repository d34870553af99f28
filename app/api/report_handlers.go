package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/reports"
	"github.com/lysyi3m/radio-guiones/app/users"
)

// Report kinds served by APIReport.
const (
	ReportMonthly    = "monthly"
	ReportRepeated   = "repeated"
	ReportDetailed   = "detailed"
	ReportOneYearAgo = "one-year-ago"
	ReportDigest     = "digest"
	ReportBalance    = "balance"
)

// APIReport runs one report over every stored script. Programs are picked
// with repeated ?program= parameters; without any, all programs are used.
// ?format= selects json (default), txt or doc.
func (h *Handler) APIReport(c *gin.Context) {
	kind := c.Param("kind")
	now := h.now()

	rows, err := h.scripts.All()
	if err != nil {
		respondError(c, "report", err)
		return
	}
	selected := h.selection(c, rows)

	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return
	}

	var (
		table  reports.Table
		result any
		digest []reports.Row
	)

	switch kind {
	case ReportMonthly:
		groups := reports.MonthlyTopics(rows, selected, year)
		result = groups
		table = reports.MonthlyTable(fmt.Sprintf("Temas por mes %d", year), groups)

	case ReportRepeated:
		years, ok := queryYears(c, year)
		if !ok {
			return
		}
		repeats := reports.RepeatedTopics(rows, selected, years)
		result = repeats
		table = reports.RepeatsTable("Temas repetidos", repeats)

	case ReportDetailed:
		month, ok := queryInt(c, "month", 0)
		if !ok {
			return
		}
		week, ok := queryInt(c, "week", 0)
		if !ok {
			return
		}
		detailed := reports.Detailed(rows, selected, year, month, week)
		result = detailed
		table = reports.RowsTable(fmt.Sprintf("Reporte detallado %d", year), detailed)

	case ReportOneYearAgo:
		found := reports.OneYearAgo(rows, selected, now)
		result = found
		table = reports.RowsTable("Hace un año: "+dates.Long(now.AddDate(-1, 0, 0)), found)

	case ReportDigest:
		user, err := h.users.Get(c.Query("user"))
		if err != nil || !users.CanViewDigest(user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "digest requires a director or administrator"})
			return
		}
		month, ok := queryInt(c, "month", int(now.Month()))
		if !ok {
			return
		}
		from, ok := queryInt(c, "from", 1)
		if !ok {
			return
		}
		to, ok := queryInt(c, "to", 31)
		if !ok {
			return
		}
		if month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}
		digest = reports.MonthlyDigest(rows, selected, year, month, from, to)
		result = digest
		table = reports.RowsTable(fmt.Sprintf("Resumen de %s %d", dates.MonthNames[month-1], year), digest)

	case ReportBalance:
		gaps := reports.Balance(rows, selected)
		result = gaps
		table = reports.BalanceTable("Balance de guiones", gaps)

	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown report " + kind})
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "txt":
		text := reports.Text(table)
		if kind == ReportDigest {
			text = reports.DigestText(digest)
		}
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.String(http.StatusOK, text)
	case "doc":
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.doc"`, kind))
		c.Data(http.StatusOK, "application/msword", reports.Doc(table))
	case "json":
		c.JSON(http.StatusOK, gin.H{"report": kind, "programs": selected, "result": result})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, txt or doc"})
	}
}

// selection resolves the ?program= parameters against the known programs.
func (h *Handler) selection(c *gin.Context, rows []reports.Row) []string {
	all := h.registry.Names()
	known := make(map[string]bool, len(all))
	for _, name := range all {
		known[name] = true
	}
	for _, row := range rows {
		if !known[row.Program] {
			known[row.Program] = true
			all = append(all, row.Program)
		}
	}

	sel := reports.NewSelection(all)
	picked := c.QueryArray("program")
	if len(picked) == 0 {
		sel.ToggleAll()
		return sel.Programs()
	}
	for _, program := range picked {
		sel.Toggle(strings.TrimSpace(program))
	}
	return sel.Programs()
}

func queryYears(c *gin.Context, def int) ([]int, bool) {
	raw := c.QueryArray("years")
	if len(raw) == 0 {
		return []int{def}, true
	}

	years := make([]int, 0, len(raw))
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			y, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "years must be numbers"})
				return nil, false
			}
			years = append(years, y)
		}
	}
	return years, true
}
