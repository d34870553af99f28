package reports

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"text/tabwriter"

	"github.com/lysyi3m/radio-guiones/app/dates"
)

// DigestRule separates the entries of the plain-text digest.
const DigestRule = "----------------------------------------"

// Table is the tabular form of a report, shared by the export sinks.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// DigestText renders the monthly digest as Programa/Fecha/Escritor entries
// for copy and paste.
func DigestText(rows []Row) string {
	var buf bytes.Buffer

	for i, row := range rows {
		if i > 0 {
			buf.WriteString(DigestRule)
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "Programa: %s\n", row.Program)
		fmt.Fprintf(&buf, "Fecha: %s\n", dates.Format(row.Script.DateAdded))
		fmt.Fprintf(&buf, "Escritor: %s\n", row.Script.Writer)
	}

	return buf.String()
}

// Text renders t as aligned plain-text columns.
func Text(t Table) string {
	var buf bytes.Buffer

	if t.Title != "" {
		buf.WriteString(t.Title)
		buf.WriteString("\n\n")
	}

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	return buf.String()
}

// Doc renders t as the HTML document word processors open as a .doc file.
func Doc(t Table) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">`)
	buf.WriteString("\n<head>\n")
	buf.WriteString(`  <meta charset="utf-8">`)
	buf.WriteString("\n")
	writeTag(&buf, "title", t.Title, 2)
	buf.WriteString("  <style>table{border-collapse:collapse}td,th{border:1px solid #000;padding:4px}</style>\n")
	buf.WriteString("</head>\n<body>\n")
	writeTag(&buf, "h1", t.Title, 2)

	buf.WriteString("  <table>\n    <tr>\n")
	for _, header := range t.Headers {
		writeTag(&buf, "th", header, 6)
	}
	buf.WriteString("    </tr>\n")

	for _, row := range t.Rows {
		buf.WriteString("    <tr>\n")
		for _, cell := range row {
			writeTag(&buf, "td", cell, 6)
		}
		buf.WriteString("    </tr>\n")
	}

	buf.WriteString("  </table>\n</body>\n</html>\n")
	return buf.Bytes()
}

func writeTag(buf *bytes.Buffer, tag, content string, indent int) {
	buf.WriteString(strings.Repeat(" ", indent))
	fmt.Fprintf(buf, "<%s>%s</%s>\n", tag, html.EscapeString(content), tag)
}
