package newsdesk

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/lysyi3m/radio-guiones/app/dates"
	"github.com/lysyi3m/radio-guiones/app/records"
)

// Channel describes the feed itself.
type Channel struct {
	Title   string
	Link    string
	Version string
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders items as an RSS 2.0 document, in list order.
func (g *Generator) Run(channel Channel, items []records.NewsItem) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Noticias de %s", channel.Title), 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(channel.Link+"/news/rss")))
	g.writeElement(&buf, "language", "es", 4)

	lastBuildDate := time.Now()
	if len(items) > 0 {
		lastBuildDate = g.pubDate(items[0])
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Radio-Guiones/%s", channel.Version), 4)

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, item records.NewsItem) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(item.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", item.Title, 6)
	g.writeElement(buf, "description", item.Content, 6)
	g.writeElement(buf, "pubDate", g.pubDate(item).Format(time.RFC1123Z), 6)
	g.writeElement(buf, "author", item.Author, 6)
	g.writeElement(buf, "category", item.Category, 6)

	if item.Image != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"image/jpeg\" />\n",
			html.EscapeString(item.Image)))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) pubDate(item records.NewsItem) time.Time {
	return dates.Parse(item.Date)
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
