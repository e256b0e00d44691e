package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// MarkdownWriter accumulates a generated markdown page.
type MarkdownWriter struct {
	b strings.Builder
}

// NewMarkdownWriter returns an empty writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes the YAML frontmatter block used by the docs site.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.b, "---\ntitle: %s\ndescription: %s\n---\n\n", quoteYAML(title), quoteYAML(cleanDescription(description)))
}

// GeneratedMarker notes that the page must not be edited by hand.
func (w *MarkdownWriter) GeneratedMarker() {
	w.b.WriteString("<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->\n\n")
}

func (w *MarkdownWriter) Header(level int, text string) {
	fmt.Fprintf(&w.b, "%s %s\n\n", strings.Repeat("#", level), text)
}

func (w *MarkdownWriter) Paragraph(text string) {
	w.b.WriteString(strings.TrimSpace(text))
	w.b.WriteString("\n\n")
}

func (w *MarkdownWriter) CodeBlock(lang, code string) {
	fmt.Fprintf(&w.b, "```%s\n%s\n```\n\n", lang, strings.TrimRight(code, "\n"))
}

func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		fmt.Fprintf(&w.b, "- %s\n", item)
	}
	w.b.WriteString("\n")
}

// Table writes a markdown table.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}
	w.b.WriteString(t.RenderMarkdown())
	w.b.WriteString("\n\n")
}

func (w *MarkdownWriter) Bytes() []byte {
	return []byte(w.b.String())
}

func InlineCode(s string) string {
	return "`" + s + "`"
}

func Bold(s string) string {
	return "**" + s + "**"
}

// cleanDescription collapses whitespace and drops a trailing period.
func cleanDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSuffix(s, ".")
}

func quoteYAML(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
