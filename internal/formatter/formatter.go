package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/mcncl/jsonpeek/internal/config"
	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/models"
)

// Rule separates the sections of a text report.
var Rule = strings.Repeat("-", 40)

// NoValuesMarker replaces the frequency list when the document has no entries.
const NoValuesMarker = "[no recognizable values]"

// Meta describes where a report came from. It is only used by Markdown.
type Meta struct {
	Source     string
	AnalyzedAt time.Time
}

// Render returns the text rendering of r. Console and log file both use
// these exact bytes.
func Render(r models.Report) string {
	var b strings.Builder

	b.WriteString("\nResult:\n")
	b.WriteString("No.\t| Value\t| Key\n")
	b.WriteString(Rule + "\n")
	for _, row := range r.Rows() {
		fmt.Fprintf(&b, "%d\t| %s\t| %s\n", row.Index, row.Value, row.Key)
	}
	b.WriteString(Rule + "\n")

	fmt.Fprintf(&b, "The file contains %d values; the %d most frequent are:\n", r.Total(), r.TopN())
	top := r.Top()
	if len(top) == 0 {
		b.WriteString(NoValuesMarker + "\n")
	}
	for _, f := range top {
		fmt.Fprintf(&b, "- %s: %d\n", f.Value, f.Count)
	}
	b.WriteString(Rule + "\n")

	return b.String()
}

// Text writes the text rendering of r to w.
func Text(w io.Writer, r models.Report) error {
	if _, err := io.WriteString(w, Render(r)); err != nil {
		return errors.NewOutputError("failed to write report", err)
	}
	return nil
}

// Markdown writes r as a Markdown document to w.
func Markdown(w io.Writer, r models.Report, meta Meta) error {
	md := markdown.NewMarkdown(w)

	md.H1("JSON Analysis Report")
	md.PlainText("")

	analyzedAt := "-"
	if !meta.AnalyzedAt.IsZero() {
		analyzedAt = meta.AnalyzedAt.Format(time.DateTime)
	}
	source := meta.Source
	if source == "" {
		source = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", "`" + source + "`"},
			{"Analyzed At", analyzedAt},
			{"Values", strconv.Itoa(r.Total())},
		},
	})
	md.PlainText("")

	md.H2("Entries")
	md.PlainText("")
	rows := r.Rows()
	if len(rows) == 0 {
		md.PlainText("The document has no top-level entries.")
	} else {
		cells := make([][]string, len(rows))
		for i, row := range rows {
			cells[i] = []string{strconv.Itoa(row.Index), escapeCell(row.Value), escapeCell(row.Key)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"No.", "Value", "Key"},
			Rows:   cells,
		})
	}
	md.PlainText("")

	md.H2("Most Frequent Values")
	md.PlainText("")
	top := r.Top()
	if len(top) == 0 {
		md.PlainText(NoValuesMarker)
	} else {
		items := make([]string, len(top))
		for i, f := range top {
			items[i] = fmt.Sprintf("%s: %d", f.Value, f.Count)
		}
		md.BulletList(items...)
	}
	md.PlainText("")

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by %s*", config.AppName)

	if err := md.Build(); err != nil {
		return errors.NewOutputError("failed to write markdown report", err)
	}
	return nil
}

// escapeCell keeps pipes and line breaks from splitting a table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
