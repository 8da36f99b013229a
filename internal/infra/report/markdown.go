// Package report renders stored analyses as Markdown documents.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

const timeLayout = "2006-01-02 15:04:05 MST"

// Markdown implements the analyses renderer.
type Markdown struct{}

func NewMarkdown() *Markdown { return &Markdown{} }

func (r *Markdown) Render(rec *analysis.Record, failures []*analysis.Failure) (string, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, rec, failures); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write outputs the report to w.
func (r *Markdown) Write(w io.Writer, rec *analysis.Record, failures []*analysis.Failure) error {
	if rec == nil {
		return analysis.ErrNotFound
	}
	fields := analysis.Fields{}
	if strings.TrimSpace(rec.Result) != "" {
		if err := json.Unmarshal([]byte(rec.Result), &fields); err != nil {
			return fmt.Errorf("decode stored result: %w", err)
		}
	}

	md := markdown.NewMarkdown(w)
	writeHeader(md, rec)
	writeSourceAlert(md, rec)
	writeResult(md, rec.Kind, fields)
	writeFailures(md, failures)
	return md.Build()
}

func writeHeader(md *markdown.Markdown, rec *analysis.Record) {
	md.H1(titleize(string(rec.Kind)) + " Analysis")
	md.PlainText("")

	rows := [][]string{
		{"ID", "`" + string(rec.ID) + "`"},
		{"Source", string(rec.Source)},
		{"Confidence", strconv.FormatFloat(rec.Confidence*100, 'f', 0, 64) + "%"},
		{"Created", rec.CreatedAt.UTC().Format(timeLayout)},
	}
	if rec.Location != "" {
		rows = append(rows, []string{"Location", rec.Location})
	}
	if rec.Filename != "" {
		rows = append(rows, []string{"File", rec.Filename})
	}
	if rec.ImageURL != "" {
		rows = append(rows, []string{"Image", rec.ImageURL})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")
}

func writeSourceAlert(md *markdown.Markdown, rec *analysis.Record) {
	switch rec.Source {
	case analysis.SourceFallback:
		if rec.FailureReason != "" {
			md.Warningf("Generated locally because the remote analysis was unavailable: %s", rec.FailureReason)
		} else {
			md.Warningf("Generated locally, the remote analysis was unavailable.")
		}
	case analysis.SourceAlternate:
		md.Note("Produced by the alternate analysis endpoint.")
	default:
		md.Tip("Produced by the remote analysis endpoint.")
	}
	md.PlainText("")
}

// writeResult walks the decoded result: scalars go to a summary table,
// string arrays to bullet lists and numeric objects to tables.
func writeResult(md *markdown.Markdown, kind analysis.Kind, fields analysis.Fields) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var summary [][]string
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			summary = append(summary, []string{titleize(k), v})
		case float64:
			summary = append(summary, []string{titleize(k), formatNumber(k, v)})
		case bool:
			summary = append(summary, []string{titleize(k), strconv.FormatBool(v)})
		}
	}
	if len(summary) > 0 {
		md.H2("Summary")
		md.PlainText("")
		md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: summary})
		md.PlainText("")
	}

	for _, k := range keys {
		switch fields[k].(type) {
		case []any:
			items := fields.Strings(k, nil)
			if len(items) == 0 {
				continue
			}
			md.H2(titleize(k))
			md.PlainText("")
			md.BulletList(items...)
			md.PlainText("")
		case map[string]any:
			writeNumberTable(md, kind, titleize(k), fields.NumberMap(k))
		}
	}
}

func writeNumberTable(md *markdown.Markdown, kind analysis.Kind, title string, values map[string]float64) {
	if len(values) == 0 {
		return
	}
	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)

	md.H2(title)
	md.PlainText("")
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{titleize(n), strconv.FormatFloat(values[n], 'f', 1, 64)})
	}
	md.Table(markdown.TableSet{Header: []string{"Item", "Value"}, Rows: rows})
	md.PlainText("")

	if kind == analysis.KindCarbon {
		writePieChart(md, title, names, values)
	}
}

func writePieChart(md *markdown.Markdown, title string, names []string, values map[string]float64) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(title),
		piechart.WithShowData(true),
	)
	plotted := 0
	for _, n := range names {
		v := math.Round(values[n])
		if v <= 0 {
			continue
		}
		chart.LabelAndIntValue(titleize(n), uint64(v))
		plotted++
	}
	if plotted == 0 {
		return
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeFailures(md *markdown.Markdown, failures []*analysis.Failure) {
	if len(failures) == 0 {
		return
	}
	md.H2("Remote Failures")
	md.PlainText("")
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{
			f.CreatedAt.UTC().Format(timeLayout),
			string(f.Phase),
			escapeCell(f.Message),
		})
	}
	md.Table(markdown.TableSet{Header: []string{"Time", "Phase", "Message"}, Rows: rows})
	md.PlainText("")
}

func formatNumber(key string, v float64) string {
	lower := strings.ToLower(key)
	switch {
	case strings.Contains(lower, "confidence"):
		return strconv.FormatFloat(v*100, 'f', 0, 64) + "%"
	case strings.Contains(lower, "comparison"):
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// titleize turns camelCase and snake_case keys into "Title Case".
func titleize(s string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0:
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}
