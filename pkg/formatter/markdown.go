package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/kataras/webfont-analyzer/pkg/advisor"
	"github.com/kataras/webfont-analyzer/pkg/report"
)

// MarkdownWriter renders a report as a Markdown document, ready to be shared
// or committed next to a design system.
type MarkdownWriter struct {
	w      io.Writer
	limits Limits
}

// NewMarkdownWriter returns a MarkdownWriter printing to w.
func NewMarkdownWriter(w io.Writer, limits Limits) *MarkdownWriter {
	return &MarkdownWriter{w: w, limits: limits}
}

// WriteMarkdown writes r and advice to w with the default limits.
func WriteMarkdown(w io.Writer, r *report.AnalysisReport, advice *advisor.Advice) error {
	return NewMarkdownWriter(w, DefaultLimits).Write(r, advice)
}

// Write renders r and, when not nil, the advice.
func (m *MarkdownWriter) Write(r *report.AnalysisReport, advice *advisor.Advice) error {
	md := markdown.NewMarkdown(m.w)

	md.H1("Web Font Analysis")
	md.PlainText("")

	m.writeSummary(md, r)
	m.writeUsage(md, r)
	m.writeUnused(md, r)
	m.writeFontFaces(md, r)
	m.writeFontFiles(md, r)
	m.writeExternal(md, r)
	m.writeVariable(md, r)
	m.writeImports(md, r)
	m.writeLoaded(md, r)
	if advice != nil {
		m.writeAdvice(md, advice)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by webfont-analyzer for %s*", r.URL)

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write markdown output: %w", err)
	}
	return nil
}

func (m *MarkdownWriter) writeSummary(md *markdown.Markdown, r *report.AnalysisReport) {
	families, _ := r.LoadedByFamily()

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", r.URL},
			{"Font Families Used", strconv.Itoa(len(r.Fonts))},
			{"Declared but Unused", strconv.Itoa(len(r.DeclaredButUnused()))},
			{"@font-face Rules", strconv.Itoa(len(r.FontFaces))},
			{"Font Files Loaded", strconv.Itoa(len(r.FontFiles))},
			{"External Sources", strconv.Itoa(len(r.ExternalFonts))},
			{"Variable Fonts", strconv.Itoa(len(r.VariableFonts))},
			{"Families Verified as Loaded", strconv.Itoa(len(families))},
		},
	})
	md.PlainText("")
}

func (m *MarkdownWriter) writeUsage(md *markdown.Markdown, r *report.AnalysisReport) {
	md.H2("Font Usage")
	md.PlainText("")

	if len(r.Fonts) == 0 {
		md.PlainText("No font usage found.")
		md.PlainText("")
		return
	}

	fonts := head(r.Fonts, m.limits.Fonts)

	if len(fonts) > 1 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Font Family Usage"),
			piechart.WithShowData(true),
		)
		for _, f := range fonts {
			chart.LabelAndIntValue(f.FontFamily, uint64(f.TotalUsageCount))
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	for i, f := range fonts {
		md.H3(fmt.Sprintf("%d. %s", i+1, f.FontFamily))
		md.PlainText("")
		md.PlainTextf("Used %d time(s) in: %s", f.TotalUsageCount, code(f.Elements))
		md.PlainText("")

		rows := make([][]string, 0, len(f.Variations))
		for _, v := range f.Variations {
			rows = append(rows, []string{
				v.FontSize,
				v.FontWeight,
				v.FontStyle,
				v.LineHeight,
				strconv.Itoa(v.UsageCount),
				code(v.Elements),
				escapeCell(shorten(v.SampleText, m.limits.SampleText)),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Size", "Weight", "Style", "Line Height", "Uses", "Elements", "Sample"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if n := more(len(r.Fonts), m.limits.Fonts); n > 0 && m.limits.Fonts > 0 {
		md.Notef("... and %d more font family(ies).", n)
		md.PlainText("")
	}
}

func (m *MarkdownWriter) writeUnused(md *markdown.Markdown, r *report.AnalysisReport) {
	unused := r.DeclaredButUnused()
	if len(unused) == 0 {
		return
	}

	md.H2("Declared but Unused Fonts")
	md.PlainText("")
	md.BulletList(withMore(head(unused, m.limits.Unused), more(len(unused), m.limits.Unused), "")...)
	md.PlainText("")
}

func (m *MarkdownWriter) writeFontFaces(md *markdown.Markdown, r *report.AnalysisReport) {
	if len(r.FontFaces) == 0 {
		return
	}

	md.H2("@font-face Declarations")
	md.PlainText("")

	rows := make([][]string, 0, len(r.FontFaces))
	for _, f := range r.FontFaces {
		rows = append(rows, []string{f.FontFamily, f.FontWeight, f.FontStyle, f.FontDisplay, escapeCell(shorten(f.Src, m.limits.FontFileURL))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Family", "Weight", "Style", "Display", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (m *MarkdownWriter) writeFontFiles(md *markdown.Markdown, r *report.AnalysisReport) {
	if len(r.FontFiles) == 0 {
		return
	}

	md.H2("Font Files Loaded")
	md.PlainText("")

	files := head(r.FontFiles, m.limits.FontFiles)
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{escapeCell(shorten(f.URL, m.limits.FontFileURL)), f.Type, strconv.Itoa(f.Status)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Type", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if n := more(len(r.FontFiles), m.limits.FontFiles); n > 0 && m.limits.FontFiles > 0 {
		md.Notef("... and %d more font files.", n)
		md.PlainText("")
	}
}

func (m *MarkdownWriter) writeExternal(md *markdown.Markdown, r *report.AnalysisReport) {
	if len(r.ExternalFonts) == 0 {
		return
	}

	md.H2("External Font Sources")
	md.PlainText("")

	items := make([]string, 0, len(r.ExternalFonts))
	for _, f := range r.ExternalFonts {
		items = append(items, fmt.Sprintf("**%s**: %s", f.Source, f.URL))
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (m *MarkdownWriter) writeVariable(md *markdown.Markdown, r *report.AnalysisReport) {
	if len(r.VariableFonts) == 0 {
		return
	}

	md.H2("Variable Fonts")
	md.PlainText("")

	items := make([]string, 0, len(r.VariableFonts))
	for _, vf := range r.VariableFonts {
		item := vf.FontFamily
		if vf.HasVariationSettings {
			item += " (has `font-variation-settings`)"
		}
		items = append(items, item)
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (m *MarkdownWriter) writeImports(md *markdown.Markdown, r *report.AnalysisReport) {
	if len(r.CSSImports) == 0 {
		return
	}

	md.H2("CSS @import Statements")
	md.PlainText("")

	imports := head(r.CSSImports, m.limits.CSSImports)
	items := make([]string, 0, len(imports))
	for _, imp := range imports {
		items = append(items, fmt.Sprintf("%s (media: %s)", imp.URL, imp.Media))
	}
	md.BulletList(withMore(items, more(len(r.CSSImports), m.limits.CSSImports), "")...)
	md.PlainText("")
}

func (m *MarkdownWriter) writeLoaded(md *markdown.Markdown, r *report.AnalysisReport) {
	if len(r.LoadedFonts) == 0 {
		return
	}

	families, variants := r.LoadedByFamily()

	md.H2("Fonts Verified as Loaded")
	md.PlainText("")

	shown := head(families, m.limits.LoadedFamilies)
	items := make([]string, 0, len(shown))
	for _, family := range shown {
		items = append(items, fmt.Sprintf("%s: %s", family, strings.Join(variants[family], ", ")))
	}
	md.BulletList(withMore(items, more(len(families), m.limits.LoadedFamilies), " font families")...)
	md.PlainText("")
}

func (m *MarkdownWriter) writeAdvice(md *markdown.Markdown, a *advisor.Advice) {
	md.H2("AI Typography Analysis")
	md.PlainText("")

	if analysis := a.Assessment(); !analysis.IsZero() {
		md.H3("Overall Assessment")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Aspect", "Assessment"},
			Rows: [][]string{
				{"Quality", escapeCell(orNA(analysis.OverallQuality))},
				{"Hierarchy", escapeCell(orNA(analysis.Hierarchy))},
				{"Readability", escapeCell(orNA(analysis.Readability))},
				{"Style", escapeCell(orNA(analysis.Style))},
			},
		})
		md.PlainText("")
	}

	if pairings := a.Pairings(); len(pairings) > 0 {
		md.H3("Suggested Font Pairings")
		md.PlainText("")
		for i, p := range pairings {
			md.PlainTextf("%d. **%s** + **%s**", i+1, p.Primary, p.Secondary)
			if p.Reason != "" {
				md.PlainTextf("   %s", p.Reason)
			}
			if p.UseCase != "" {
				md.PlainTextf("   *Best for: %s*", p.UseCase)
			}
			md.PlainText("")
		}
	}

	if recs := advisor.Strings(a.Recommendations); len(recs) > 0 {
		md.H3("Recommendations")
		md.PlainText("")
		md.OrderedList(recs...)
		md.PlainText("")
	}

	if issues := advisor.Strings(a.Issues); len(issues) > 0 {
		md.H3("Issues Found")
		md.PlainText("")
		md.Warningf("%d issue(s) found.", len(issues))
		md.PlainText("")
		md.OrderedList(issues...)
		md.PlainText("")
	}
}

func withMore(items []string, n int, what string) []string {
	if n > 0 && len(items) > 0 {
		items = append(items[:len(items):len(items)], fmt.Sprintf("... and %d more%s", n, what))
	}
	return items
}

func code(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
