package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kataras/webfont-analyzer/pkg/advisor"
	"github.com/kataras/webfont-analyzer/pkg/report"
)

const (
	banner = "═══════════════════════════════════════════════════"
	rule   = "───────────────────────────────────────────────────────"
)

// TextWriter prints a report for humans, section by section.
type TextWriter struct {
	w      io.Writer
	limits Limits

	title   *color.Color
	section *color.Color
	strong  *color.Color
	plain   *color.Color
	faint   *color.Color
	bad     *color.Color
	badBold *color.Color
}

// NewTextWriter returns a TextWriter printing to w. When noColor is true no
// escape sequences are written, regardless of the terminal.
func NewTextWriter(w io.Writer, limits Limits, noColor bool) *TextWriter {
	t := &TextWriter{
		w:       w,
		limits:  limits,
		title:   color.New(color.FgCyan, color.Bold),
		section: color.New(color.FgYellow, color.Bold),
		strong:  color.New(color.FgWhite, color.Bold),
		plain:   color.New(color.FgWhite),
		faint:   color.New(color.FgHiBlack),
		bad:     color.New(color.FgRed),
		badBold: color.New(color.FgRed, color.Bold),
	}

	if noColor {
		for _, c := range []*color.Color{t.title, t.section, t.strong, t.plain, t.faint, t.bad, t.badBold} {
			c.DisableColor()
		}
	}

	return t
}

// Write prints r and, when not nil, the advice.
func (t *TextWriter) Write(r *report.AnalysisReport, advice *advisor.Advice) error {
	var sb strings.Builder

	t.title.Fprintln(&sb, "\n"+banner)
	t.title.Fprintln(&sb, "           WEB FONT ANALYSIS RESULTS")
	t.title.Fprintln(&sb, banner)
	sb.WriteString("\n")

	t.writeUsage(&sb, r)
	t.writeUnused(&sb, r)
	t.writeFontFiles(&sb, r)
	t.writeExternal(&sb, r)
	t.writeVariable(&sb, r)
	t.writeImports(&sb, r)
	t.writeLoaded(&sb, r)
	if advice != nil {
		t.writeAdvice(&sb, advice)
	}

	t.title.Fprintln(&sb, "\n"+banner)
	sb.WriteString("\n")

	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *TextWriter) heading(sb *strings.Builder, title string, first bool) {
	if !first {
		sb.WriteString("\n\n")
	}
	t.section.Fprintln(sb, title)
	t.faint.Fprintln(sb, rule)
}

func (t *TextWriter) writeUsage(sb *strings.Builder, r *report.AnalysisReport) {
	t.heading(sb, "📝 FONT USAGE:", true)

	for i, f := range head(r.Fonts, t.limits.Fonts) {
		fmt.Fprintf(sb, "\n%s\n", t.plain.Sprintf("%d. %s", i+1, t.strong.Sprint(f.FontFamily)))
		t.faint.Fprintf(sb, "   Total Usage: %d time(s)\n", f.TotalUsageCount)
		t.faint.Fprintf(sb, "   Used in: %s\n", strings.Join(f.Elements, ", "))

		if len(f.Variations) == 0 {
			continue
		}
		t.faint.Fprintln(sb, "   Variations:")
		for _, v := range f.Variations {
			t.faint.Fprintf(sb, "     • Size: %s (%gpx) | Weight: %s | Style: %s\n", v.FontSize, v.FontSizePx, v.FontWeight, v.FontStyle)
			t.faint.Fprintf(sb, "       Used %d time(s) in: %s\n", v.UsageCount, strings.Join(v.Elements, ", "))
			if v.SampleText != "" {
				t.faint.Fprintf(sb, "       Sample: %q\n", shorten(v.SampleText, t.limits.SampleText))
			}
		}
	}

	if n := more(len(r.Fonts), t.limits.Fonts); n > 0 && t.limits.Fonts > 0 {
		t.faint.Fprintf(sb, "\n   ... and %d more font family(ies)\n", n)
	}
}

func (t *TextWriter) writeUnused(sb *strings.Builder, r *report.AnalysisReport) {
	unused := r.DeclaredButUnused()
	if len(unused) == 0 {
		return
	}

	t.heading(sb, "📋 DECLARED BUT UNUSED FONTS:", false)
	for _, f := range head(unused, t.limits.Unused) {
		t.plain.Fprintf(sb, "   • %s\n", f)
	}
	if n := more(len(unused), t.limits.Unused); n > 0 && t.limits.Unused > 0 {
		t.faint.Fprintf(sb, "   ... and %d more\n", n)
	}
}

func (t *TextWriter) writeFontFiles(sb *strings.Builder, r *report.AnalysisReport) {
	if len(r.FontFiles) == 0 {
		return
	}

	t.heading(sb, "📦 FONT FILES LOADED:", false)
	for _, f := range head(r.FontFiles, t.limits.FontFiles) {
		t.plain.Fprintf(sb, "   • %s\n", shorten(f.URL, t.limits.FontFileURL))
		t.faint.Fprintf(sb, "     Type: %s | Status: %d\n", f.Type, f.Status)
	}
	if n := more(len(r.FontFiles), t.limits.FontFiles); n > 0 && t.limits.FontFiles > 0 {
		t.faint.Fprintf(sb, "   ... and %d more font files\n", n)
	}
}

func (t *TextWriter) writeExternal(sb *strings.Builder, r *report.AnalysisReport) {
	if len(r.ExternalFonts) == 0 {
		return
	}

	t.heading(sb, "🔗 EXTERNAL FONT SOURCES:", false)
	for _, f := range r.ExternalFonts {
		t.plain.Fprintf(sb, "   %s: %s\n", f.Source, f.URL)
	}
}

func (t *TextWriter) writeVariable(sb *strings.Builder, r *report.AnalysisReport) {
	if len(r.VariableFonts) == 0 {
		return
	}

	t.heading(sb, "🎛️  VARIABLE FONTS DETECTED:", false)
	for _, vf := range r.VariableFonts {
		t.plain.Fprintf(sb, "   • %s\n", vf.FontFamily)
		if vf.HasVariationSettings {
			t.faint.Fprintln(sb, "     Has font-variation-settings")
		}
	}
}

func (t *TextWriter) writeImports(sb *strings.Builder, r *report.AnalysisReport) {
	if len(r.CSSImports) == 0 {
		return
	}

	t.heading(sb, "📥 CSS @IMPORT STATEMENTS:", false)
	for _, imp := range head(r.CSSImports, t.limits.CSSImports) {
		t.plain.Fprintf(sb, "   • %s\n", imp.URL)
	}
	if n := more(len(r.CSSImports), t.limits.CSSImports); n > 0 && t.limits.CSSImports > 0 {
		t.faint.Fprintf(sb, "   ... and %d more\n", n)
	}
}

func (t *TextWriter) writeLoaded(sb *strings.Builder, r *report.AnalysisReport) {
	if len(r.LoadedFonts) == 0 {
		return
	}

	families, variants := r.LoadedByFamily()

	t.heading(sb, "✅ FONTS VERIFIED AS LOADED:", false)
	for _, family := range head(families, t.limits.LoadedFamilies) {
		t.plain.Fprintf(sb, "   • %s: %s\n", family, strings.Join(variants[family], ", "))
	}
	if n := more(len(families), t.limits.LoadedFamilies); n > 0 && t.limits.LoadedFamilies > 0 {
		t.faint.Fprintf(sb, "   ... and %d more font families\n", n)
	}
}

func (t *TextWriter) writeAdvice(sb *strings.Builder, a *advisor.Advice) {
	t.heading(sb, "🤖 AI TYPOGRAPHY ANALYSIS:", false)

	if analysis := a.Assessment(); !analysis.IsZero() {
		t.strong.Fprintln(sb, "\n📊 Overall Assessment:")
		t.plain.Fprintf(sb, "   Quality: %s\n", orNA(analysis.OverallQuality))
		t.plain.Fprintf(sb, "   Hierarchy: %s\n", orNA(analysis.Hierarchy))
		t.plain.Fprintf(sb, "   Readability: %s\n", orNA(analysis.Readability))
		t.plain.Fprintf(sb, "   Style: %s\n", orNA(analysis.Style))
	}

	if pairings := a.Pairings(); len(pairings) > 0 {
		t.strong.Fprintln(sb, "\n🎨 Suggested Font Pairings:")
		for i, p := range pairings {
			fmt.Fprintf(sb, "\n%s\n", t.plain.Sprintf("   %d. %s + %s", i+1, t.strong.Sprint(p.Primary), t.strong.Sprint(p.Secondary)))
			if p.Reason != "" {
				t.faint.Fprintf(sb, "      %s\n", p.Reason)
			}
			if p.UseCase != "" {
				t.faint.Fprintf(sb, "      Best for: %s\n", p.UseCase)
			}
		}
	}

	if recs := advisor.Strings(a.Recommendations); len(recs) > 0 {
		t.strong.Fprintln(sb, "\n💡 Recommendations:")
		for i, rec := range recs {
			t.plain.Fprintf(sb, "   %d. %s\n", i+1, rec)
		}
	}

	if issues := advisor.Strings(a.Issues); len(issues) > 0 {
		t.badBold.Fprintln(sb, "\n⚠️  Issues Found:")
		for i, issue := range issues {
			t.bad.Fprintf(sb, "   %d. %s\n", i+1, issue)
		}
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
