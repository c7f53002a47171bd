// Package formatter renders an analysis report, and optionally the AI advice
// for it, as colored terminal text, JSON or Markdown.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/kataras/webfont-analyzer/pkg/advisor"
	"github.com/kataras/webfont-analyzer/pkg/fontsource"
	"github.com/kataras/webfont-analyzer/pkg/fontusage"
	"github.com/kataras/webfont-analyzer/pkg/netwatch"
	"github.com/kataras/webfont-analyzer/pkg/report"
)

// Limits caps how many entries of each section the human readable formats
// print. JSON output is never truncated.
type Limits struct {
	Fonts          int
	Unused         int
	FontFiles      int
	FontFileURL    int // characters of a font file URL
	CSSImports     int
	LoadedFamilies int
	SampleText     int // characters of a variation sample
}

// DefaultLimits are the caps used when none are given.
var DefaultLimits = Limits{
	Fonts:          10,
	Unused:         10,
	FontFiles:      15,
	FontFileURL:    80,
	CSSImports:     10,
	LoadedFamilies: 10,
	SampleText:     50,
}

// Output is the document written by WriteJSON.
type Output struct {
	Fonts         fontusage.Snapshot        `json:"fonts"`
	FontFaces     []fontsource.FontFace     `json:"fontFaces"`
	ExternalFonts []fontsource.ExternalFont `json:"externalFonts"`
	FontFiles     []netwatch.FontFile       `json:"fontFiles"`
	DeclaredFonts []string                  `json:"declaredFonts"`
	VariableFonts []fontsource.VariableFont `json:"variableFonts"`
	CSSImports    []fontsource.CSSImport    `json:"cssImports"`
	LoadedFonts   []fontsource.LoadedFont   `json:"loadedFonts"`
	AIAnalysis    *advisor.Advice           `json:"aiAnalysis"`
}

// WriteJSON writes the full report and advice as indented JSON.
// A nil advice is written as null.
func WriteJSON(w io.Writer, r *report.AnalysisReport, advice *advisor.Advice) error {
	out := Output{
		Fonts:         orEmpty(r.Fonts),
		FontFaces:     orEmpty(r.FontFaces),
		ExternalFonts: orEmpty(r.ExternalFonts),
		FontFiles:     orEmpty(r.FontFiles),
		DeclaredFonts: orEmpty(r.DeclaredFonts),
		VariableFonts: orEmpty(r.VariableFonts),
		CSSImports:    orEmpty(r.CSSImports),
		LoadedFonts:   orEmpty(r.LoadedFonts),
		AIAnalysis:    advice,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode json output: %w", err)
	}
	return nil
}

func orEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}

// shorten cuts s to n characters and marks the cut with "...".
func shorten(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func head[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

func more(total, shown int) int {
	if total > shown {
		return total - shown
	}
	return 0
}
