package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/kataras/webfont-analyzer/pkg/advisor"
	"github.com/kataras/webfont-analyzer/pkg/fontsource"
	"github.com/kataras/webfont-analyzer/pkg/fontusage"
	"github.com/kataras/webfont-analyzer/pkg/netwatch"
	"github.com/kataras/webfont-analyzer/pkg/report"
)

func testReport(families, files int) *report.AnalysisReport {
	r := &report.AnalysisReport{
		URL:           "https://example.com",
		DeclaredFonts: []string{"Family00", "Ghost"},
		ExternalFonts: []fontsource.ExternalFont{{Source: fontsource.SourceGoogleFonts, URL: "https://fonts.googleapis.com/css2?family=Inter"}},
		VariableFonts: []fontsource.VariableFont{{FontFamily: "InterVar", Src: `url("inter-var.woff2")`, HasVariationSettings: true}},
		CSSImports:    []fontsource.CSSImport{{URL: "https://example.com/fonts.css", Media: "all"}},
		LoadedFonts: []fontsource.LoadedFont{
			{FontFamily: "Family00", Weight: "400", Style: "normal", Status: "loaded"},
			{FontFamily: "Family00", Weight: "700", Style: "normal", Status: "loaded"},
		},
	}
	for i := 0; i < families; i++ {
		r.Fonts = append(r.Fonts, fontusage.FamilyRecord{
			FontFamily:      fmt.Sprintf("Family%02d", i),
			TotalUsageCount: families - i,
			Elements:        []string{"p", "h1"},
			Variations: []fontusage.Variation{{
				FontSize: "16px", FontSizePx: 16, FontWeight: "400", FontStyle: "normal",
				UsageCount: families - i, Elements: []string{"p"},
				SampleText: strings.Repeat("Lorem ipsum ", 10),
			}},
		})
	}
	for i := 0; i < files; i++ {
		r.FontFiles = append(r.FontFiles, netwatch.FontFile{
			URL:    "https://cdn.example.com/" + strings.Repeat("a", 100) + fmt.Sprintf("%d.woff2", i),
			Type:   "font/woff2",
			Status: 200,
		})
	}
	return r
}

func testAdvice(t *testing.T) *advisor.Advice {
	t.Helper()

	advice, err := advisor.ParseAdvice(`{
		"analysis": {"overallQuality": "Good", "hierarchy": "Clear"},
		"fontPairings": [{"primary": "Inter", "secondary": "Merriweather", "reason": "Contrast", "useCase": "Blogs"}],
		"recommendations": ["Raise body line height"],
		"issues": ["Too many weights"]
	}`)
	if err != nil {
		t.Fatalf("ParseAdvice() error = %v", err)
	}
	return advice
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		report     *report.AnalysisReport
		advice     *advisor.Advice
		wantAINull bool
	}{
		{name: "without advice", report: testReport(12, 20), wantAINull: true},
		{name: "with advice", report: testReport(1, 1), advice: testAdvice(t)},
		{name: "empty report", report: &report.AnalysisReport{}, wantAINull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteJSON(&buf, tt.report, tt.advice); err != nil {
				t.Fatalf("WriteJSON() error = %v", err)
			}

			var got map[string]json.RawMessage
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}

			keys := []string{"fonts", "fontFaces", "externalFonts", "fontFiles", "declaredFonts", "variableFonts", "cssImports", "loadedFonts", "aiAnalysis"}
			if len(got) != len(keys) {
				t.Errorf("got %d keys, want %d", len(got), len(keys))
			}
			for _, k := range keys {
				raw, ok := got[k]
				if !ok {
					t.Errorf("missing key %q", k)
					continue
				}
				if k != "aiAnalysis" && string(raw) == "null" {
					t.Errorf("%s = null, want a list", k)
				}
			}

			if isNull := string(got["aiAnalysis"]) == "null"; isNull != tt.wantAINull {
				t.Errorf("aiAnalysis null = %v, want %v", isNull, tt.wantAINull)
			}

			var fonts []fontusage.FamilyRecord
			if err := json.Unmarshal(got["fonts"], &fonts); err != nil {
				t.Fatal(err)
			}
			if len(fonts) != len(tt.report.Fonts) {
				t.Errorf("len(fonts) = %d, want %d (untruncated)", len(fonts), len(tt.report.Fonts))
			}
		})
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextWriter(&buf, DefaultLimits, true).Write(testReport(12, 17), testAdvice(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"WEB FONT ANALYSIS RESULTS",
		"📝 FONT USAGE:",
		"1. Family00",
		"10. Family09",
		"... and 2 more font family(ies)",
		"Size: 16px (16px) | Weight: 400 | Style: normal",
		"📋 DECLARED BUT UNUSED FONTS:",
		"   • Ghost",
		"📦 FONT FILES LOADED:",
		"... and 2 more font files",
		"Type: font/woff2 | Status: 200",
		"🔗 EXTERNAL FONT SOURCES:",
		"Google Fonts: https://fonts.googleapis.com/css2?family=Inter",
		"Has font-variation-settings",
		"📥 CSS @IMPORT STATEMENTS:",
		"✅ FONTS VERIFIED AS LOADED:",
		"Family00: 400/normal, 700/normal",
		"🤖 AI TYPOGRAPHY ANALYSIS:",
		"Quality: Good",
		"Readability: N/A",
		"1. Inter + Merriweather",
		"Best for: Blogs",
		"1. Raise body line height",
		"1. Too many weights",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}

	for _, unwanted := range []string{"11. Family10", "\x1b["} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains %q", unwanted)
		}
	}

	// Font file URLs are cut to 80 characters.
	long := "https://cdn.example.com/" + strings.Repeat("a", 100)
	if strings.Contains(out, long) {
		t.Errorf("font file URL was not shortened")
	}
	if !strings.Contains(out, long[:80]+"...") {
		t.Errorf("font file URL was not cut at 80 characters")
	}
}

func TestTextWriterSkipsEmptySections(t *testing.T) {
	r := &report.AnalysisReport{Fonts: testReport(1, 0).Fonts}

	var buf bytes.Buffer
	if err := NewTextWriter(&buf, DefaultLimits, true).Write(r, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, unwanted := range []string{"DECLARED BUT UNUSED", "FONT FILES LOADED", "EXTERNAL FONT SOURCES", "VARIABLE FONTS", "@IMPORT", "VERIFIED AS LOADED", "AI TYPOGRAPHY", "... and"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains %q", unwanted)
		}
	}
}

func TestTextWriterStructuredAdvice(t *testing.T) {
	advice, err := advisor.ParseAdvice(`{"analysis":{"overallQuality":{"rating":"8/10","description":"solid"}},"recommendations":[{"title":"Fewer weights"}]}`)
	if err != nil {
		t.Fatalf("ParseAdvice() error = %v", err)
	}

	var buf bytes.Buffer
	if err := NewTextWriter(&buf, DefaultLimits, true).Write(testReport(1, 0), advice); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Quality: rating: 8/10, description: solid", "1. title: Fewer weights"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, testReport(3, 2), testAdvice(t)); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Web Font Analysis",
		"## Font Usage",
		"```mermaid",
		"pie",
		"Family00",
		"### 1. Family00",
		"## Declared but Unused Fonts",
		"Ghost",
		"## Font Files Loaded",
		"## External Font Sources",
		"## Variable Fonts",
		"## CSS @import Statements",
		"## Fonts Verified as Loaded",
		"## AI Typography Analysis",
		"**Inter** + **Merriweather**",
		"Too many weights",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown is missing %q", want)
		}
	}
}

func TestShorten(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abc", 5, "abc"},
		{"abcdef", 3, "abc..."},
		{"abc", 0, "abc"},
		{"ελληνικά", 4, "ελλη..."},
	}

	for _, tt := range tests {
		if got := shorten(tt.in, tt.n); got != tt.want {
			t.Errorf("shorten(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestWithMore(t *testing.T) {
	items := []string{"a", "b"}
	got := withMore(items, 3, " font families")
	if len(got) != 3 || got[2] != "... and 3 more font families" {
		t.Errorf("withMore() = %v", got)
	}
	if len(items) != 2 {
		t.Errorf("withMore() modified its input")
	}
	if got := withMore(items, 0, ""); len(got) != 2 {
		t.Errorf("withMore(0) = %v", got)
	}
}
