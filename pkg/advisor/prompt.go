package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kataras/webfont-analyzer/pkg/fontsource"
	"github.com/kataras/webfont-analyzer/pkg/netwatch"
	"github.com/kataras/webfont-analyzer/pkg/report"
)

// Default payload caps.
const (
	DefaultFamilyLimit   = 20
	DefaultFontFileLimit = 20
)

const systemPrompt = "You are an expert typographer and web design consultant. " +
	"Provide detailed, actionable typography analysis and recommendations. " +
	"Always respond with valid JSON only."

// FamilySummary is the prompt view of a font family.
type FamilySummary struct {
	Rank            int                `json:"rank"`
	FontFamily      string             `json:"fontFamily"`
	TotalUsageCount int                `json:"totalUsageCount"`
	Elements        []string           `json:"elements"`
	Variations      []VariationSummary `json:"variations"`
}

// VariationSummary is the prompt view of a variation.
type VariationSummary struct {
	FontSize   string   `json:"fontSize"`
	FontSizePx float64  `json:"fontSizePx"`
	FontWeight string   `json:"fontWeight"`
	FontStyle  string   `json:"fontStyle"`
	UsageCount int      `json:"usageCount"`
	Elements   []string `json:"elements"`
	SampleText string   `json:"sampleText"`
}

// Summary is the bounded data sent to the model.
type Summary struct {
	Fonts         []FamilySummary
	TotalFamilies int
	Unused        []string
	ExternalFonts []fontsource.ExternalFont
	FontFaces     []fontsource.FontFace
	FontFiles     []netwatch.FontFile
	VariableFonts []fontsource.VariableFont
	Language      string // detected content language, empty when unknown
}

// Truncated reports whether families were left out of the summary.
func (s *Summary) Truncated() bool {
	return len(s.Fonts) < s.TotalFamilies
}

// Summarize keeps the familyLimit most used families and the first
// fileLimit font files of r. Declared-but-unused families are computed
// against the full report.
func Summarize(r *report.AnalysisReport, familyLimit, fileLimit int) *Summary {
	s := &Summary{
		TotalFamilies: len(r.Fonts),
		Unused:        nonNil(r.DeclaredButUnused()),
		ExternalFonts: nonNil(r.ExternalFonts),
		FontFaces:     nonNil(r.FontFaces),
		VariableFonts: nonNil(r.VariableFonts),
	}

	fonts := r.Fonts
	if len(fonts) > familyLimit {
		fonts = fonts[:familyLimit]
	}

	s.Fonts = make([]FamilySummary, 0, len(fonts))
	for i, f := range fonts {
		fs := FamilySummary{
			Rank:            i + 1,
			FontFamily:      f.FontFamily,
			TotalUsageCount: f.TotalUsageCount,
			Elements:        f.Elements,
			Variations:      make([]VariationSummary, 0, len(f.Variations)),
		}
		for _, v := range f.Variations {
			fs.Variations = append(fs.Variations, VariationSummary{
				FontSize:   v.FontSize,
				FontSizePx: v.FontSizePx,
				FontWeight: v.FontWeight,
				FontStyle:  v.FontStyle,
				UsageCount: v.UsageCount,
				Elements:   v.Elements,
				SampleText: v.SampleText,
			})
		}
		s.Fonts = append(s.Fonts, fs)
	}

	files := r.FontFiles
	if len(files) > fileLimit {
		files = files[:fileLimit]
	}
	s.FontFiles = nonNil(files)

	return s
}

// Prompt renders the user message for the model.
func (s *Summary) Prompt() string {
	var sb strings.Builder

	sb.WriteString(`You are a typography expert. Analyze the following font usage data from a website and provide:

1. **Typography Analysis**:
   - Overall typography quality and consistency
   - Font hierarchy assessment
   - Readability evaluation
   - Design style classification (modern, classic, minimalist, etc.)

2. **Font Pairing Suggestions**:
   - Suggest 3-5 complementary font pairings that would work well with the existing fonts
   - Explain why each pairing works
   - Include both serif/sans-serif combinations and alternative options

3. **Recommendations**:
   - Specific improvements for font sizes, weights, and spacing
   - Suggestions for better typography hierarchy
   - Any issues or inconsistencies found

`)

	if s.Language != "" {
		fmt.Fprintf(&sb, "Detected content language: %s. Prefer fonts with good coverage for it.\n\n", s.Language)
	}

	if s.Truncated() {
		fmt.Fprintf(&sb, "Font Data (Used Fonts - showing top %d of %d total):\n", len(s.Fonts), s.TotalFamilies)
	} else {
		sb.WriteString("Font Data (Used Fonts):\n")
	}
	writeJSON(&sb, s.Fonts)

	sb.WriteString("\nDeclared but Unused Fonts:\n")
	writeJSON(&sb, s.Unused)

	sb.WriteString("\nExternal Font Sources:\n")
	writeJSON(&sb, s.ExternalFonts)

	sb.WriteString("\n@font-face Declarations:\n")
	writeJSON(&sb, s.FontFaces)

	sb.WriteString("\nFont Files Loaded:\n")
	writeJSON(&sb, s.FontFiles)

	sb.WriteString("\nVariable Fonts:\n")
	writeJSON(&sb, s.VariableFonts)

	sb.WriteString(`
Provide your analysis in a structured JSON format with the following structure:
{
  "analysis": {
    "overallQuality": "rating and brief description",
    "hierarchy": "assessment of font hierarchy",
    "readability": "readability evaluation",
    "style": "design style classification"
  },
  "fontPairings": [
    {
      "primary": "font name",
      "secondary": "font name",
      "reason": "why this pairing works",
      "useCase": "best use case for this pairing"
    }
  ],
  "recommendations": [
    "specific recommendation 1",
    "specific recommendation 2"
  ],
  "issues": [
    "issue 1 if any",
    "issue 2 if any"
  ]
}`)

	return sb.String()
}

func writeJSON(sb *strings.Builder, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Only plain data types reach here.
		b = []byte("[]")
	}
	sb.Write(b)
	sb.WriteByte('\n')
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
