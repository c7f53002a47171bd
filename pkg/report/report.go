package report

import (
	"github.com/kataras/webfont-analyzer/pkg/fontsource"
	"github.com/kataras/webfont-analyzer/pkg/fontusage"
	"github.com/kataras/webfont-analyzer/pkg/netwatch"
)

// AnalysisReport is everything collected about the fonts of one page.
// It is built once by the pipeline and only read afterwards.
type AnalysisReport struct {
	Fonts         fontusage.Snapshot        `json:"fonts"`
	FontFaces     []fontsource.FontFace     `json:"fontFaces"`
	ExternalFonts []fontsource.ExternalFont `json:"externalFonts"`
	FontFiles     []netwatch.FontFile       `json:"fontFiles"`
	DeclaredFonts []string                  `json:"declaredFonts"`
	VariableFonts []fontsource.VariableFont `json:"variableFonts"`
	CSSImports    []fontsource.CSSImport    `json:"cssImports"`
	LoadedFonts   []fontsource.LoadedFont   `json:"loadedFonts"`
	URL           string                    `json:"url"`
}

// DeclaredButUnused returns the declared families that no rendered element
// uses, in declaration order.
func (r *AnalysisReport) DeclaredButUnused() []string {
	unused := []string{}
	for _, f := range r.DeclaredFonts {
		if !r.Fonts.Has(f) {
			unused = append(unused, f)
		}
	}
	return unused
}

// LoadedByFamily groups loaded fonts as "weight/style" variants per family,
// keeping first-seen family order and dropping duplicate variants.
func (r *AnalysisReport) LoadedByFamily() ([]string, map[string][]string) {
	var families []string
	variants := make(map[string][]string)
	type variantKey struct{ family, variant string }
	seen := make(map[variantKey]bool)

	for _, lf := range r.LoadedFonts {
		if _, ok := variants[lf.FontFamily]; !ok {
			families = append(families, lf.FontFamily)
			variants[lf.FontFamily] = nil
		}
		v := lf.Weight + "/" + lf.Style
		if key := (variantKey{lf.FontFamily, v}); !seen[key] {
			seen[key] = true
			variants[lf.FontFamily] = append(variants[lf.FontFamily], v)
		}
	}

	return families, variants
}
