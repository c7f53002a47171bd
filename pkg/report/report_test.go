package report

import (
	"reflect"
	"testing"

	"github.com/kataras/webfont-analyzer/pkg/fontsource"
	"github.com/kataras/webfont-analyzer/pkg/fontusage"
)

func TestDeclaredButUnused(t *testing.T) {
	r := &AnalysisReport{
		Fonts: fontusage.Aggregate([]fontusage.ElementStyle{
			{TagName: "p", Text: "hello", FontFamily: "Arial, sans-serif", FontSize: "16px", FontWeight: "400", FontStyle: "normal"},
		}),
		DeclaredFonts: []string{"Helvetica Neue", "Arial", "sans-serif"},
	}

	want := []string{"Helvetica Neue", "sans-serif"}
	if got := r.DeclaredButUnused(); !reflect.DeepEqual(got, want) {
		t.Errorf("DeclaredButUnused() = %v, want %v", got, want)
	}
}

func TestDeclaredButUnused_Empty(t *testing.T) {
	r := &AnalysisReport{}
	if got := r.DeclaredButUnused(); got == nil || len(got) != 0 {
		t.Errorf("DeclaredButUnused() = %#v, want empty slice", got)
	}
}

func TestLoadedByFamily(t *testing.T) {
	r := &AnalysisReport{LoadedFonts: []fontsource.LoadedFont{
		{FontFamily: "Inter", Weight: "400", Style: "normal"},
		{FontFamily: "Lora", Weight: "700", Style: "normal"},
		{FontFamily: "Inter", Weight: "700", Style: "normal"},
		{FontFamily: "Inter", Weight: "400", Style: "normal"},
	}}

	families, variants := r.LoadedByFamily()
	if want := []string{"Inter", "Lora"}; !reflect.DeepEqual(families, want) {
		t.Errorf("families = %v, want %v", families, want)
	}
	if want := []string{"400/normal", "700/normal"}; !reflect.DeepEqual(variants["Inter"], want) {
		t.Errorf("Inter variants = %v, want %v", variants["Inter"], want)
	}
}
