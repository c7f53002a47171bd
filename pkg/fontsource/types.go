package fontsource

// RuleType is the kind of a top-level stylesheet rule.
type RuleType string

// Rule types reported by the browser extraction script.
const (
	RuleFontFace RuleType = "font-face"
	RuleImport   RuleType = "import"
	RuleOther    RuleType = "other"
)

// StyleSheet is a stylesheet dump taken from the rendered document.
// Sheets the page is not allowed to read (cross-origin) have Accessible
// set to false and no rules.
type StyleSheet struct {
	Href       string `json:"href"`
	Accessible bool   `json:"accessible"`
	Error      string `json:"error,omitempty"`
	Rules      []Rule `json:"rules"`
}

// Rule is one top-level CSS rule of a StyleSheet.
type Rule struct {
	Type    RuleType   `json:"type"`
	CSSText string     `json:"cssText"`
	Face    *FaceStyle `json:"face,omitempty"`

	// Import rules only.
	ImportHref string `json:"importHref,omitempty"`
	Media      string `json:"media,omitempty"`
}

// FaceStyle holds the raw descriptor values of an @font-face rule; empty
// strings mean the descriptor was not set.
type FaceStyle struct {
	FontFamily            string `json:"fontFamily"`
	FontStyle             string `json:"fontStyle"`
	FontWeight            string `json:"fontWeight"`
	FontStretch           string `json:"fontStretch"`
	FontDisplay           string `json:"fontDisplay"`
	UnicodeRange          string `json:"unicodeRange"`
	Src                   string `json:"src"`
	FontVariationSettings string `json:"fontVariationSettings"`
}

// FontFace is an @font-face declaration with defaults applied.
type FontFace struct {
	FontFamily            string `json:"fontFamily"`
	FontStyle             string `json:"fontStyle"`
	FontWeight            string `json:"fontWeight"`
	FontStretch           string `json:"fontStretch"`
	FontDisplay           string `json:"fontDisplay"`
	UnicodeRange          string `json:"unicodeRange"`
	Src                   string `json:"src"`
	FontVariationSettings string `json:"fontVariationSettings"`
}

// Source classifies where an externally linked font comes from.
type Source string

// Known font sources, in classification precedence order.
const (
	SourcePreloaded          Source = "Preloaded Font"
	SourceGoogleFonts        Source = "Google Fonts"
	SourceAdobeFonts         Source = "Adobe Fonts"
	SourceFontsCom           Source = "Fonts.com"
	SourceExternalStylesheet Source = "External Stylesheet"
)

// ExternalFont is a <link> element that pulls fonts from outside the page.
type ExternalFont struct {
	Source Source `json:"source"`
	URL    string `json:"url"`
	Type   string `json:"type,omitempty"`
}

// VariableFont is a font face that looks like a variable font.
type VariableFont struct {
	FontFamily           string `json:"fontFamily"`
	Src                  string `json:"src"`
	HasVariationSettings bool   `json:"hasVariationSettings"`
}

// CSSImport is an @import rule.
type CSSImport struct {
	URL   string `json:"url"`
	Media string `json:"media"`
}

// FontCheck is the result of asking the document's font set whether a
// family is available for a weight and style.
type FontCheck struct {
	Family string `json:"family"`
	Weight string `json:"weight"`
	Style  string `json:"style"`
	Loaded bool   `json:"loaded"`
}

// LoadedFont is a family confirmed as loaded by the Font Loading API.
type LoadedFont struct {
	FontFamily string `json:"fontFamily"`
	Weight     string `json:"weight"`
	Style      string `json:"style"`
	Status     string `json:"status"`
}
