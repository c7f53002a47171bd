package fontsource

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrInaccessibleStyleSheet is reported for stylesheets the document cannot read.
var ErrInaccessibleStyleSheet = errors.New("stylesheet not accessible")

// Result holds everything the scanner found in stylesheets and markup.
type Result struct {
	FontFaces     []FontFace
	CSSImports    []CSSImport
	DeclaredFonts []string
	VariableFonts []VariableFont
	ExternalFonts []ExternalFont

	// Errors lists sources that contributed nothing, e.g. cross-origin sheets.
	// They are diagnostics, never failures.
	Errors []error
}

var (
	fontFamilyDecl = regexp.MustCompile(`(?i)font-family\s*:\s*([^;]+)`)
	fontFileHref   = regexp.MustCompile(`(?i)\.(woff|woff2|ttf|otf|eot)`)
)

// cssWideKeywords are never reported as declared families.
var cssWideKeywords = map[string]bool{
	"inherit": true,
	"initial": true,
	"unset":   true,
}

// Scan inspects the stylesheet dumps and the rendered HTML of a document.
// Relative link URLs are resolved as the browser does: against the first
// <base href> of the document, itself resolved against docURL, or against
// docURL when there is none. docURL should be the URL the document was
// finally served from, after redirects.
func Scan(sheets []StyleSheet, html, docURL string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered html: %w", err)
	}

	res := &Result{
		FontFaces:     []FontFace{},
		CSSImports:    []CSSImport{},
		VariableFonts: []VariableFont{},
		ExternalFonts: []ExternalFont{},
	}

	declared := newOrderedSet()

	for _, sheet := range sheets {
		if !sheet.Accessible {
			res.Errors = append(res.Errors, fmt.Errorf("%w: %s: %s", ErrInaccessibleStyleSheet, sheetName(sheet), sheet.Error))
			continue
		}

		for _, rule := range sheet.Rules {
			switch rule.Type {
			case RuleFontFace:
				if rule.Face == nil {
					break
				}
				face := NewFontFace(*rule.Face)
				res.FontFaces = append(res.FontFaces, face)
				if IsVariable(*rule.Face) {
					res.VariableFonts = append(res.VariableFonts, VariableFont{
						FontFamily:           face.FontFamily,
						Src:                  rule.Face.Src,
						HasVariationSettings: rule.Face.FontVariationSettings != "",
					})
				}
			case RuleImport:
				media := rule.Media
				if media == "" {
					media = "all"
				}
				res.CSSImports = append(res.CSSImports, CSSImport{URL: rule.ImportHref, Media: media})
			}

			declared.add(DeclaredFamilies(rule.CSSText)...)
		}
	}

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		declared.add(DeclaredFamilies(style)...)
	})
	res.DeclaredFonts = declared.items

	base := documentBase(doc, docURL)
	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		href := resolveHref(base, s.AttrOr("href", ""))
		if ext, ok := ClassifyLink(href, s.AttrOr("rel", ""), s.AttrOr("as", "")); ok {
			res.ExternalFonts = append(res.ExternalFonts, ext)
		}
	})

	return res, nil
}

// NewFontFace applies the browser's descriptor defaults to a raw face.
func NewFontFace(f FaceStyle) FontFace {
	return FontFace{
		FontFamily:            orDefault(f.FontFamily, "unknown"),
		FontStyle:             orDefault(f.FontStyle, "normal"),
		FontWeight:            orDefault(f.FontWeight, "normal"),
		FontStretch:           orDefault(f.FontStretch, "normal"),
		FontDisplay:           orDefault(f.FontDisplay, "auto"),
		UnicodeRange:          f.UnicodeRange,
		Src:                   f.Src,
		FontVariationSettings: f.FontVariationSettings,
	}
}

// IsVariable reports whether a font face looks like a variable font: its
// source mentions "variable" or "VF", it sets variation settings, or its
// weight is a range such as "100 900".
func IsVariable(f FaceStyle) bool {
	return strings.Contains(f.Src, "variable") ||
		strings.Contains(f.Src, "VF") ||
		f.FontVariationSettings != "" ||
		strings.Contains(f.FontWeight, " ")
}

// DeclaredFamilies extracts every family named in font-family declarations
// of the given CSS text, in order of appearance.
func DeclaredFamilies(css string) []string {
	var out []string
	for _, m := range fontFamilyDecl.FindAllStringSubmatch(css, -1) {
		for _, f := range strings.Split(m[1], ",") {
			f = strings.NewReplacer(`"`, "", `'`, "").Replace(strings.TrimSpace(f))
			if f == "" || cssWideKeywords[f] {
				continue
			}
			out = append(out, f)
		}
	}
	return out
}

// ClassifyLink decides whether a <link> element references fonts.
// The checks run in precedence order: font preloads, Google Fonts,
// Adobe Fonts, Fonts.com, then any stylesheet whose URL mentions fonts.
func ClassifyLink(href, rel, as string) (ExternalFont, bool) {
	if href == "" {
		return ExternalFont{}, false
	}

	switch {
	case strings.Contains(rel, "preload") && (as == "font" || fontFileHref.MatchString(href)):
		return ExternalFont{Source: SourcePreloaded, URL: href, Type: orDefault(as, "font")}, true
	case strings.Contains(href, "fonts.googleapis.com") || strings.Contains(href, "fonts.gstatic.com"):
		return ExternalFont{Source: SourceGoogleFonts, URL: href}, true
	case strings.Contains(href, "use.typekit.net") || strings.Contains(href, "adobe.com/fonts"):
		return ExternalFont{Source: SourceAdobeFonts, URL: href}, true
	case strings.Contains(href, "fonts.com") || strings.Contains(href, "fast.fonts.net"):
		return ExternalFont{Source: SourceFontsCom, URL: href}, true
	case strings.Contains(rel, "stylesheet") && (strings.Contains(href, "font") || strings.Contains(href, "typeface")):
		return ExternalFont{Source: SourceExternalStylesheet, URL: href}, true
	}

	return ExternalFont{}, false
}

// documentBase returns the base URL links of doc resolve against.
func documentBase(doc *goquery.Document, docURL string) *url.URL {
	base, err := url.Parse(docURL)
	if err != nil {
		base = nil
	}

	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return base
	}
	if resolved := resolveHref(base, href); resolved != "" {
		if u, err := url.Parse(resolved); err == nil && u.IsAbs() {
			return u
		}
	}
	return base
}

func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func sheetName(s StyleSheet) string {
	if s.Href == "" {
		return "<inline>"
	}
	return s.Href
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), items: []string{}}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if !s.seen[v] {
			s.seen[v] = true
			s.items = append(s.items, v)
		}
	}
}
