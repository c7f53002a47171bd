package fontusage

// ElementStyle is the computed style of a single text-bearing element as
// reported by the browser. Text is already trimmed and may be truncated by the
// extraction script; an empty Text means the element carries no text.
type ElementStyle struct {
	TagName       string `json:"tagName"`
	Text          string `json:"text"`
	FontFamily    string `json:"fontFamily"`
	FontSize      string `json:"fontSize"`
	FontWeight    string `json:"fontWeight"`
	FontStyle     string `json:"fontStyle"`
	LineHeight    string `json:"lineHeight"`
	LetterSpacing string `json:"letterSpacing"`
	TextTransform string `json:"textTransform"`
	Color         string `json:"color"`
}

// VariationKey identifies a distinct rendering style within a font family.
type VariationKey struct {
	FontSize   string
	FontWeight string
	FontStyle  string
}

// Variation is one (size, weight, style) combination used by a family.
type Variation struct {
	FontSize           string   `json:"fontSize"`
	FontSizePx         float64  `json:"fontSizePx"`
	FontWeight         string   `json:"fontWeight"`
	FontStyle          string   `json:"fontStyle"`
	LineHeight         string   `json:"lineHeight,omitempty"`
	LineHeightValue    *float64 `json:"lineHeightValue"`
	LetterSpacing      string   `json:"letterSpacing,omitempty"`
	LetterSpacingValue float64  `json:"letterSpacingValue"`
	TextTransform      string   `json:"textTransform,omitempty"`
	Color              string   `json:"color,omitempty"`
	UsageCount         int      `json:"usageCount"`
	Elements           []string `json:"elements"`
	SampleText         string   `json:"sampleText"`
}

// Key returns the variation's identity within its family.
func (v *Variation) Key() VariationKey {
	return VariationKey{FontSize: v.FontSize, FontWeight: v.FontWeight, FontStyle: v.FontStyle}
}

// FamilyRecord aggregates the usage of one font family.
type FamilyRecord struct {
	FontFamily      string      `json:"fontFamily"`
	TotalUsageCount int         `json:"totalUsageCount"`
	Elements        []string    `json:"elements"`
	Variations      []Variation `json:"variations"`
}

// Snapshot is the font usage of a document, most used family first.
type Snapshot []FamilyRecord

// Families returns the family names in snapshot order.
func (s Snapshot) Families() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.FontFamily
	}
	return names
}

// Has reports whether family is one of the snapshot's keys.
func (s Snapshot) Has(family string) bool {
	for _, f := range s {
		if f.FontFamily == family {
			return true
		}
	}
	return false
}
