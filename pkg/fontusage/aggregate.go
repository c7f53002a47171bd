package fontusage

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MaxSampleText is the number of characters (runes) kept from the trimmed text
// of the first element of a variation. Cutting happens after trimming, so a
// sample may end in whitespace.
const MaxSampleText = 100

type familyBuilder struct {
	record     *FamilyRecord
	elements   map[string]bool
	variations map[VariationKey]int // index into record.Variations
}

// Aggregate groups the given elements by font family and variation.
// Elements are consumed in document order; elements without text are ignored.
// The result is sorted by usage, see Sort.
func Aggregate(elements []ElementStyle) Snapshot {
	var order []string
	families := make(map[string]*familyBuilder)

	for _, el := range elements {
		text := strings.TrimSpace(el.Text)
		if text == "" {
			continue
		}

		family := CleanFamily(el.FontFamily)
		fb, ok := families[family]
		if !ok {
			fb = &familyBuilder{
				record:     &FamilyRecord{FontFamily: family, Elements: []string{}, Variations: []Variation{}},
				elements:   make(map[string]bool),
				variations: make(map[VariationKey]int),
			}
			families[family] = fb
			order = append(order, family)
		}

		fb.record.TotalUsageCount++
		if !fb.elements[el.TagName] {
			fb.elements[el.TagName] = true
			fb.record.Elements = append(fb.record.Elements, el.TagName)
		}

		key := VariationKey{FontSize: el.FontSize, FontWeight: el.FontWeight, FontStyle: el.FontStyle}
		idx, ok := fb.variations[key]
		if !ok {
			fb.record.Variations = append(fb.record.Variations, newVariation(el, text))
			idx = len(fb.record.Variations) - 1
			fb.variations[key] = idx
		}

		v := &fb.record.Variations[idx]
		v.UsageCount++
		v.Elements = appendUnique(v.Elements, el.TagName)
	}

	snapshot := make(Snapshot, 0, len(order))
	for _, family := range order {
		snapshot = append(snapshot, *families[family].record)
	}

	Sort(snapshot)
	return snapshot
}

func newVariation(el ElementStyle, text string) Variation {
	v := Variation{
		FontSize:      el.FontSize,
		FontWeight:    el.FontWeight,
		FontStyle:     el.FontStyle,
		LineHeight:    el.LineHeight,
		LetterSpacing: el.LetterSpacing,
		TextTransform: el.TextTransform,
		Color:         el.Color,
		Elements:      []string{},
		SampleText:    truncateRunes(text, MaxSampleText),
	}

	v.FontSizePx, _ = ParsePx(el.FontSize)

	if el.LineHeight != "normal" {
		if lh, ok := ParsePx(el.LineHeight); ok {
			v.LineHeightValue = &lh
		}
	}

	if el.LetterSpacing != "normal" {
		v.LetterSpacingValue, _ = ParsePx(el.LetterSpacing)
	}

	return v
}

// Sort orders families by TotalUsageCount and each family's variations by
// UsageCount, both descending. Ties keep their current relative order.
func Sort(s Snapshot) {
	for i := range s {
		vars := s[i].Variations
		sort.SliceStable(vars, func(a, b int) bool {
			return vars[a].UsageCount > vars[b].UsageCount
		})
	}

	sort.SliceStable(s, func(a, b int) bool {
		return s[a].TotalUsageCount > s[b].TotalUsageCount
	})
}

// CleanFamily returns the first family of a computed font-family list,
// trimmed and without quote characters.
func CleanFamily(fontFamily string) string {
	first, _, _ := strings.Cut(fontFamily, ",")
	first = strings.NewReplacer(`"`, "", `'`, "").Replace(first)
	return strings.TrimSpace(first)
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParsePx parses the leading number of a CSS length such as "16px" or "1.5".
// It reports false when the value has no numeric prefix (e.g. "normal").
func ParsePx(value string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimSpace(value))
	if m == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
