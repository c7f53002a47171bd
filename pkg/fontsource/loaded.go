package fontsource

// Weights and styles checked through document.fonts.check, in check order.
var (
	CheckWeights = []string{"400", "700"}
	CheckStyles  = []string{"normal", "italic"}
)

// LoadedFonts turns raw font-set checks into loaded font entries.
//
// For every family and every weight in CheckWeights, only the first style
// (in CheckStyles order) whose check passed is reported. The in-page check
// queries "12px <family>" with the weight as sample text, so every check of a
// family agrees and a loaded family is reported as 400 and 700 normal.
// Families whose checks all failed are left out.
func LoadedFonts(checks []FontCheck) []LoadedFont {
	type key struct{ weight, style string }

	var families []string
	passed := make(map[string]map[key]bool)
	for _, c := range checks {
		if _, ok := passed[c.Family]; !ok {
			passed[c.Family] = make(map[key]bool)
			families = append(families, c.Family)
		}
		if c.Loaded {
			passed[c.Family][key{c.Weight, c.Style}] = true
		}
	}

	loaded := []LoadedFont{}
	for _, family := range families {
		for _, weight := range CheckWeights {
			for _, style := range CheckStyles {
				if passed[family][key{weight, style}] {
					loaded = append(loaded, LoadedFont{
						FontFamily: family,
						Weight:     weight,
						Style:      style,
						Status:     "loaded",
					})
					break
				}
			}
		}
	}

	return loaded
}
