package fontusage

// Merge folds frame snapshots into the main document snapshot.
//
// Families are matched by name. For a family present on both sides the totals
// are summed, incoming variations are matched by VariationKey (counts added)
// or appended when unknown, and element sets are unioned. Families that only
// appear in a frame are appended as they are. The result is re-sorted with
// Sort, so no input ordering survives.
//
// None of the inputs are modified.
func Merge(main Snapshot, frames ...Snapshot) Snapshot {
	merged := main.Clone()

	index := make(map[string]int, len(merged))
	for i, f := range merged {
		index[f.FontFamily] = i
	}

	for _, frame := range frames {
		for _, incoming := range frame {
			i, ok := index[incoming.FontFamily]
			if !ok {
				merged = append(merged, incoming.clone())
				index[incoming.FontFamily] = len(merged) - 1
				continue
			}

			mergeFamily(&merged[i], incoming)
		}
	}

	Sort(merged)
	return merged
}

func mergeFamily(existing *FamilyRecord, incoming FamilyRecord) {
	existing.TotalUsageCount += incoming.TotalUsageCount

	byKey := make(map[VariationKey]int, len(existing.Variations))
	for i := range existing.Variations {
		byKey[existing.Variations[i].Key()] = i
	}

	for _, v := range incoming.Variations {
		if i, ok := byKey[v.Key()]; ok {
			existing.Variations[i].UsageCount += v.UsageCount
			continue
		}
		existing.Variations = append(existing.Variations, v.clone())
		byKey[v.Key()] = len(existing.Variations) - 1
	}

	for _, tag := range incoming.Elements {
		existing.Elements = appendUnique(existing.Elements, tag)
	}
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	out := make(Snapshot, len(s))
	for i, f := range s {
		out[i] = f.clone()
	}
	return out
}

func (f FamilyRecord) clone() FamilyRecord {
	c := f
	c.Elements = append([]string{}, f.Elements...)
	c.Variations = make([]Variation, len(f.Variations))
	for i, v := range f.Variations {
		c.Variations[i] = v.clone()
	}
	return c
}

func (v Variation) clone() Variation {
	c := v
	c.Elements = append([]string{}, v.Elements...)
	if v.LineHeightValue != nil {
		lh := *v.LineHeightValue
		c.LineHeightValue = &lh
	}
	return c
}
