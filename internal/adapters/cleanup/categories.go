package cleanup

import "slices"

// Categories selects the blocks of a category-grouped export.
type Categories struct {
	Men   []string
	Women []string
	Drop  []string
}

// Empty reports whether no category was configured.
func (c Categories) Empty() bool {
	return len(c.Men) == 0 && len(c.Women) == 0 && len(c.Drop) == 0
}

func (c Categories) clone() Categories {
	return Categories{
		Men:   slices.Clone(c.Men),
		Women: slices.Clone(c.Women),
		Drop:  slices.Clone(c.Drop),
	}
}

var builtinCategories = map[int]Categories{ //nolint:gochecknoglobals // read-only lookup
	2023: {
		Men: []string{
			"JJ, NK JUNIOREN JONGENS", "BM, NK JUNIOREN JONGENS", "MAN, NK MANNEN",
			"BMM, NK MANNEN", "MT23, NK NEOSENIOREN",
		},
		Women: []string{
			"VRW, NK VROUWEN", "BMV, NK VROUWEN", "MJ, NK JUNIOREN MEISJES",
			"VT23, NK NEOSENIOREN",
		},
		Drop: []string{"JJC, JJC JEUGD JONGENS", "MJC, JJC JEUGD MEISJES"},
	},
	2024: {
		Men:   []string{"JJ, NK JUNIOREN JONGENS", "MAN, NK MANNEN"},
		Women: []string{"VRW, NK VROUWEN", "MJ, NK JUNIOREN MEISJES"},
		Drop: []string{
			"KIDSV, IRONKIDS", "KIDSM, IRONKIDS",
			"JJC, JJC JEUGD JONGENS", "MJC, JJC JEUGD MEISJES",
		},
	},
}

// BuiltinCategories returns the category lists registered for a season.
func BuiltinCategories(year int) (Categories, bool) {
	c, ok := builtinCategories[year]
	if !ok {
		return Categories{}, false
	}
	return c.clone(), true
}
