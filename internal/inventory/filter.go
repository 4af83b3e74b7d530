package inventory

import (
	"slices"

	"github.com/Makepad-fr/pantry/internal/model"
)

// Entry is an item together with the category that holds it.
type Entry struct {
	Category model.Category
	Item     model.Item
}

// FilterItems flattens cats into entries in document order. With a non-empty
// selection only categories whose value is selected contribute.
func FilterItems(cats []model.Category, selected []string) []Entry {
	var out []Entry
	for _, c := range cats {
		if len(selected) > 0 && !slices.Contains(selected, c.Value) {
			continue
		}
		for _, it := range c.Items {
			out = append(out, Entry{Category: c, Item: it})
		}
	}
	return out
}

// Stats counts checked and unchecked entries.
func Stats(entries []Entry) (checked, unchecked int) {
	for _, e := range entries {
		if e.Item.Check {
			checked++
		} else {
			unchecked++
		}
	}
	return
}

// CategoryValues lists the display values in document order, for selectors.
func CategoryValues(cats []model.Category) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Value)
	}
	return out
}

// FindCategory returns the category ref names, preferring an id match over
// the first category with that display value.
func FindCategory(cats []model.Category, ref string) (model.Category, bool) {
	i := findCategory(cats, ref)
	if i < 0 {
		return model.Category{}, false
	}
	return cats[i], true
}
