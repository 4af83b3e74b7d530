package cli

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/pantry/internal/inventory"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/ui"
)

// -------------- rendering helpers --------------

func listLines(entries []inventory.Entry, selected []string, group bool) []string {
	t := ui.Current()
	c, u := inventory.Stats(entries)
	scope := "All"
	if len(selected) > 0 {
		scope = strings.Join(selected, ", ")
	}
	header := fmt.Sprintf("%s %s  %s %d  %s %d  %s %d",
		t.Title.Render("Inventory"), t.Muted.Render("("+scope+")"),
		t.Success.Render(t.SymOK), c,
		t.Pending.Render("•"), u,
		t.Accent.Render("Total"), len(entries),
	)

	lines := []string{header, ui.CheckedBar(c, c+u, 28), ""}
	if group {
		lines = append(lines, groupLines(entries)...)
	} else {
		lines = append(lines, flatLines(entries)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `pantry add Rice -q 2 -c Pantry`"))
	return lines
}

func flatLines(entries []inventory.Entry) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(entries))
	for i, e := range entries {
		name := ui.Truncate(e.Item.Name, 60)
		if e.Item.Check {
			name = t.Checked.Render(name)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s  %s  %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			t.Box(e.Item.Check), name,
			t.Muted.Render("×"+e.Item.Quantity),
			t.Accent.Render("["+e.Category.Value+"]"),
			t.Muted.Render(shortID(e.Item.ID)),
		))
	}
	return out
}

func groupLines(entries []inventory.Entry) []string {
	t := ui.Current()
	var open, done []inventory.Entry
	for _, e := range entries {
		if e.Item.Check {
			done = append(done, e)
		} else {
			open = append(open, e)
		}
	}
	section := func(title string, es []inventory.Entry) []string {
		lines := []string{t.Accent.Render(title)}
		if len(es) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(es)...)
	}
	lines := section("Unchecked", open)
	lines = append(lines, "")
	return append(lines, section("Checked", done)...)
}

func categoryLines(cats []model.Category, collapsed bool) []string {
	t := ui.Current()
	lines := []string{fmt.Sprintf("%s  %s %d", t.Title.Render("Categories"), t.Accent.Render("Total"), len(cats)), ""}
	if len(cats) == 0 {
		return append(lines, t.Muted.Render("No Category found. Please add category."))
	}
	for _, c := range cats {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", c.Key)),
			t.Title.Render(c.Value),
			t.Muted.Render(fmt.Sprintf("(%d items)", len(c.Items)))))
		if collapsed {
			continue
		}
		for _, it := range c.Items {
			lines = append(lines, fmt.Sprintf("     %s %s %s  %s",
				t.Box(it.Check), it.Name, t.Muted.Render("×"+it.Quantity), t.Muted.Render(shortID(it.ID))))
		}
	}
	return lines
}

func detailLines(c model.Category, it model.Item) []string {
	t := ui.Current()
	status := t.Pending.Render("unchecked")
	if it.Check {
		status = t.Success.Render("checked")
	}
	image := it.Image.URI()
	if it.Image.IsDefault() {
		image = t.Muted.Render("(no image)")
	}
	return []string{
		t.Title.Render(it.Name),
		"",
		"Quantity: " + it.Quantity,
		"Category: " + c.Value,
		"Image:    " + image,
		"Status:   " + status,
		t.Muted.Render("ID:       " + it.ID),
	}
}
