package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/pantry/internal/inventory"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/ui"
)

const (
	fieldName = iota
	fieldQuantity
	fieldCategory
	fieldImage
)

// form is the inline add/edit item form.
type form struct {
	editing *inventory.Entry // nil when adding
	inputs  []textinput.Model
	focus   int
	err     string
}

func newForm(editing *inventory.Entry, f model.ItemFields) *form {
	mk := func(prompt, placeholder, value string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.SetValue(value)
		ti.CursorEnd()
		return ti
	}
	image := f.Image.URI()
	if f.Image.IsDefault() {
		image = ""
	}
	fm := &form{
		editing: editing,
		inputs: []textinput.Model{
			fieldName:     mk("Name     > ", "Item Name", f.Name, 200),
			fieldQuantity: mk("Quantity > ", "Quantity", f.Quantity, 20),
			fieldCategory: mk("Category > ", "Select Category", f.Category, 100),
			fieldImage:    mk("Image    > ", "optional image URI", image, 500),
		},
	}
	return fm
}

func (f *form) focusCmd() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *form) move(delta int) tea.Cmd {
	n := len(f.inputs)
	f.focus = (f.focus + delta + n) % n
	return f.focusCmd()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return cmd
}

// fields returns what was typed. The image keeps whatever the item had when
// the field is left empty or still shows the item's own picture.
func (f *form) fields() model.ItemFields {
	image := strings.TrimSpace(f.inputs[fieldImage].Value())
	out := model.ItemFields{
		Name:     f.inputs[fieldName].Value(),
		Quantity: f.inputs[fieldQuantity].Value(),
		Category: strings.TrimSpace(f.inputs[fieldCategory].Value()),
		Image:    model.ImageURI(image),
	}
	if f.editing != nil && (image == "" || image == f.editing.Item.Image.URI()) {
		out.Image = f.editing.Item.Image
	}
	return out
}

func (f *form) view() string {
	t := ui.Current()
	title := "Add new item"
	if f.editing != nil {
		title = "Edit item"
	}
	if f.err != "" {
		title += "  " + t.Error.Render(f.err)
	}
	lines := []string{title}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, t.Muted.Render("tab next • enter save • esc cancel"))
	bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
	return bar.Render(strings.Join(lines, "\n"))
}
