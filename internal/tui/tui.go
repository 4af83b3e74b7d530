// Package tui is the interactive inventory list: browse, filter by category,
// check items off, and add, edit or delete them. Every change goes straight
// to the inventory store.
package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/pantry/internal/inventory"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/ui"
)

// Store is what the TUI needs from the inventory.
type Store interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	AddItem(ctx context.Context, categoryRef string, f model.ItemFields) (model.Item, error)
	UpdateItem(ctx context.Context, categoryRef, itemID string, f model.ItemFields) (model.Item, error)
	DeleteItem(ctx context.Context, categoryRef, itemID string) error
	ToggleChecked(ctx context.Context, categoryRef, itemID string) (bool, error)
}

// Options configure a session.
type Options struct {
	// Changes, when set, signals that the document was modified elsewhere.
	Changes <-chan struct{}
	// Category preselects a category filter by display value.
	Category string
}

// listItem adapts an inventory entry to bubbles/list.Item
type listItem struct {
	inventory.Entry
}

func (i listItem) Title() string       { return i.Item.Name }
func (i listItem) Description() string { return i.Category.Value }
func (i listItem) FilterValue() string { return i.Item.Name + " " + i.Category.Value }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	name := ui.Truncate(it.Item.Name, 48)
	if it.Item.Check {
		name = t.Checked.Render(name)
	}
	line := fmt.Sprintf("%s %s %s  %s", t.Box(it.Item.Check), name,
		t.Muted.Render("×"+it.Item.Quantity), t.Accent.Render("["+it.Category.Value+"]"))
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

type keyMap struct {
	Toggle, Delete, Add, Edit, Category, Reload, Quit, Confirm key.Binding
}

var keys = keyMap{
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	Confirm:  key.NewBinding(key.WithKeys("y", "Y")),
}

// Messages
type (
	loadedMsg struct {
		cats []model.Category
		err  error
	}
	doneMsg struct {
		status string
		err    error
	}
	changedMsg struct{}
)

// Model is the Bubble Tea model for a session.
type Model struct {
	ctx   context.Context
	store Store
	opt   Options

	list     list.Model
	cats     []model.Category
	category string // "" = all categories

	form          *form
	confirmDelete *inventory.Entry

	status string
	err    string

	width, height int
}

// New builds the model; call Init (or Run) to load the inventory.
func New(ctx context.Context, s Store, opt Options) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Edit, keys.Delete, keys.Category}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	return Model{
		ctx:      ctx,
		store:    s,
		opt:      opt,
		list:     l,
		category: opt.Category,
		width:    80,
		height:   24,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, s Store, opt Options) error {
	p := tea.NewProgram(New(ctx, s, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.waitForChange())
}

func (m Model) reload() tea.Cmd {
	return func() tea.Msg {
		cats, err := m.store.ListCategories(m.ctx)
		return loadedMsg{cats: cats, err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.opt.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// do runs a store operation off the update loop.
func (m Model) do(op func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := op()
		return doneMsg{status: status, err: err}
	}
}

func (m Model) selected() (inventory.Entry, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.Entry, ok
}

func (m *Model) setEntries() tea.Cmd {
	var selected []string
	if m.category != "" {
		selected = []string{m.category}
	}
	entries := inventory.FilterItems(m.cats, selected)
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, listItem{e})
	}
	m.list.Title = m.header(entries)
	return m.list.SetItems(items)
}

func (m Model) header(entries []inventory.Entry) string {
	t := ui.Current()
	c, u := inventory.Stats(entries)
	scope := "All"
	if m.category != "" {
		scope = m.category
	}
	return fmt.Sprintf("%s %s   %s %d  %s %d  %s %d",
		t.Title.Render("Inventory"), t.Muted.Render("("+scope+")"),
		t.Success.Render(t.SymOK), c,
		t.Pending.Render("•"), u,
		t.Accent.Render("Total"), len(entries))
}

// nextCategory cycles all → each category value → all.
func (m Model) nextCategory() string {
	values := inventory.CategoryValues(m.cats)
	if len(values) == 0 {
		return ""
	}
	if m.category == "" {
		return values[0]
	}
	for i, v := range values {
		if v == m.category && i+1 < len(values) {
			return values[i+1]
		}
	}
	return ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(m.width-4, m.listHeight())
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = "load: " + msg.err.Error()
			return m, nil
		}
		m.cats = msg.cats
		if m.category != "" && !slices.Contains(inventory.CategoryValues(m.cats), m.category) {
			m.category = ""
		}
		return m, m.setEntries()

	case doneMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			m.status = ""
		} else {
			m.err = ""
			m.status = msg.status
		}
		return m, m.reload()

	case changedMsg:
		return m, tea.Batch(m.reload(), m.waitForChange())
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	if m.confirmDelete != nil {
		if k, ok := msg.(tea.KeyMsg); ok {
			e := *m.confirmDelete
			m.confirmDelete = nil
			if key.Matches(k, keys.Confirm) {
				return m, m.do(func() (string, error) {
					if err := m.store.DeleteItem(m.ctx, e.Category.ID, e.Item.ID); err != nil {
						return "", fmt.Errorf("delete: %w", err)
					}
					return "deleted " + e.Item.Name, nil
				})
			}
			m.status = "delete cancelled"
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(k, keys.Quit) && (k.String() != "esc" || m.list.FilterState() == list.Unfiltered):
			return m, tea.Quit
		case key.Matches(k, keys.Toggle):
			if e, ok := m.selected(); ok {
				return m, m.do(func() (string, error) {
					on, err := m.store.ToggleChecked(m.ctx, e.Category.ID, e.Item.ID)
					if err != nil {
						return "", fmt.Errorf("check: %w", err)
					}
					if on {
						return "checked " + e.Item.Name, nil
					}
					return "unchecked " + e.Item.Name, nil
				})
			}
			return m, nil
		case key.Matches(k, keys.Delete):
			if e, ok := m.selected(); ok {
				m.confirmDelete = &e
			}
			return m, nil
		case key.Matches(k, keys.Add):
			if len(m.cats) == 0 {
				m.err = "No category found. Please add category."
				return m, nil
			}
			cat := m.category
			if cat == "" {
				cat = m.cats[0].Value
			}
			m.form = newForm(nil, model.ItemFields{Category: cat})
			m.list.SetSize(m.width-4, m.listHeight())
			return m, m.form.focusCmd()
		case key.Matches(k, keys.Edit):
			if e, ok := m.selected(); ok {
				m.form = newForm(&e, e.Item.Fields())
				m.list.SetSize(m.width-4, m.listHeight())
				return m, m.form.focusCmd()
			}
			return m, nil
		case key.Matches(k, keys.Category):
			m.category = m.nextCategory()
			return m, m.setEntries()
		case key.Matches(k, keys.Reload):
			return m, m.reload()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.form.update(msg)
	}
	switch k.String() {
	case "esc":
		m.form = nil
		m.list.SetSize(m.width-4, m.listHeight())
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		f := m.form.fields()
		if fe := f.Validate(); fe != nil {
			m.form.err = fe.Msg
			return m, nil
		}
		if _, found := inventory.FindCategory(m.cats, f.Category); !found {
			m.form.err = "Selected category not found."
			return m, nil
		}
		editing := m.form.editing
		m.form = nil
		m.list.SetSize(m.width-4, m.listHeight())
		if editing == nil {
			return m, m.do(func() (string, error) {
				it, err := m.store.AddItem(m.ctx, f.Category, f)
				if err != nil {
					return "", fmt.Errorf("add: %w", err)
				}
				return "added " + it.Name, nil
			})
		}
		e := *editing
		return m, m.do(func() (string, error) {
			it, err := m.store.UpdateItem(m.ctx, e.Category.ID, e.Item.ID, f)
			if err != nil {
				return "", fmt.Errorf("edit: %w", err)
			}
			return "updated " + it.Name, nil
		})
	}
	return m, m.form.update(msg)
}

func (m Model) listHeight() int {
	h := m.height - 4
	if m.form != nil {
		h -= len(m.form.inputs) + 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	t := ui.Current()
	m.list.SetSize(m.width-4, m.listHeight())
	parts := []string{m.list.View()}

	switch {
	case m.form != nil:
		parts = append(parts, m.form.view())
	case m.confirmDelete != nil:
		parts = append(parts, t.Error.Render(fmt.Sprintf(
			"Delete %q from %s? [y/N]", m.confirmDelete.Item.Name, m.confirmDelete.Category.Value)))
	case m.err != "":
		parts = append(parts, t.Error.Render(t.SymFail+" "+m.err))
	case m.status != "":
		parts = append(parts, t.Success.Render(t.SymOK+" "+m.status))
	}
	return ui.PanelString(strings.Join(parts, "\n"))
}
