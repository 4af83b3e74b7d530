package tui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/pantry/internal/inventory"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/store/memstore"
)

func seeded(t *testing.T) *inventory.Store {
	t.Helper()
	ctx := context.Background()
	s := inventory.New(memstore.New())
	for _, c := range []string{"Pantry", "Freezer"} {
		_, err := s.AddCategory(ctx, c)
		require.NoError(t, err)
	}
	_, err := s.AddItem(ctx, "Pantry", model.ItemFields{Name: "Rice", Quantity: "2", Category: "Pantry"})
	require.NoError(t, err)
	_, err = s.AddItem(ctx, "Freezer", model.ItemFields{Name: "Peas", Quantity: "1", Category: "Freezer"})
	require.NoError(t, err)
	return s
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// settle runs a store command and the reload it triggers.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	m, next := update(t, m, msg)
	if _, ok := msg.(doneMsg); ok {
		require.NotNil(t, next)
		m, _ = update(t, m, next())
	}
	return m
}

func loaded(t *testing.T, s Store) Model {
	t.Helper()
	m := New(context.Background(), s, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return settle(t, m, m.reload())
}

func itemNames(m Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(listItem).Item.Name)
	}
	return out
}

func TestLoadsAllItems(t *testing.T) {
	m := loaded(t, seeded(t))
	assert.Equal(t, []string{"Rice", "Peas"}, itemNames(m))
	assert.Contains(t, m.View(), "Rice")
	assert.Contains(t, m.list.Title, "Total 2")
}

func TestToggle(t *testing.T) {
	s := seeded(t)
	m := loaded(t, s)

	m, cmd := update(t, m, space)
	m = settle(t, m, cmd)
	assert.Equal(t, "checked Rice", m.status)

	cats, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	assert.True(t, cats[0].Items[0].Check)
	assert.True(t, m.list.Items()[0].(listItem).Item.Check)
}

func TestCategoryCycle(t *testing.T) {
	m := loaded(t, seeded(t))
	m, _ = update(t, m, runes("c"))
	assert.Equal(t, "Pantry", m.category)
	assert.Equal(t, []string{"Rice"}, itemNames(m))
	m, _ = update(t, m, runes("c"))
	assert.Equal(t, []string{"Peas"}, itemNames(m))
	m, _ = update(t, m, runes("c"))
	assert.Empty(t, m.category)
	assert.Len(t, m.list.Items(), 2)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	s := seeded(t)
	m := loaded(t, s)

	m, cmd := update(t, m, runes("d"))
	assert.Nil(t, cmd)
	require.NotNil(t, m.confirmDelete)
	assert.Contains(t, m.View(), "[y/N]")

	m, cmd = update(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, "delete cancelled", m.status)

	m, _ = update(t, m, runes("d"))
	m, cmd = update(t, m, runes("y"))
	m = settle(t, m, cmd)
	assert.Equal(t, []string{"Peas"}, itemNames(m))
}

func TestAddForm(t *testing.T) {
	s := seeded(t)
	m := loaded(t, s)

	m, _ = update(t, m, runes("a"))
	require.NotNil(t, m.form)
	assert.Equal(t, "Pantry", m.form.inputs[fieldCategory].Value())

	m, _ = update(t, m, enter)
	require.NotNil(t, m.form)
	assert.Equal(t, "Item name is required.", m.form.err)

	m, _ = update(t, m, runes("Tea"))
	m, _ = update(t, m, tab)
	m, _ = update(t, m, runes("3"))
	m, cmd := update(t, m, enter)
	assert.Nil(t, m.form)
	m = settle(t, m, cmd)

	assert.Equal(t, "added Tea", m.status)
	assert.Equal(t, []string{"Rice", "Tea", "Peas"}, itemNames(m))
}

func TestAddFormUnknownCategory(t *testing.T) {
	m := loaded(t, seeded(t))
	m, _ = update(t, m, runes("a"))
	m.form.inputs[fieldName].SetValue("Tea")
	m.form.inputs[fieldQuantity].SetValue("1")
	m.form.inputs[fieldCategory].SetValue("Attic")
	m, cmd := update(t, m, enter)
	assert.Nil(t, cmd)
	assert.Equal(t, "Selected category not found.", m.form.err)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.form)
}

func TestAddWithoutCategories(t *testing.T) {
	m := loaded(t, inventory.New(memstore.New()))
	m, _ = update(t, m, runes("a"))
	assert.Nil(t, m.form)
	assert.Contains(t, m.View(), "No category found")
}

func TestEditForm(t *testing.T) {
	s := seeded(t)
	m := loaded(t, s)

	m, _ = update(t, m, runes("e"))
	require.NotNil(t, m.form)
	assert.Equal(t, "Rice", m.form.inputs[fieldName].Value())
	assert.Empty(t, m.form.inputs[fieldImage].Value(), "placeholder image is not shown")

	m.form.inputs[fieldQuantity].SetValue("5")
	m.form.inputs[fieldCategory].SetValue("Freezer")
	m, cmd := update(t, m, enter)
	m = settle(t, m, cmd)
	assert.Equal(t, "updated Rice", m.status)

	cats, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats[0].Items)
	require.Len(t, cats[1].Items, 2)
	assert.Equal(t, "5", cats[1].Items[1].Quantity)
	assert.Equal(t, model.NoImage, cats[1].Items[1].Image)
}

func TestEditFormKeepsStoredImage(t *testing.T) {
	var img model.ImageRef
	require.NoError(t, json.Unmarshal([]byte(`{"uri":"file:///tea.jpg","width":640}`), &img))
	e := inventory.Entry{Item: model.Item{ID: "b", Name: "Tea", Quantity: "1", Category: "Pantry", Image: img}}

	f := newForm(&e, e.Item.Fields())
	assert.Equal(t, "file:///tea.jpg", f.inputs[fieldImage].Value())
	assert.Equal(t, img, f.fields().Image)

	f.inputs[fieldImage].SetValue("file:///new.jpg")
	assert.Equal(t, model.ImageURI("file:///new.jpg"), f.fields().Image)
}

func TestStoreErrorsShown(t *testing.T) {
	m := loaded(t, seeded(t))
	m, _ = update(t, m, doneMsg{err: assert.AnError})
	assert.True(t, strings.Contains(m.View(), assert.AnError.Error()))
}

func TestExternalChangeReloads(t *testing.T) {
	s := seeded(t)
	ch := make(chan struct{}, 1)
	m := New(context.Background(), s, Options{Changes: ch})
	m = settle(t, m, m.reload())

	_, err := s.AddItem(context.Background(), "Freezer", model.ItemFields{Name: "Ice", Quantity: "1", Category: "Freezer"})
	require.NoError(t, err)
	ch <- struct{}{}

	msg := m.waitForChange()()
	assert.IsType(t, changedMsg{}, msg)
	m = settle(t, m, m.reload())
	assert.Equal(t, []string{"Rice", "Peas", "Ice"}, itemNames(m))

	close(ch)
	assert.Nil(t, m.waitForChange()())
}

func TestEscClearsFilterBeforeQuitting(t *testing.T) {
	m := loaded(t, seeded(t))
	m.list.SetFilterText("Rice")
	require.Equal(t, list.FilterApplied, m.list.FilterState())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, list.Unfiltered, m.list.FilterState())
	assert.Len(t, m.list.VisibleItems(), 2)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuit(t *testing.T) {
	m := loaded(t, seeded(t))
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
