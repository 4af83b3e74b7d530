package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is one look for banners, panels and list rows.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Checked                             lipgloss.Style

	BoxUnchecked, BoxChecked string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
	SymOK, SymFail           string
}

var current = themeFor("classic")

func themeFor(name string) Theme {
	s := lipgloss.NewStyle
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: s().Bold(true).Foreground(lipgloss.Color("13")),
			Muted: s().Faint(true), Accent: s().Foreground(lipgloss.Color("14")),
			Success: s().Foreground(lipgloss.Color("10")), Error: s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("11")),
			Selected:     s().Bold(true).Foreground(lipgloss.Color("13")),
			Checked:      s().Faint(true).Strikethrough(true),
			BoxUnchecked: "◻", BoxChecked: "◼",
			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("13"),
			SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		return Theme{
			Name:  "mono",
			Title: s(), Muted: s(), Accent: s(), Success: s(), Error: s(), Pending: s(),
			Selected: s(), Checked: s(),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border: lipgloss.NormalBorder(), BorderColor: lipgloss.NoColor{},
			SymOK: "ok:", SymFail: "error:",
		}
	default: // classic
		return Theme{
			Name:  "classic",
			Title: s().Bold(true),
			Muted: s().Faint(true), Accent: s().Foreground(lipgloss.Color("12")),
			Success: s().Foreground(lipgloss.Color("42")), Error: s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("214")),
			Selected:     s().Bold(true).Reverse(true),
			Checked:      s().Faint(true).Strikethrough(true),
			BoxUnchecked: "☐", BoxChecked: "☑",
			Border: lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("8"),
			SymOK: "✔", SymFail: "✖",
		}
	}
}

func SetTheme(name string) { current = themeFor(name) }

// Current is the theme chosen by SetTheme, classic until then.
func Current() Theme { return current }

// Box returns the checkbox glyph for checked.
func (t Theme) Box(checked bool) string {
	if checked {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}
