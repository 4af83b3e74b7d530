package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CheckedBar shows how much of a list is checked off: a bar of width
// cells in the theme's success color, then "done/total".
func CheckedBar(done, total, width int) string {
	t := Current()
	width = max(width, 5)
	filled := 0
	if total > 0 {
		filled = min(done*width/total, width)
	}
	return t.Success.Render(strings.Repeat("█", filled)) +
		t.Muted.Render(strings.Repeat("░", width-filled)) +
		t.Muted.Render(fmt.Sprintf(" %d/%d", done, total))
}

// PanelString frames inner with the current theme's border.
func PanelString(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel draws a framed box of lines to Out.
func Panel(lines []string) {
	fmt.Fprintln(Out, PanelString(strings.Join(lines, "\n")))
}

// Truncate shortens s to n visible cells, marking the cut with "...".
func Truncate(s string, n int) string {
	if lipgloss.Width(s) <= n || n < 4 {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
