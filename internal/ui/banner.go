package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Out and Err receive banners and panels; tests swap them.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

// DisableColor renders plain text from now on; by default lipgloss detects
// the terminal.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func OK(msg string) {
	fmt.Fprintln(Out, current.Success.Render(current.SymOK+" "+msg))
}

func Fail(msg string) {
	fmt.Fprintln(Err, current.Error.Render(current.SymFail+" "+msg))
}

// Hint prints a muted follow-up line under a failure.
func Hint(msg string) {
	fmt.Fprintln(Err, current.Muted.Render("Hint: "+msg))
}
