package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errb bytes.Buffer
	oldOut, oldErr := Out, Err
	Out, Err = &out, &errb
	DisableColor()
	t.Cleanup(func() { Out, Err = oldOut, oldErr })
	return &out, &errb
}

func TestBanners(t *testing.T) {
	out, errb := capture(t)
	SetTheme("classic")
	OK("item added")
	Fail("add: Quantity must be a valid number.")
	Hint("run `pantry cat ls`")

	assert.Equal(t, "✔ item added\n", out.String())
	assert.Contains(t, errb.String(), "✖ add: Quantity must be a valid number.")
	assert.Contains(t, errb.String(), "Hint: run `pantry cat ls`")
}

func TestMonoTheme(t *testing.T) {
	out, _ := capture(t)
	SetTheme("mono")
	defer SetTheme("classic")
	OK("saved")
	assert.Equal(t, "ok: saved\n", out.String())
	assert.Equal(t, "[x]", Current().Box(true))
}

func TestPanel(t *testing.T) {
	out, _ := capture(t)
	SetTheme("mono")
	defer SetTheme("classic")
	Panel([]string{"Pantry", "Rice"})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "Pantry")
}

func TestCheckedBar(t *testing.T) {
	DisableColor()
	assert.Equal(t, "█████░░░░░ 1/2", CheckedBar(1, 2, 10))
	assert.Equal(t, "░░░░░ 0/0", CheckedBar(0, 0, 1))
	assert.Equal(t, "█████ 3/3", CheckedBar(3, 3, 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}
