package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/store/jsonstore"
)

type result struct {
	code     int
	out, err string
}

// pantry runs one CLI invocation against dir with an isolated config.
func pantry(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var out, errb bytes.Buffer
	full := append([]string{"--config", filepath.Join(dir, "none.yaml"), "--data-dir", dir}, args...)
	code := Run(full, Options{
		In:          strings.NewReader(stdin),
		Out:         &out,
		Err:         &errb,
		Interactive: func() bool { return false },
	})
	return result{code: code, out: out.String(), err: errb.String()}
}

var idRe = regexp.MustCompile(`\(([0-9a-f]{8})\)`)

func addItem(t *testing.T, dir string, args ...string) string {
	t.Helper()
	r := pantry(t, dir, "", append([]string{"add"}, args...)...)
	require.Equal(t, 0, r.code, r.err)
	m := idRe.FindStringSubmatch(r.out)
	require.Len(t, m, 2, r.out)
	return m[1]
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()

	r := pantry(t, dir, "", "cat", "add", "Pantry")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "category added: 1. Pantry")

	id := addItem(t, dir, "Rice", "-q", "2", "-c", "Pantry")

	r = pantry(t, dir, "", "ls")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "Rice")
	assert.Contains(t, r.out, "[Pantry]")
	assert.Contains(t, r.out, "Total 1")

	r = pantry(t, dir, "", "check", "Pantry", id)
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "checked Rice")

	r = pantry(t, dir, "", "show", "Pantry", id)
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "Status:   checked")
	assert.Contains(t, r.out, "(no image)")

	r = pantry(t, dir, "", "edit", "Pantry", id, "-q", "5", "--name", "Brown rice")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "item updated: Brown rice ×5 in Pantry")

	r = pantry(t, dir, "", "rm", "Pantry", id)
	require.Equal(t, 0, r.code, r.err)

	r = pantry(t, dir, "", "ls")
	assert.Contains(t, r.out, "no items")

	// stored document keeps the shared field names
	kv, err := jsonstore.Open(dir)
	require.NoError(t, err)
	raw, ok, err := kv.Get(context.Background(), model.DocumentKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"value": "Pantry"`)
	assert.Contains(t, raw, `"items": []`)
}

func TestAddValidation(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Pantry").code)

	r := pantry(t, dir, "", "add", "Rice", "-q", "two", "-c", "Pantry")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "add: Quantity must be a valid number.")

	r = pantry(t, dir, "", "add", "Rice", "-q", "1")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "Please select a category.")

	r = pantry(t, dir, "", "add", "Rice", "-q", "1", "-c", "Garage")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "not found")
	assert.Contains(t, r.err, "Hint:")

	r = pantry(t, dir, "", "add")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "usage: pantry add")
}

func TestAddWithImage(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "rice.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpg"), 0o644))
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Pantry").code)

	id := addItem(t, dir, "Rice", "-q", "1", "-c", "Pantry", "--image", img)
	r := pantry(t, dir, "", "show", "Pantry", id)
	assert.Contains(t, r.out, "file://"+filepath.ToSlash(img))

	r = pantry(t, dir, "", "add", "Oil", "-q", "1", "-c", "Pantry", "--image", filepath.Join(dir, "missing.png"))
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "image not found")
}

func TestListFilterAndGroup(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Pantry").code)
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Freezer").code)
	rice := addItem(t, dir, "Rice", "-q", "2", "-c", "Pantry")
	addItem(t, dir, "Peas", "-q", "1", "-c", "Freezer")
	require.Equal(t, 0, pantry(t, dir, "", "check", "Pantry", rice).code)

	r := pantry(t, dir, "", "ls", "-c", "Freezer")
	assert.Contains(t, r.out, "Peas")
	assert.Contains(t, r.out, "[Freezer]")
	assert.NotContains(t, r.out, "[Pantry]")
	assert.NotContains(t, r.out, rice)

	r = pantry(t, dir, "", "ls", "--group")
	unchecked := strings.Index(r.out, "Unchecked")
	checked := strings.Index(r.out, "Checked")
	require.True(t, unchecked >= 0 && checked > unchecked, r.out)
	assert.Greater(t, strings.Index(r.out, "Rice"), checked)
	assert.Less(t, strings.Index(r.out, "Peas"), checked)
}

func TestMoveBetweenCategories(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Pantry").code)
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Freezer").code)
	id := addItem(t, dir, "Rice", "-q", "2", "-c", "Pantry")

	r := pantry(t, dir, "", "edit", "Pantry", id, "-c", "Freezer")
	require.Equal(t, 0, r.code, r.err)

	r = pantry(t, dir, "", "show", "Freezer", id)
	require.Equal(t, 0, r.code, r.err)
	r = pantry(t, dir, "", "show", "Pantry", id)
	assert.Equal(t, 2, r.code)
}

func TestCategoryDeleteConfirmation(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Pantry").code)
	addItem(t, dir, "Rice", "-q", "2", "-c", "Pantry")

	r := pantry(t, dir, "n\n", "cat", "rm", "1")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, `Delete the category "Pantry" and all its 1 associated items?`)
	assert.Contains(t, r.out, "cancelled")
	assert.Contains(t, pantry(t, dir, "", "cat", "ls").out, "Pantry")

	r = pantry(t, dir, "y\n", "cat", "rm", "1")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "category deleted: Pantry")

	r = pantry(t, dir, "", "cat", "ls")
	assert.Contains(t, r.out, "No Category found")

	r = pantry(t, dir, "", "cat", "rm", "1", "-y")
	assert.Equal(t, 2, r.code)
	r = pantry(t, dir, "", "cat", "rm", "one")
	assert.Equal(t, 2, r.code)
}

func TestCategoryAddBlank(t *testing.T) {
	dir := t.TempDir()
	r := pantry(t, dir, "", "cat", "add", "   ")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "Category name is required.")
}

func TestIDPrefixes(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, pantry(t, dir, "", "cat", "add", "Pantry").code)
	id := addItem(t, dir, "Rice", "-q", "2", "-c", "Pantry")

	r := pantry(t, dir, "", "show", "Pantry", id[:4])
	require.Equal(t, 0, r.code, r.err)

	r = pantry(t, dir, "", "show", "Pantry", "zzzz")
	assert.Equal(t, 2, r.code)
	r = pantry(t, dir, "", "show", "Attic", id)
	assert.Equal(t, 2, r.code)
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, 2, pantry(t, dir, "").code)
	assert.Equal(t, 2, pantry(t, dir, "", "frobnicate").code)
	assert.Equal(t, 2, pantry(t, dir, "", "ls", "--nope").code)
	assert.Equal(t, 2, pantry(t, dir, "", "--backend", "redis", "ls").code)
	assert.Equal(t, 2, pantry(t, dir, "", "check", "Pantry").code)
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	r := pantry(t, dir, "", "--backend", "sqlite", "cat", "add", "Pantry")
	require.Equal(t, 0, r.code, r.err)
	assert.FileExists(t, filepath.Join(dir, "pantry.db"))

	r = pantry(t, dir, "", "--backend", "sqlite", "cat", "ls")
	assert.Contains(t, r.out, "Pantry")
	// json backend in the same dir has its own, empty document
	r = pantry(t, dir, "", "cat", "ls")
	assert.Contains(t, r.out, "No Category found")
}

func TestImageRef(t *testing.T) {
	ref, err := imageRef("")
	require.NoError(t, err)
	assert.True(t, ref.IsZero())

	ref, err = imageRef("https://example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", ref.URI())

	ref, err = imageRef(model.DefaultImage)
	require.NoError(t, err)
	assert.True(t, ref.IsDefault())
}
