package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// DocumentKey is the storage key holding the whole inventory.
const DocumentKey = "categories"

// Category groups items under a display label.
//
// Key is the sequence number shown to users; ID is the stable identifier.
// Value is kept as a lookup alias because older documents only carry it.
type Category struct {
	ID    string `json:"id,omitempty"`
	Key   int    `json:"key"`
	Value string `json:"value"`
	Items []Item `json:"items"`
}

// Matches reports whether ref names c, by id or by display value.
func (c Category) Matches(ref string) bool {
	return ref != "" && (c.ID == ref || c.Value == ref)
}

// NextKey returns len(cats)+1, or the next unused key above it.
func NextKey(cats []Category) int {
	used := make(map[int]bool, len(cats))
	for _, c := range cats {
		used[c.Key] = true
	}
	k := len(cats) + 1
	for used[k] {
		k++
	}
	return k
}

// legacyNS scopes the ids derived for categories saved without one.
var legacyNS = uuid.MustParse("6f1c2a52-3f4e-4c55-9b0e-5a7d2b8e41c0")

// LegacyID derives a stable id for the category at position i of a document
// that predates category ids, so repeated reads agree until the next write
// stores it.
func LegacyID(i int, c Category) string {
	return uuid.NewSHA1(legacyNS, []byte(fmt.Sprintf("%d/%d/%s", i, c.Key, c.Value))).String()
}

// Decode parses a stored document. Categories without an id get their
// LegacyID; the returned bool reports whether that happened.
func Decode(raw string) ([]Category, bool, error) {
	var cats []Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, false, fmt.Errorf("json unmarshal: %w", err)
	}
	backfilled := false
	for i := range cats {
		if cats[i].Items == nil {
			cats[i].Items = []Item{}
		}
		if cats[i].ID == "" {
			cats[i].ID = LegacyID(i, cats[i])
			backfilled = true
		}
	}
	if cats == nil {
		cats = []Category{}
	}
	return cats, backfilled, nil
}

// Encode serializes the document compactly, the way the app stores it.
func Encode(cats []Category) (string, error) {
	if cats == nil {
		cats = []Category{}
	}
	b, err := json.Marshal(cats)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}
