package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// DefaultImage is stored when no picture was chosen for an item.
const DefaultImage = "asset:No_Image_Available.jpg"

// Item is one tracked inventory entry.
// JSON names match documents written by the mobile app.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Category string   `json:"category"`
	Image    ImageRef `json:"image"`
	Check    bool     `json:"check"`
}

// ItemFields is the editable part of an Item, as entered in the add/edit forms.
type ItemFields struct {
	Name     string
	Quantity string
	Category string
	Image    ImageRef
}

// FieldError reports the first form field that failed validation.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return e.Msg }

// Validate applies the presence/type checks of the item forms.
func (f ItemFields) Validate() *FieldError {
	if strings.TrimSpace(f.Name) == "" {
		return &FieldError{Field: "name", Msg: "Item name is required."}
	}
	if !IsNumeric(f.Quantity) {
		return &FieldError{Field: "quantity", Msg: "Quantity must be a valid number."}
	}
	if f.Category == "" {
		return &FieldError{Field: "category", Msg: "Please select a category."}
	}
	return nil
}

// IsNumeric reports whether s, ignoring surrounding blanks, converts to a
// number the way the mobile app's isNaN check does: decimal with optional
// exponent, Infinity, or an unsigned 0x/0o/0b integer.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return false
	case s == "Infinity" || s == "+Infinity" || s == "-Infinity":
		return true
	case len(s) > 2 && s[0] == '0':
		if base, ok := radix[s[1]]; ok {
			_, err := strconv.ParseUint(s[2:], base, 64)
			return err == nil || errors.Is(err, strconv.ErrRange)
		}
	}
	return decimal.MatchString(s)
}

var (
	decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	radix   = map[byte]int{'x': 16, 'X': 16, 'o': 8, 'O': 8, 'b': 2, 'B': 2}
)

// Apply copies the form fields onto it, keeping id and check state.
func (f ItemFields) Apply(it Item) Item {
	it.Name = f.Name
	it.Quantity = f.Quantity
	it.Category = f.Category
	it.Image = f.Image
	if it.Image.IsZero() {
		it.Image = NoImage
	}
	return it
}

// Fields returns the editable part of it.
func (it Item) Fields() ItemFields {
	return ItemFields{Name: it.Name, Quantity: it.Quantity, Category: it.Category, Image: it.Image}
}
