package model

import (
	"bytes"
	"encoding/json"
)

// ImageRef is an opaque reference to an item picture: a device URI or a
// bundled asset name.
//
// Documents written by the mobile app may hold a numeric bundled-asset handle
// or the picker's asset object instead of a string. Those values are kept
// verbatim and written back unchanged; URI derives what can be shown.
type ImageRef struct {
	uri string
	raw string // non-string JSON value as read, "" for plain URIs
}

// ImageURI wraps a URI or asset name.
func ImageURI(uri string) ImageRef { return ImageRef{uri: uri} }

// NoImage is the placeholder stored when no picture was chosen.
var NoImage = ImageURI(DefaultImage)

// URI is the displayable reference: the string itself, the picker object's
// uri, or "" for handles and null.
func (r ImageRef) URI() string { return r.uri }

// IsZero reports whether nothing was set, neither a URI nor a stored value.
func (r ImageRef) IsZero() bool { return r.uri == "" && r.raw == "" }

// IsDefault reports whether r points at the bundled placeholder.
func (r ImageRef) IsDefault() bool { return r.uri == "" || r.uri == DefaultImage }

// Equal compares the stored form, so a picker object is not equal to its uri.
func (r ImageRef) Equal(o ImageRef) bool { return r == o }

func (r ImageRef) String() string {
	if r.raw != "" {
		return r.raw
	}
	return r.uri
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	if r.raw != "" {
		return []byte(r.raw), nil
	}
	return json.Marshal(r.uri)
}

func (r *ImageRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = ImageURI(s)
		return nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		return err
	}
	*r = ImageRef{raw: compact.String()}
	if len(b) > 0 && b[0] == '{' {
		var asset struct {
			URI string `json:"uri"`
		}
		if err := json.Unmarshal(b, &asset); err != nil {
			return err
		}
		r.uri = asset.URI
	}
	return nil
}
