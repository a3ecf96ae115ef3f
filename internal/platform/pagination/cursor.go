package pagination

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidCursor indicates a cursor that cannot be used for the list.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is an opaque position in a list. Offset is the index of the first
// item of the page it points to.
type Cursor struct {
	Kind   string
	Offset int
}

// Encode returns a URL-safe Base64 representation.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + ":" + strconv.Itoa(c.Offset)))
}

// DecodeCursor parses s for a list of kind. An empty string is the first page.
func DecodeCursor(s, kind string) (Cursor, error) {
	if s == "" {
		return Cursor{Kind: kind}, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	k, v, ok := strings.Cut(string(b), ":")
	if !ok || k != kind {
		return Cursor{}, ErrInvalidCursor
	}
	offset, err := strconv.Atoi(v)
	if err != nil || offset < 0 {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Kind: k, Offset: offset}, nil
}
