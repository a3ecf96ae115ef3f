package pagination

import (
	"net/url"
	"strconv"
)

// Page is one window of a list.
type Page[T any] struct {
	Items      []T
	Total      int
	LinkHeader string
	NextCursor string
	PrevCursor string
}

// Paginate returns the page of items starting at cursor. Lists are
// append-only, so an offset past the end is rejected rather than clamped.
func Paginate[T any](items []T, cursor Cursor, limit int, baseURL string, query url.Values) (Page[T], error) {
	total := len(items)
	start := cursor.Offset
	if start > total || (start == total && start > 0) {
		return Page[T]{}, ErrInvalidCursor
	}
	end := min(start+limit, total)

	page := Page[T]{Items: items[start:end], Total: total}
	if end < total {
		page.NextCursor = Cursor{Kind: cursor.Kind, Offset: end}.Encode()
	}
	if start > 0 {
		page.PrevCursor = Cursor{Kind: cursor.Kind, Offset: max(start-limit, 0)}.Encode()
	}

	q := cloneValues(query)
	q.Set("limit", strconv.Itoa(limit))
	page.LinkHeader = BuildLinkHeader(baseURL, q, page.NextCursor, page.PrevCursor)
	return page, nil
}
