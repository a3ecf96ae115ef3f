package pagination

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildLinkHeader renders an RFC 8288 Link header with next and prev
// relations, keeping the other query parameters.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor, prevCursor string) string {
	var links []string
	for _, l := range []struct{ rel, cursor string }{{"next", nextCursor}, {"prev", prevCursor}} {
		if l.cursor == "" {
			continue
		}
		q := cloneValues(query)
		q.Set("cursor", l.cursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=%q", baseURL, q.Encode(), l.rel))
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
