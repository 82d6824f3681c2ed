// Package match filters listings for the recipient search view.
package match

import (
	"net/url"
	"strings"

	"github.com/erazemk/foodshare/internal/model"
)

// TypeAll disables the type predicate.
const TypeAll = "all"

// Query is a listing search. Empty terms match everything.
type Query struct {
	Name     string
	Type     string
	Location string
}

// ParseQuery reads a Query from URL parameters: q (or name), type, location.
func ParseQuery(v url.Values) Query {
	name := v.Get("q")
	if name == "" {
		name = v.Get("name")
	}
	return Query{
		Name:     name,
		Type:     v.Get("type"),
		Location: v.Get("location"),
	}
}

// Matches reports whether a listing satisfies every predicate of the query.
// All comparisons are case-insensitive.
func (q Query) Matches(l model.Listing) bool {
	if !strings.Contains(strings.ToLower(l.Name), strings.ToLower(q.Name)) {
		return false
	}
	if q.Type != "" && !strings.EqualFold(q.Type, TypeAll) && !strings.EqualFold(l.Type, q.Type) {
		return false
	}
	return strings.Contains(strings.ToLower(l.Location), strings.ToLower(q.Location))
}

// Filter returns the listings matching q, keeping their relative order.
// The input slice is not modified.
func Filter(listings []model.Listing, q Query) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if q.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
