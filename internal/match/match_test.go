package match

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erazemk/foodshare/internal/model"
)

func sampleListings() []model.Listing {
	return []model.Listing{
		{ID: "1", Name: "Rice", Type: "veg", Location: "Koramangala"},
		{ID: "2", Name: "Chicken", Type: "non-veg", Location: "Indiranagar"},
	}
}

func ids(ls []model.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterTypeOnly(t *testing.T) {
	got := Filter(sampleListings(), Query{Type: "veg"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter(t *testing.T) {
	listings := append(sampleListings(),
		model.Listing{ID: "3", Name: "Fried Rice", Type: "Non-Veg", Location: "koramangala 5th block"},
		model.Listing{ID: "4", Name: "Curd rice", Type: "VEG", Location: ""},
	)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"empty query matches all", Query{}, []string{"1", "2", "3", "4"}},
		{"type all", Query{Type: "all"}, []string{"1", "2", "3", "4"}},
		{"type ALL", Query{Type: "ALL"}, []string{"1", "2", "3", "4"}},
		{"name case-insensitive", Query{Name: "RICE"}, []string{"1", "3", "4"}},
		{"type case-insensitive", Query{Type: "non-veg"}, []string{"2", "3"}},
		{"location substring", Query{Location: "KORA"}, []string{"1", "3"}},
		{"missing location only matches empty term", Query{Name: "curd", Location: "x"}, []string{}},
		{"conjunction", Query{Name: "rice", Type: "non-veg", Location: "koramangala"}, []string{"3"}},
		{"no match", Query{Name: "paneer"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(listings, tt.query)))
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	listings := sampleListings()
	before := ids(listings)

	Filter(listings, Query{Type: "non-veg"})
	Filter(listings, Query{Type: "non-veg"})

	assert.Equal(t, before, ids(listings))
	assert.Equal(t, Filter(listings, Query{Name: "i"}), Filter(listings, Query{Name: "i"}))
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery(url.Values{"q": {"rice"}, "type": {"veg"}, "location": {"HSR"}})
	assert.Equal(t, Query{Name: "rice", Type: "veg", Location: "HSR"}, q)

	q = ParseQuery(url.Values{"name": {"dal"}})
	assert.Equal(t, Query{Name: "dal"}, q)
}
