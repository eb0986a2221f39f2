package query

import (
	"math"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var books = Definition{
	DefaultSort: "createdAt",
	Sortable: map[string]string{
		"createdAt": "l.created_at",
		"titre":     "l.titre",
	},
	Filters: []FilterDef{
		{Param: "titre", Column: "l.titre", Kind: Contains},
		{Param: "genre", Column: "l.genre", Kind: Exact},
		{Param: "auteur", Column: "l.auteur_id", Kind: Reference},
	},
}

func parse(raw string) url.Values {
	v, _ := url.ParseQuery(raw)
	return v
}

func TestBuildDefaults(t *testing.T) {
	spec := books.Build(parse(""))

	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 10, spec.Limit)
	assert.Equal(t, "l.created_at", spec.SortField)
	assert.True(t, spec.SortDescending)
	assert.Empty(t, spec.Filters)
}

func TestBuildMalformedPagination(t *testing.T) {
	cases := []string{"page=0&limit=abc", "page=-3&limit=0", "page=x&limit=-1", "page=1.5&limit=2.5"}
	for _, raw := range cases {
		spec := books.Build(parse(raw))
		assert.Equal(t, 1, spec.Page, raw)
		assert.Equal(t, 10, spec.Limit, raw)
	}

	spec := books.Build(parse("page=3&limit=25"))
	assert.Equal(t, 3, spec.Page)
	assert.Equal(t, 25, spec.Limit)
	assert.Equal(t, 50, spec.Offset())
}

func TestOffsetSaturates(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"page=4611686018427387905&limit=2", math.MaxInt},
		{"page=1000000000000000000&limit=100", math.MaxInt},
		{"page=2&limit=9223372036854775807", math.MaxInt},
		{"page=1&limit=9223372036854775807", 0},
	}

	for _, tt := range tests {
		spec := books.Build(parse(tt.raw))
		assert.Equal(t, tt.want, spec.Offset(), tt.raw)
		assert.GreaterOrEqual(t, spec.Offset(), 0, tt.raw)
	}
}

func TestBuildSort(t *testing.T) {
	spec := books.Build(parse("sort=titre"))
	assert.Equal(t, "l.titre", spec.SortField)
	assert.False(t, spec.SortDescending)

	spec = books.Build(parse("sort=-titre"))
	assert.Equal(t, "l.titre", spec.SortField)
	assert.True(t, spec.SortDescending)

	spec = books.Build(parse("sort=-password"))
	assert.Equal(t, "l.created_at", spec.SortField)
	assert.True(t, spec.SortDescending)

	spec = books.Build(parse("sort=password"))
	assert.Equal(t, "l.created_at", spec.SortField)
	assert.False(t, spec.SortDescending)
}

func TestBuildFilters(t *testing.T) {
	author := uuid.New()
	spec := books.Build(parse("genre=Fantasy&titre=%20anneau%20&auteur=" + author.String() + "&unknown=1"))

	assert.Equal(t, []Filter{
		{Column: "l.titre", Kind: Contains, Value: "anneau"},
		{Column: "l.genre", Kind: Exact, Value: "Fantasy"},
		{Column: "l.auteur_id", Kind: Reference, Value: author},
	}, spec.Filters)
}

func TestBuildDropsMalformedReference(t *testing.T) {
	spec := books.Build(parse("auteur=not-an-id&genre=Fantasy"))

	assert.Equal(t, []Filter{{Column: "l.genre", Kind: Exact, Value: "Fantasy"}}, spec.Filters)
}

func TestPagination(t *testing.T) {
	spec := Spec{Page: 2, Limit: 10}
	p := spec.Pagination(25)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalItems)

	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
}
