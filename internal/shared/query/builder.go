// Package query turns list-endpoint query strings into a store-agnostic
// list specification. Building never fails: malformed input falls back to
// defaults or is dropped.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"library-api/internal/shared/response"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// MatchKind says how a filter value is compared
type MatchKind int

const (
	// Contains is a case-insensitive substring match
	Contains MatchKind = iota
	// Exact compares for equality
	Exact
	// Reference compares an id column; malformed ids are dropped
	Reference
)

// FilterDef declares one filterable query parameter
type FilterDef struct {
	Param  string
	Column string
	Kind   MatchKind
}

// Definition is the per-resource list configuration
type Definition struct {
	// DefaultSort is used when no (known) sort field is requested
	DefaultSort string
	// Sortable maps public field names to store columns
	Sortable map[string]string
	Filters  []FilterDef
}

// Filter is a filter with its value resolved
type Filter struct {
	Column string
	Kind   MatchKind
	Value  interface{}
}

// Spec is the list specification handed to repositories
type Spec struct {
	Page           int
	Limit          int
	SortField      string
	SortDescending bool
	Filters        []Filter
}

// Build parses page, limit, sort and the declared filters
func (d Definition) Build(values url.Values) Spec {
	spec := Spec{
		Page:  positiveOr(values.Get("page"), DefaultPage),
		Limit: positiveOr(values.Get("limit"), DefaultLimit),
	}

	spec.SortField, spec.SortDescending = d.sort(values.Get("sort"))

	for _, f := range d.Filters {
		raw := strings.TrimSpace(values.Get(f.Param))
		if raw == "" {
			continue
		}

		switch f.Kind {
		case Reference:
			id, err := uuid.Parse(raw)
			if err != nil {
				continue
			}
			spec.Filters = append(spec.Filters, Filter{Column: f.Column, Kind: f.Kind, Value: id})
		default:
			spec.Filters = append(spec.Filters, Filter{Column: f.Column, Kind: f.Kind, Value: raw})
		}
	}

	return spec
}

// sort resolves "field" or "-field". An unknown field falls back to the
// default sort but keeps the requested direction; no sort at all means
// newest first.
func (d Definition) sort(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return d.column(d.DefaultSort), true
	}

	descending := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")

	column, ok := d.Sortable[field]
	if !ok {
		column = d.column(d.DefaultSort)
	}
	return column, descending
}

func (d Definition) column(field string) string {
	if c, ok := d.Sortable[field]; ok {
		return c
	}
	return field
}

// Offset is the number of rows to skip. It saturates at math.MaxInt so an
// absurd page yields an empty page instead of a negative offset.
func (s Spec) Offset() int {
	if s.Page <= 1 || s.Limit <= 0 {
		return 0
	}
	if s.Page-1 > math.MaxInt/s.Limit {
		return math.MaxInt
	}
	return (s.Page - 1) * s.Limit
}

// Pagination builds the envelope block for total matching records
func (s Spec) Pagination(total int64) *response.Pagination {
	return &response.Pagination{
		Page:       s.Page,
		Limit:      s.Limit,
		TotalPages: TotalPages(total, s.Limit),
		TotalItems: total,
	}
}

// TotalPages is ceil(total/limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
