package database

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"library-api/internal/shared/query"
)

// ListQuery accumulates the WHERE, ORDER BY and LIMIT parts of a list
// statement together with their positional arguments.
type ListQuery struct {
	where []string
	args  []interface{}
}

// NewListQuery renders spec's filters as conditions
func NewListQuery(spec query.Spec) *ListQuery {
	q := &ListQuery{}
	for _, f := range spec.Filters {
		switch f.Kind {
		case query.Contains:
			q.where = append(q.where, fmt.Sprintf("%s ILIKE %s", QuoteColumn(f.Column), q.arg(ContainsPattern(fmt.Sprint(f.Value)))))
		default:
			q.where = append(q.where, fmt.Sprintf("%s = %s", QuoteColumn(f.Column), q.arg(f.Value)))
		}
	}
	return q
}

func (q *ListQuery) arg(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// Where returns " WHERE a AND b", or "" without filters
func (q *ListQuery) Where() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

// Args returns the filter arguments only, for the count statement
func (q *ListQuery) Args() []interface{} {
	return append([]interface{}(nil), q.args...)
}

// Page renders ORDER BY plus LIMIT/OFFSET and returns the full argument
// list. tiebreak keeps paging stable when sort values repeat.
func (q *ListQuery) Page(spec query.Spec, tiebreak string) (string, []interface{}) {
	direction := "ASC"
	if spec.SortDescending {
		direction = "DESC"
	}

	var b strings.Builder
	fmt.Fprintf(&b, " ORDER BY %s %s", QuoteColumn(spec.SortField), direction)
	if tiebreak != "" && tiebreak != spec.SortField {
		fmt.Fprintf(&b, ", %s %s", QuoteColumn(tiebreak), direction)
	}

	args := q.Args()
	args = append(args, spec.Limit, spec.Offset())
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

// QuoteColumn quotes "alias.column" part by part
func QuoteColumn(column string) string {
	parts := strings.Split(column, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern wraps s for ILIKE with its wildcards escaped
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
