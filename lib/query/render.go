package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Named renders q with :name placeholders and returns the parameter map.
// Limit and offset are written as literals, they are validated integers.
func (q *SelectQuery) Named() (string, map[string]any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, fmt.Errorf("invalid query: %w", err)
	}

	params := make(map[string]any, len(q.Conditions))
	var sql strings.Builder

	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(q.Fields, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(q.Target)

	for _, join := range q.Joins {
		sql.WriteString(" " + join.Type + " JOIN " + join.Target)
		if join.Condition != "" {
			sql.WriteString(" ON " + join.Condition)
		}
	}

	if len(q.Conditions) > 0 {
		terms := make([]string, len(q.Conditions))
		for i, c := range q.Conditions {
			terms[i] = fmt.Sprintf("%s %s :%s", c.Field, c.Operator, c.ParamName)
			params[c.ParamName] = c.Value
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(terms, " AND "))
	}

	if len(q.Ordering) > 0 {
		orders := make([]string, len(q.Ordering))
		for i, o := range q.Ordering {
			orders[i] = o.Field + " " + string(o.Direction)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(orders, ", "))
	}

	if q.Limit != nil {
		sql.WriteString(" LIMIT " + strconv.Itoa(*q.Limit))
	}
	if q.Offset != nil {
		sql.WriteString(" OFFSET " + strconv.Itoa(*q.Offset))
	}

	return sql.String(), params, nil
}

// Render renders q for the given sqlx bind type (sqlx.DOLLAR for postgres)
// and returns the positional arguments in placeholder order.
func (q *SelectQuery) Render(bindType int) (string, []any, error) {
	named, params, err := q.Named()
	if err != nil {
		return "", nil, err
	}
	if len(params) == 0 {
		return named, []any{}, nil
	}

	bound, args, err := sqlx.Named(named, params)
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind named parameters: %w", err)
	}
	return sqlx.Rebind(bindType, bound), args, nil
}
