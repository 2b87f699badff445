package query

import (
	"fmt"
)

// Operator is a comparison used in a WHERE condition
type Operator string

const (
	EQ  Operator = "="
	NEQ Operator = "<>"
)

// SortDirection represents sort order
type SortDirection string

const (
	ASC  SortDirection = "ASC"
	DESC SortDirection = "DESC"
)

// Join is a single JOIN clause. Condition is raw SQL and must never carry
// caller input; values belong in conditions.
type Join struct {
	Type      string
	Target    string
	Condition string
}

// Condition compares a column against a named, bound parameter
type Condition struct {
	Field     string
	Operator  Operator
	ParamName string
	Value     any
}

// Order is one ORDER BY term
type Order struct {
	Field     string
	Direction SortDirection
}

// SelectQuery is the parsed form of a SELECT statement
type SelectQuery struct {
	Target     string
	Fields     []string
	Joins      []Join
	Conditions []Condition
	Ordering   []Order
	Limit      *int
	Offset     *int
}

// Builder provides a fluent interface for constructing a SelectQuery
type Builder struct {
	q *SelectQuery
}

// Select starts a SELECT query against target ("users u")
func Select(target string) *Builder {
	return &Builder{q: &SelectQuery{Target: target}}
}

// Fields appends columns to the select list
func (b *Builder) Fields(fields ...string) *Builder {
	b.q.Fields = append(b.q.Fields, fields...)
	return b
}

// LeftJoin adds a LEFT JOIN
func (b *Builder) LeftJoin(target, condition string) *Builder {
	return b.join("LEFT", target, condition)
}

// InnerJoin adds an INNER JOIN
func (b *Builder) InnerJoin(target, condition string) *Builder {
	return b.join("INNER", target, condition)
}

func (b *Builder) join(joinType, target, condition string) *Builder {
	b.q.Joins = append(b.q.Joins, Join{Type: joinType, Target: target, Condition: condition})
	return b
}

// Where adds an AND condition bound to param
func (b *Builder) Where(field string, op Operator, param string, value any) *Builder {
	b.q.Conditions = append(b.q.Conditions, Condition{
		Field:     field,
		Operator:  op,
		ParamName: param,
		Value:     value,
	})
	return b
}

// OrderByDesc adds descending order
func (b *Builder) OrderByDesc(field string) *Builder {
	b.q.Ordering = append(b.q.Ordering, Order{Field: field, Direction: DESC})
	return b
}

// OrderByAsc adds ascending order
func (b *Builder) OrderByAsc(field string) *Builder {
	b.q.Ordering = append(b.q.Ordering, Order{Field: field, Direction: ASC})
	return b
}

// Limit sets the result limit
func (b *Builder) Limit(limit int) *Builder {
	b.q.Limit = &limit
	return b
}

// Offset sets the result offset
func (b *Builder) Offset(offset int) *Builder {
	b.q.Offset = &offset
	return b
}

// Build returns the accumulated query
func (b *Builder) Build() *SelectQuery {
	return b.q
}

// Validate checks the query is renderable
func (q *SelectQuery) Validate() error {
	if q.Target == "" {
		return fmt.Errorf("select requires a target")
	}
	if len(q.Fields) == 0 {
		return fmt.Errorf("select requires at least one field")
	}
	seen := make(map[string]bool, len(q.Conditions))
	for _, c := range q.Conditions {
		if c.ParamName == "" {
			return fmt.Errorf("condition on %s has no parameter name", c.Field)
		}
		if seen[c.ParamName] {
			return fmt.Errorf("duplicate parameter name %s", c.ParamName)
		}
		seen[c.ParamName] = true
	}
	if q.Limit != nil && *q.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if q.Offset != nil && *q.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}
