// Package predicate is a small tree of composable record conditions. Each
// node translates into a gorm clause expression once, when the query runs.
package predicate

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Predicate is a condition over one or more record columns
type Predicate interface {
	Expression() clause.Expression
	String() string
}

type eq struct {
	column string
	value  any
}

// Eq matches rows whose column equals value
func Eq(column string, value any) Predicate {
	return eq{column: column, value: value}
}

func (p eq) Expression() clause.Expression {
	return clause.Eq{Column: clause.Column{Name: p.column}, Value: p.value}
}

func (p eq) String() string {
	return fmt.Sprintf("%s = %v", p.column, p.value)
}

type in struct {
	column string
	values []any
}

// In matches rows whose column equals any of values. An empty value set
// matches nothing.
func In(column string, values ...any) Predicate {
	return in{column: column, values: values}
}

func (p in) Expression() clause.Expression {
	return clause.IN{Column: clause.Column{Name: p.column}, Values: p.values}
}

func (p in) String() string {
	return fmt.Sprintf("%s IN %v", p.column, p.values)
}

type anyOf struct {
	columns []string
	value   any
}

// AnyOf matches rows where at least one of columns equals value
func AnyOf(value any, columns ...string) Predicate {
	return anyOf{columns: columns, value: value}
}

func (p anyOf) Expression() clause.Expression {
	exprs := make([]clause.Expression, 0, len(p.columns))
	for _, column := range p.columns {
		exprs = append(exprs, clause.Eq{Column: clause.Column{Name: column}, Value: p.value})
	}
	return clause.Or(exprs...)
}

func (p anyOf) String() string {
	parts := make([]string, 0, len(p.columns))
	for _, column := range p.columns {
		parts = append(parts, fmt.Sprintf("%s = %v", column, p.value))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

type timeRange struct {
	column string
	from   *time.Time
	to     *time.Time
}

// Between matches rows whose column lies in [from, to], both bounds inclusive
func Between(column string, from, to time.Time) Predicate {
	return timeRange{column: column, from: &from, to: &to}
}

// After matches rows whose column is at or later than from
func After(column string, from time.Time) Predicate {
	return timeRange{column: column, from: &from}
}

// Before matches rows whose column is at or earlier than to
func Before(column string, to time.Time) Predicate {
	return timeRange{column: column, to: &to}
}

// TimeRange picks Between, After or Before depending on which bounds are
// present, and returns nil when neither is.
func TimeRange(column string, from, to *time.Time) Predicate {
	switch {
	case from != nil && to != nil:
		return Between(column, *from, *to)
	case from != nil:
		return After(column, *from)
	case to != nil:
		return Before(column, *to)
	default:
		return nil
	}
}

func (p timeRange) Expression() clause.Expression {
	col := clause.Column{Name: p.column}
	var exprs []clause.Expression
	if p.from != nil {
		exprs = append(exprs, clause.Gte{Column: col, Value: *p.from})
	}
	if p.to != nil {
		exprs = append(exprs, clause.Lte{Column: col, Value: *p.to})
	}
	return clause.And(exprs...)
}

func (p timeRange) String() string {
	var parts []string
	if p.from != nil {
		parts = append(parts, fmt.Sprintf("%s >= %s", p.column, p.from.Format(time.RFC3339)))
	}
	if p.to != nil {
		parts = append(parts, fmt.Sprintf("%s <= %s", p.column, p.to.Format(time.RFC3339)))
	}
	return strings.Join(parts, " AND ")
}

type and struct {
	nodes []Predicate
}

// And joins predicates into a conjunction. Nil predicates are skipped, a
// single survivor is returned as is, and no survivors yields nil, meaning
// "match all".
func And(predicates ...Predicate) Predicate {
	nodes := make([]Predicate, 0, len(predicates))
	for _, p := range predicates {
		if p == nil {
			continue
		}
		if nested, ok := p.(and); ok {
			nodes = append(nodes, nested.nodes...)
			continue
		}
		nodes = append(nodes, p)
	}

	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	default:
		return and{nodes: nodes}
	}
}

func (p and) Expression() clause.Expression {
	exprs := make([]clause.Expression, 0, len(p.nodes))
	for _, node := range p.nodes {
		exprs = append(exprs, node.Expression())
	}
	return clause.And(exprs...)
}

func (p and) String() string {
	parts := make([]string, 0, len(p.nodes))
	for _, node := range p.nodes {
		parts = append(parts, node.String())
	}
	return strings.Join(parts, " AND ")
}

// Len reports the number of leaf conditions in p
func Len(p Predicate) int {
	switch v := p.(type) {
	case nil:
		return 0
	case and:
		return len(v.nodes)
	default:
		return 1
	}
}

// Apply adds p to the WHERE clause of db. A nil predicate leaves db untouched.
func Apply(db *gorm.DB, p Predicate) *gorm.DB {
	if p == nil {
		return db
	}
	return db.Where(p.Expression())
}

// Describe renders p for logging; a nil predicate reads as "match all"
func Describe(p Predicate) string {
	if p == nil {
		return "match all"
	}
	return p.String()
}
