// Package query implements the transaction query engine: filter predicate
// construction, sorting, aggregation and pagination over a record source.
package query

import (
	"strings"
	"time"

	"salesdash/internal/domain"

	"github.com/lib/pq"
)

// Condition is one filter dimension. Every condition can evaluate a record
// in memory and emit an equivalent parameterized SQL fragment, so the
// snapshot and store-backed sources share one set of filter semantics.
// Fragments use ? placeholders; the store rebinds them for its driver.
type Condition interface {
	Match(tx *domain.Transaction) bool
	Where() (clause string, args []interface{})
}

// Predicate is the AND of its conditions. An empty predicate matches
// every record.
type Predicate struct {
	conds []Condition
}

// BuildPredicate translates a FilterSpec into a Predicate. Only dimensions
// the spec actually constrains contribute a condition.
func BuildPredicate(f domain.FilterSpec) *Predicate {
	p := &Predicate{}

	if q := strings.TrimSpace(f.Search); q != "" {
		p.conds = append(p.conds, searchCondition{query: q})
	}
	if len(f.Regions) > 0 {
		p.conds = append(p.conds, membershipCondition{
			column:   "region",
			value:    func(tx *domain.Transaction) string { return tx.Region },
			accepted: f.Regions,
		})
	}
	if len(f.Genders) > 0 {
		p.conds = append(p.conds, membershipCondition{
			column:   "gender",
			value:    func(tx *domain.Transaction) string { return string(tx.Gender) },
			accepted: f.Genders,
		})
	}
	if len(f.Categories) > 0 {
		p.conds = append(p.conds, membershipCondition{
			column:   "category",
			value:    func(tx *domain.Transaction) string { return tx.Category },
			accepted: f.Categories,
		})
	}
	if len(f.PaymentMethods) > 0 {
		p.conds = append(p.conds, membershipCondition{
			column:   "payment_method",
			value:    func(tx *domain.Transaction) string { return tx.PaymentMethod },
			accepted: f.PaymentMethods,
		})
	}
	if len(f.Tags) > 0 {
		p.conds = append(p.conds, tagsCondition{accepted: f.Tags})
	}
	if f.MinAge != nil || f.MaxAge != nil {
		c := ageCondition{min: 0, max: 150}
		if f.MinAge != nil {
			c.min = *f.MinAge
		}
		if f.MaxAge != nil {
			c.max = *f.MaxAge
		}
		p.conds = append(p.conds, c)
	}
	if f.StartDate != nil || f.EndDate != nil {
		p.conds = append(p.conds, dateCondition{start: f.StartDate, end: f.EndDate})
	}

	return p
}

// Match evaluates the predicate against one record.
func (p *Predicate) Match(tx *domain.Transaction) bool {
	for _, c := range p.conds {
		if !c.Match(tx) {
			return false
		}
	}
	return true
}

// Where joins the condition fragments with AND. It returns an empty clause
// when the predicate is unconstrained.
func (p *Predicate) Where() (string, []interface{}) {
	if len(p.conds) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(p.conds))
	var args []interface{}
	for _, c := range p.conds {
		clause, cargs := c.Where()
		clauses = append(clauses, clause)
		args = append(args, cargs...)
	}
	return strings.Join(clauses, " AND "), args
}

// searchCondition matches the query as a case-insensitive substring of the
// customer name or phone number.
type searchCondition struct {
	query string
}

func (c searchCondition) Match(tx *domain.Transaction) bool {
	q := strings.ToLower(c.query)
	return strings.Contains(strings.ToLower(tx.CustomerName), q) ||
		strings.Contains(strings.ToLower(tx.Phone), q)
}

func (c searchCondition) Where() (string, []interface{}) {
	pattern := "%" + escapeLike(c.query) + "%"
	return "(customer_name ILIKE ? OR phone ILIKE ?)", []interface{}{pattern, pattern}
}

// escapeLike neutralizes LIKE metacharacters so the query is matched
// literally, the same way the in-memory evaluator does.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// membershipCondition matches when the record's value for one column is in
// the accepted set. OR within the set, by construction of IN.
type membershipCondition struct {
	column   string
	value    func(tx *domain.Transaction) string
	accepted []string
}

func (c membershipCondition) Match(tx *domain.Transaction) bool {
	v := c.value(tx)
	for _, a := range c.accepted {
		if v == a {
			return true
		}
	}
	return false
}

func (c membershipCondition) Where() (string, []interface{}) {
	// Single slice arg, expanded by sqlx.In at the store.
	return c.column + " IN (?)", []interface{}{c.accepted}
}

// tagsCondition matches when the record's comma-joined tag list intersects
// the accepted set. Selecting more tags widens the match.
type tagsCondition struct {
	accepted []string
}

func (c tagsCondition) Match(tx *domain.Transaction) bool {
	for _, tag := range tx.TagList() {
		for _, a := range c.accepted {
			if tag == a {
				return true
			}
		}
	}
	return false
}

func (c tagsCondition) Where() (string, []interface{}) {
	clause := "EXISTS (SELECT 1 FROM unnest(string_to_array(tags, ',')) AS t(tag) WHERE btrim(t.tag) = ANY(?))"
	return clause, []interface{}{pq.Array(c.accepted)}
}

// ageCondition matches min <= age <= max inclusive. Records whose age could
// not be parsed at ingestion carry a negative sentinel and fail any bounded
// age filter.
type ageCondition struct {
	min, max int
}

func (c ageCondition) Match(tx *domain.Transaction) bool {
	return tx.Age >= c.min && tx.Age <= c.max
}

func (c ageCondition) Where() (string, []interface{}) {
	return "(age >= ? AND age <= ?)", []interface{}{c.min, c.max}
}

// dateCondition matches startDate <= date <= endDate inclusive, comparing
// calendar dates. Either side may be open.
type dateCondition struct {
	start, end *time.Time
}

func (c dateCondition) Match(tx *domain.Transaction) bool {
	d := tx.Date
	if c.start != nil && d.Before(*c.start) {
		return false
	}
	if c.end != nil && d.After(*c.end) {
		return false
	}
	return true
}

func (c dateCondition) Where() (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if c.start != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, *c.start)
	}
	if c.end != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, *c.end)
	}
	return "(" + strings.Join(clauses, " AND ") + ")", args
}
