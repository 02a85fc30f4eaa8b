package core

import "time"

// =============================================================================
// Condition
// =============================================================================

// Op identifies the comparison a predicate performs.
type Op int

// Predicate operations.
const (
	// OpEq matches rows where the column equals Value.
	OpEq Op = iota
	// OpContains matches rows where the lower-cased column contains
	// Value as a literal substring.
	OpContains
	// OpRange matches rows where the column falls within [From, To];
	// either bound may be absent.
	OpRange
	// OpIn matches rows where the column equals any of Values.
	OpIn
)

// Predicate is one column comparison inside a condition.
type Predicate struct {
	Column string
	Op     Op

	// Value is set for OpEq and OpContains.
	Value any

	// From and To are set for OpRange.
	From *time.Time
	To   *time.Time

	// Values is set for OpIn.
	Values []any
}

// Condition is the compiled representation of a filter: a conjunction of
// predicates, at most one per column. It is opaque to callers; only the
// query package renders it to SQL. The zero value matches everything.
type Condition struct {
	preds []Predicate
	index map[string]int
}

// Add appends a predicate to the conjunction. A later predicate on a
// column that already has one replaces it in place; predicates on
// distinct columns always accumulate, in insertion order.
func (c *Condition) Add(p Predicate) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[p.Column]; ok {
		c.preds[i] = p
		return
	}
	c.index[p.Column] = len(c.preds)
	c.preds = append(c.preds, p)
}

// Empty reports whether the condition matches everything.
func (c *Condition) Empty() bool {
	return c == nil || len(c.preds) == 0
}

// Predicates returns the predicates in insertion order.
func (c *Condition) Predicates() []Predicate {
	if c == nil {
		return nil
	}
	return c.preds
}
