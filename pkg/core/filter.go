package core

import "time"

// DateRange bounds a date or datetime filter clause. Either side may be
// nil; a range with both sides nil contributes no predicate.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Empty reports whether neither bound is set.
func (r *DateRange) Empty() bool {
	return r == nil || (r.From == nil && r.To == nil)
}

// Clause pairs a property with the raw value a caller is filtering on.
// Value carries scalar input (string form, as submitted); Range carries
// bounds for date and datetime properties.
type Clause struct {
	Property Property
	Value    string
	Range    *DateRange
}

// Filter is an ordered sequence of clauses combined with AND.
// It is built once per request and never mutated after construction.
// Callers are responsible for supplying only properties that exist on
// the resource being filtered.
type Filter []Clause

// RawParams is a flat field-name to value mapping submitted for a
// create or update, form-shaped: every value arrives as a string.
type RawParams map[string]string

// Clone returns a shallow copy of the params.
func (p RawParams) Clone() RawParams {
	out := make(RawParams, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Record is one row of a resource, keyed by column name.
type Record map[string]any
