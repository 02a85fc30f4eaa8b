// Package query compiles declarative filters into SQL conditions and
// builds the statements resources execute through their adapter.
//
// Translation degrades by omission rather than failing: a numeric filter
// whose value does not parse is dropped from the conjunction, and a date
// clause with neither bound contributes nothing. Callers that need to
// surface bad filter input should validate before translating.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapadmin/pkg/core"
)

// Translate compiles a filter into a conjunctive condition, one
// predicate per property, branching on the property kind:
//
//   - string: case-insensitive literal contains. The value is
//     metacharacter-escaped so the match is a substring test, never a
//     pattern.
//   - number, float: equality on the parsed numeric value; clauses whose
//     value does not parse are silently dropped.
//   - date, datetime: a range predicate from the clause bounds; a clause
//     with neither bound is skipped entirely.
//   - virtual: skipped, there is no column to filter on.
//   - everything else: equality on the raw value.
//
// Translate never fails and is deterministic: the same filter always
// produces a structurally identical condition. An empty filter produces
// the empty condition, which matches everything.
func Translate(filter core.Filter) *core.Condition {
	cond := &core.Condition{}
	for _, clause := range filter {
		prop := clause.Property
		switch prop.Kind {
		case core.KindString:
			cond.Add(core.Predicate{
				Column: prop.Name,
				Op:     core.OpContains,
				Value:  containsPattern(clause.Value),
			})

		case core.KindNumber, core.KindFloat:
			n, err := strconv.ParseFloat(strings.TrimSpace(clause.Value), 64)
			if err != nil {
				// Invalid numeric filters are ignored, not errored.
				continue
			}
			cond.Add(core.Predicate{Column: prop.Name, Op: core.OpEq, Value: n})

		case core.KindDate, core.KindDateTime:
			if clause.Range.Empty() {
				continue
			}
			cond.Add(core.Predicate{
				Column: prop.Name,
				Op:     core.OpRange,
				From:   clause.Range.From,
				To:     clause.Range.To,
			})

		case core.KindVirtual:
			// Computed fields have no backing column to filter on.
			continue

		case core.KindBoolean, core.KindReference, core.KindMixed:
			cond.Add(core.Predicate{Column: prop.Name, Op: core.OpEq, Value: clause.Value})
		}
	}
	return cond
}

// containsPattern builds the LIKE pattern for a case-insensitive
// contains match. The value is lower-cased to pair with LOWER(column)
// and metacharacter-escaped so the user's input matches literally.
func containsPattern(value string) string {
	return "%" + regexp.QuoteMeta(strings.ToLower(value)) + "%"
}
