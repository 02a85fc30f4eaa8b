// Package params sanitizes client-submitted record data before it
// reaches persistence.
package params

import "github.com/leapstack-labs/leapadmin/pkg/core"

// Normalize applies type coercion and editability policy to raw
// create/update input, returning a new mapping. The input is never
// mutated.
//
// For every declared property:
//   - numeric and reference fields submitted as the empty string are
//     removed, so the store treats them as "not provided" instead of
//     failing to coerce "" into a number;
//   - non-editable fields are removed regardless of value, keeping
//     clients from writing server-managed columns.
//
// Keys that are not declared properties pass through untouched; whatever
// receives the result decides what to do with them.
func Normalize(raw core.RawParams, props []core.Property) core.RawParams {
	out := raw.Clone()
	for _, prop := range props {
		value, present := out[prop.Name]
		if !present {
			continue
		}
		if prop.Kind.Numeric() && value == "" {
			delete(out, prop.Name)
			continue
		}
		if !prop.Editable {
			delete(out, prop.Name)
		}
	}
	return out
}
