package resource

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapadmin/pkg/core"
)

// Populate resolves a reference property across a batch of records: it
// collects the distinct foreign-key values under propertyName and loads
// the referenced records from target in one query.
//
// The result maps stringified foreign-key values to referenced records.
// Records are not modified; the caller decides how to attach the
// resolved references.
func (r *Resource) Populate(ctx context.Context, records []core.Record, propertyName string, target *Resource) (map[string]core.Record, error) {
	prop, ok := r.byName[propertyName]
	if !ok {
		return nil, &core.UnknownPropertyError{Resource: r.name, Field: propertyName}
	}
	if prop.Kind != core.KindReference {
		return nil, fmt.Errorf("property %q of %s is not a reference", propertyName, r.name)
	}

	seen := make(map[string]bool)
	var ids []any
	for _, record := range records {
		val, ok := record[propertyName]
		if !ok || val == nil {
			continue
		}
		key := fmt.Sprint(val)
		if seen[key] {
			continue
		}
		seen[key] = true
		ids = append(ids, val)
	}

	return target.FindMany(ctx, ids)
}
