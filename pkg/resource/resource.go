// Package resource exposes database tables as admin resources: typed
// property metadata plus filterable, sanitized CRUD operations.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/params"
	"github.com/leapstack-labs/leapadmin/pkg/query"
)

// Resource is the adapter's view of one queryable, mutable table.
type Resource struct {
	name       string
	schema     string
	table      string
	dbName     string
	primaryKey string
	properties []core.Property
	byName     map[string]core.Property
	adapter    adapter.Adapter
	logger     *slog.Logger
}

// Query describes one Find request.
type Query struct {
	Filter     core.Filter
	SortBy     string
	Descending bool
	Limit      int
	Offset     int
}

// New creates a resource from introspected table metadata. Metadata
// without a schema falls back to the adapter dialect's default schema.
// If logger is nil, a discard logger is used.
func New(meta *adapter.TableMetadata, dbName string, a adapter.Adapter, logger *slog.Logger) *Resource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pk := meta.PrimaryKey
	if pk == "" {
		pk = "id"
	}

	schema := meta.Schema
	if schema == "" {
		schema = a.Dialect().DefaultSchema
	}

	byName := make(map[string]core.Property, len(meta.Properties))
	for _, prop := range meta.Properties {
		byName[prop.Name] = prop
	}

	return &Resource{
		name:       meta.Name,
		schema:     schema,
		table:      meta.Name,
		dbName:     dbName,
		primaryKey: pk,
		properties: meta.Properties,
		byName:     byName,
		adapter:    a,
		logger:     logger,
	}
}

// Name returns the resource name (the table name).
func (r *Resource) Name() string { return r.name }

// DatabaseName returns the name of the database the resource lives in.
func (r *Resource) DatabaseName() string { return r.dbName }

// DatabaseType returns the dialect name of the backing database.
func (r *Resource) DatabaseType() string { return r.adapter.DialectName() }

// PrimaryKey returns the primary-key column name.
func (r *Resource) PrimaryKey() string { return r.primaryKey }

// Properties returns the resource's properties in column order.
func (r *Resource) Properties() []core.Property { return r.properties }

// Property looks up a property by name.
func (r *Resource) Property(name string) (core.Property, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// tableRef is the table reference handed to the adapter, qualified with
// the schema when one is known.
func (r *Resource) tableRef() string {
	if r.schema == "" {
		return r.table
	}
	return r.schema + "." + r.table
}

// Find returns the records matching the query. A sort on a field that
// cannot be ordered fails before any statement executes.
func (r *Resource) Find(ctx context.Context, q Query) ([]core.Record, error) {
	if q.SortBy != "" {
		prop, ok := r.byName[q.SortBy]
		if !ok {
			return nil, &core.UnknownPropertyError{Resource: r.name, Field: q.SortBy}
		}
		if !prop.Sortable() {
			return nil, &core.UnsortableFieldError{Resource: r.name, Field: q.SortBy}
		}
	}

	cond := query.Translate(q.Filter)
	records, err := r.adapter.Select(ctx, r.tableRef(), cond, query.SelectOptions{
		SortBy:     q.SortBy,
		Descending: q.Descending,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.name, err)
	}
	return records, nil
}

// Count returns the number of records matching the filter.
func (r *Resource) Count(ctx context.Context, filter core.Filter) (int64, error) {
	count, err := r.adapter.Count(ctx, r.tableRef(), query.Translate(filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.name, err)
	}
	return count, nil
}

// FindByID returns the record with the given primary key, or
// core.ErrNotFound.
func (r *Resource) FindByID(ctx context.Context, id any) (core.Record, error) {
	var cond core.Condition
	cond.Add(core.Predicate{Column: r.primaryKey, Op: core.OpEq, Value: id})

	records, err := r.adapter.Select(ctx, r.tableRef(), &cond, query.SelectOptions{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", r.name, err)
	}
	if len(records) == 0 {
		return nil, core.ErrNotFound
	}
	return records[0], nil
}

// FindMany returns the records whose primary keys are in ids, keyed by
// the stringified primary-key value.
func (r *Resource) FindMany(ctx context.Context, ids []any) (map[string]core.Record, error) {
	if len(ids) == 0 {
		return map[string]core.Record{}, nil
	}

	var cond core.Condition
	cond.Add(core.Predicate{Column: r.primaryKey, Op: core.OpIn, Values: ids})

	records, err := r.adapter.Select(ctx, r.tableRef(), &cond, query.SelectOptions{})
	if err != nil {
		return nil, fmt.Errorf("find many %s: %w", r.name, err)
	}

	out := make(map[string]core.Record, len(records))
	for _, record := range records {
		out[fmt.Sprint(record[r.primaryKey])] = record
	}
	return out, nil
}

// Create normalizes the raw params and inserts a new record.
func (r *Resource) Create(ctx context.Context, raw core.RawParams) (core.Record, error) {
	normalized := params.Normalize(raw, r.properties)

	record, err := r.adapter.Insert(ctx, r.tableRef(), normalized)
	if err != nil {
		return nil, r.writeError(err)
	}
	r.logger.Debug("record created", "resource", r.name)
	return record, nil
}

// Update normalizes the raw params and rewrites the record with the
// given primary key.
func (r *Resource) Update(ctx context.Context, id any, raw core.RawParams) (core.Record, error) {
	normalized := params.Normalize(raw, r.properties)

	record, err := r.adapter.Update(ctx, r.tableRef(), r.primaryKey, id, normalized)
	if err != nil {
		return nil, r.writeError(err)
	}
	r.logger.Debug("record updated", "resource", r.name)
	return record, nil
}

// Delete removes the record with the given primary key.
func (r *Resource) Delete(ctx context.Context, id any) error {
	if err := r.adapter.Delete(ctx, r.tableRef(), r.primaryKey, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.name, err)
	}
	return nil
}

// writeError converts the adapter's structured validation kind into the
// resource-level validation error. Every other failure class keeps its
// identity and propagates unchanged.
func (r *Resource) writeError(err error) error {
	var verr *adapter.ValidationError
	if errors.As(err, &verr) {
		return &core.ValidationError{Resource: r.name, Fields: verr.Fields}
	}
	return err
}
