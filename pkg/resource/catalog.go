package resource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
)

// Catalog holds the resources exposed from one database, in discovery
// order.
type Catalog struct {
	resources map[string]*Resource
	order     []string
}

// Discover introspects tables into resources. When tables is empty,
// every base table in the schema is exposed.
func Discover(ctx context.Context, a adapter.Adapter, cfg adapter.Config, tables []string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if len(tables) == 0 {
		var err error
		tables, err = a.ListTables(ctx, cfg.Schema)
		if err != nil {
			return nil, fmt.Errorf("failed to discover tables: %w", err)
		}
	}

	cat := &Catalog{resources: make(map[string]*Resource, len(tables))}
	for _, table := range tables {
		meta, err := a.TableMetadata(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect %s: %w", table, err)
		}

		res := New(meta, cfg.Database, a, logger)
		cat.resources[res.Name()] = res
		cat.order = append(cat.order, res.Name())
		logger.Debug("resource discovered",
			"resource", res.Name(),
			"properties", len(res.Properties()),
			"primary_key", res.PrimaryKey())
	}
	return cat, nil
}

// Get looks up a resource by name.
func (c *Catalog) Get(name string) (*Resource, bool) {
	r, ok := c.resources[name]
	return r, ok
}

// List returns all resources in discovery order.
func (c *Catalog) List() []*Resource {
	out := make([]*Resource, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.resources[name])
	}
	return out
}
