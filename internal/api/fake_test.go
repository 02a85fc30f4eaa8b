package api

import (
	"context"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
	"github.com/leapstack-labs/leapadmin/pkg/query"
)

// fakeAdapter backs the handler tests with canned data so no database
// is required.
type fakeAdapter struct {
	tables     []string
	metadata   map[string]*adapter.TableMetadata
	selectRows []core.Record
	countValue int64
	insertErr  error
	updateErr  error

	lastCond *core.Condition
	lastOpts query.SelectOptions
}

func (f *fakeAdapter) Connect(context.Context, adapter.Config) error { return nil }
func (f *fakeAdapter) Close() error                                  { return nil }
func (f *fakeAdapter) DialectName() string                           { return "fake" }

func (f *fakeAdapter) Dialect() *dialect.Dialect {
	return &dialect.Dialect{Name: "fake", DefaultSchema: "main"}
}

func (f *fakeAdapter) ListTables(context.Context, string) ([]string, error) {
	return f.tables, nil
}

func (f *fakeAdapter) TableMetadata(_ context.Context, table string) (*adapter.TableMetadata, error) {
	return f.metadata[table], nil
}

func (f *fakeAdapter) Select(_ context.Context, _ string, cond *core.Condition, opts query.SelectOptions) ([]core.Record, error) {
	f.lastCond = cond
	f.lastOpts = opts
	return f.selectRows, nil
}

func (f *fakeAdapter) Count(context.Context, string, *core.Condition) (int64, error) {
	return f.countValue, nil
}

func (f *fakeAdapter) Insert(_ context.Context, _ string, params core.RawParams) (core.Record, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	record := make(core.Record, len(params))
	for k, v := range params {
		record[k] = v
	}
	return record, nil
}

func (f *fakeAdapter) Update(_ context.Context, _, _ string, _ any, params core.RawParams) (core.Record, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	record := make(core.Record, len(params))
	for k, v := range params {
		record[k] = v
	}
	return record, nil
}

func (f *fakeAdapter) Delete(context.Context, string, string, any) error { return nil }
