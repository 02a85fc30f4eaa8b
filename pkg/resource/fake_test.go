package resource

import (
	"context"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
	"github.com/leapstack-labs/leapadmin/pkg/query"
)

// fakeAdapter records the calls a resource makes and returns canned
// results, so the orchestration layer is testable without a database.
type fakeAdapter struct {
	selectCalls []selectCall
	insertCalls []insertCall
	updateCalls []updateCall
	deleteCalls []deleteCall

	tables     []string
	metadata   map[string]*adapter.TableMetadata
	selectRows []core.Record
	countValue int64
	insertErr  error
	updateErr  error
}

type selectCall struct {
	table string
	cond  *core.Condition
	opts  query.SelectOptions
}

type insertCall struct {
	table  string
	params core.RawParams
}

type updateCall struct {
	table  string
	pk     string
	id     any
	params core.RawParams
}

type deleteCall struct {
	table string
	pk    string
	id    any
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

func (f *fakeAdapter) Select(_ context.Context, table string, cond *core.Condition, opts query.SelectOptions) ([]core.Record, error) {
	f.selectCalls = append(f.selectCalls, selectCall{table: table, cond: cond, opts: opts})
	return f.selectRows, nil
}

func (f *fakeAdapter) Count(_ context.Context, table string, cond *core.Condition) (int64, error) {
	f.selectCalls = append(f.selectCalls, selectCall{table: table, cond: cond})
	return f.countValue, nil
}

func (f *fakeAdapter) Insert(_ context.Context, table string, params core.RawParams) (core.Record, error) {
	f.insertCalls = append(f.insertCalls, insertCall{table: table, params: params})
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	record := make(core.Record, len(params))
	for k, v := range params {
		record[k] = v
	}
	return record, nil
}

func (f *fakeAdapter) Update(_ context.Context, table, pk string, id any, params core.RawParams) (core.Record, error) {
	f.updateCalls = append(f.updateCalls, updateCall{table: table, pk: pk, id: id, params: params})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	record := make(core.Record, len(params))
	for k, v := range params {
		record[k] = v
	}
	return record, nil
}

func (f *fakeAdapter) Delete(_ context.Context, table, pk string, id any) error {
	f.deleteCalls = append(f.deleteCalls, deleteCall{table: table, pk: pk, id: id})
	return nil
}
