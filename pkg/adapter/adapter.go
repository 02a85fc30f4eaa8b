// Package adapter provides database adapter interfaces and implementations
// for LeapAdmin's resource layer.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
	"github.com/leapstack-labs/leapadmin/pkg/query"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "duckdb", "postgres")
	Type string

	// Path is the file path for file-based databases (e.g., DuckDB)
	// Use ":memory:" for in-memory databases
	Path string

	// Host is the hostname for network-based databases
	Host string

	// Port is the port number for network-based databases
	Port int

	// Database is the database name
	Database string

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Schema is the default schema to use
	Schema string

	// Options contains additional driver-specific options
	Options map[string]string
}

// TableMetadata holds the introspected shape of one table: its typed
// properties, primary key, and approximate size.
type TableMetadata struct {
	Schema     string
	Name       string
	Properties []core.Property
	PrimaryKey string
	RowCount   int64
}

// Adapter defines the interface that all database adapters must
// implement. It is the storage collaborator resources delegate to: it
// accepts compiled conditions for counting and filtering, and normalized
// params for writes.
//
// Write methods report field-validation failures as *ValidationError;
// any other failure is returned as-is so callers can tell the two
// classes apart without inspecting messages.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// DialectName returns the SQL dialect name for this adapter.
	DialectName() string

	// Dialect returns the dialect configuration used for statement building.
	Dialect() *dialect.Dialect

	// ListTables returns the table names in a schema.
	ListTables(ctx context.Context, schema string) ([]string, error)

	// TableMetadata introspects a table into typed properties.
	TableMetadata(ctx context.Context, table string) (*TableMetadata, error)

	// Select returns the rows matching a condition.
	Select(ctx context.Context, table string, cond *core.Condition, opts query.SelectOptions) ([]core.Record, error)

	// Count returns the number of rows matching a condition.
	Count(ctx context.Context, table string, cond *core.Condition) (int64, error)

	// Insert writes a new row and returns it.
	Insert(ctx context.Context, table string, params core.RawParams) (core.Record, error)

	// Update rewrites the row identified by the primary key and returns it.
	Update(ctx context.Context, table, pk string, id any, params core.RawParams) (core.Record, error)

	// Delete removes the row identified by the primary key.
	Delete(ctx context.Context, table, pk string, id any) error
}
