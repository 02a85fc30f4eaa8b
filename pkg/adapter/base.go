package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
	"github.com/leapstack-labs/leapadmin/pkg/query"
)

// BaseSQLAdapter provides common database/sql functionality for
// adapters. Embed this struct in concrete adapter implementations to get
// standard metadata introspection and CRUD implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger

	// D is the dialect used for statement building; concrete adapters
	// set it before or during Connect.
	D *dialect.Dialect

	// Classify maps driver errors from writes to *ValidationError.
	// Concrete adapters install their driver-specific classifier; a nil
	// Classify leaves every error unrecognized.
	Classify func(error) *ValidationError
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Dialect returns the dialect configuration used for statement building.
func (b *BaseSQLAdapter) Dialect() *dialect.Dialect {
	return b.D
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// SQLDB exposes the raw connection for tooling that works below the
// record operations, such as schema migrations.
func (b *BaseSQLAdapter) SQLDB() *sql.DB {
	return b.DB
}

func (b *BaseSQLAdapter) builder() *query.Builder {
	return query.NewBuilder(b.D)
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses the dialect's default schema if not specified.
func ParseQualifiedName(table string, d *dialect.Dialect) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return d.DefaultSchema, table
}

// ListTables returns the base tables in a schema.
func (b *BaseSQLAdapter) ListTables(ctx context.Context, schema string) ([]string, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	if schema == "" {
		schema = b.D.DefaultSchema
	}

	stmt := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = %s AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`, b.D.FormatPlaceholder(1))

	rows, err := b.DB.QueryContext(ctx, stmt, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// TableMetadata introspects a table into typed properties using
// information_schema with dialect-appropriate placeholders.
func (b *BaseSQLAdapter) TableMetadata(ctx context.Context, table string) (*TableMetadata, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := ParseQualifiedName(table, b.D)

	cols, err := b.introspectColumns(ctx, schema, tableName)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	primaryKey, err := b.introspectPrimaryKey(ctx, schema, tableName)
	if err != nil {
		return nil, err
	}

	// Foreign-key introspection is best effort: not every engine fills
	// in constraint_column_usage. Reference typing degrades gracefully.
	references, err := b.introspectForeignKeys(ctx, schema, tableName)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Debug("foreign key introspection unavailable", "table", table, "error", err)
		}
		references = nil
	}

	properties := make([]core.Property, 0, len(cols))
	pkName := ""
	for _, col := range cols {
		prop := buildProperty(col, primaryKey, references)
		if prop.PrimaryKey && pkName == "" {
			pkName = prop.Name
		}
		properties = append(properties, prop)
	}

	// Row count is informational only
	countStmt := "SELECT COUNT(*) FROM " + b.D.QualifyTable(schema, tableName)
	var rowCount int64
	if err := b.DB.QueryRowContext(ctx, countStmt).Scan(&rowCount); err != nil {
		rowCount = 0
	}

	return &TableMetadata{
		Schema:     schema,
		Name:       tableName,
		Properties: properties,
		PrimaryKey: pkName,
		RowCount:   rowCount,
	}, nil
}

func (b *BaseSQLAdapter) introspectColumns(ctx context.Context, schema, tableName string) ([]columnInfo, error) {
	stmt := fmt.Sprintf(`
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position,
			column_default,
			COALESCE(is_identity, 'NO'),
			COALESCE(is_generated, 'NEVER')
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, b.D.FormatPlaceholder(1), b.D.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, stmt, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []columnInfo
	for rows.Next() {
		var (
			col       columnInfo
			nullable  string
			def       sql.NullString
			identity  string
			generated string
		)
		if err := rows.Scan(&col.name, &col.dataType, &nullable, &col.position, &def, &identity, &generated); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.nullable = nullable == "YES"
		col.hasDefault = def.Valid && def.String != ""
		col.identity = identity == "YES"
		col.generated = generated != "NEVER" && generated != ""
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	return cols, nil
}

func (b *BaseSQLAdapter) introspectPrimaryKey(ctx context.Context, schema, tableName string) (map[string]bool, error) {
	stmt := fmt.Sprintf(`
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = %s AND tc.table_name = %s
	`, b.D.FormatPlaceholder(1), b.D.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, stmt, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary key: %w", err)
	}
	defer func() { _ = rows.Close() }()

	pk := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan primary key column: %w", err)
		}
		pk[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating primary key columns: %w", err)
	}
	return pk, nil
}

func (b *BaseSQLAdapter) introspectForeignKeys(ctx context.Context, schema, tableName string) (map[string]string, error) {
	stmt := fmt.Sprintf(`
		SELECT kcu.column_name, ccu.table_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON tc.constraint_name = ccu.constraint_name
			AND tc.table_schema = ccu.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = %s AND tc.table_name = %s
	`, b.D.FormatPlaceholder(1), b.D.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, stmt, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	refs := make(map[string]string)
	for rows.Next() {
		var column, target string
		if err := rows.Scan(&column, &target); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		refs[column] = target
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}
	return refs, nil
}

// Select returns the rows matching a condition.
func (b *BaseSQLAdapter) Select(ctx context.Context, table string, cond *core.Condition, opts query.SelectOptions) ([]core.Record, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := ParseQualifiedName(table, b.D)
	stmt, args := b.builder().Select(schema, tableName, cond, opts)

	rows, err := b.DB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// Count returns the number of rows matching a condition.
func (b *BaseSQLAdapter) Count(ctx context.Context, table string, cond *core.Condition) (int64, error) {
	if b.DB == nil {
		return 0, fmt.Errorf("database connection not established")
	}

	schema, tableName := ParseQualifiedName(table, b.D)
	stmt, args := b.builder().Count(schema, tableName, cond)

	var count int64
	if err := b.DB.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}

// Insert writes a new row and returns it.
func (b *BaseSQLAdapter) Insert(ctx context.Context, table string, params core.RawParams) (core.Record, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := ParseQualifiedName(table, b.D)
	stmt, args := b.builder().Insert(schema, tableName, params)

	if b.D.SupportsReturning {
		rows, err := b.DB.QueryContext(ctx, stmt, args...)
		if err != nil {
			return nil, b.writeError("insert", err)
		}
		defer func() { _ = rows.Close() }()
		return scanOneRecord(rows)
	}

	if _, err := b.DB.ExecContext(ctx, stmt, args...); err != nil {
		return nil, b.writeError("insert", err)
	}
	return recordFromParams(params), nil
}

// Update rewrites the row identified by the primary key and returns it.
func (b *BaseSQLAdapter) Update(ctx context.Context, table, pk string, id any, params core.RawParams) (core.Record, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	if len(params) == 0 {
		// Nothing editable survived normalization; return the current row.
		return b.selectByID(ctx, table, pk, id)
	}

	schema, tableName := ParseQualifiedName(table, b.D)
	stmt, args := b.builder().Update(schema, tableName, pk, id, params)

	if b.D.SupportsReturning {
		rows, err := b.DB.QueryContext(ctx, stmt, args...)
		if err != nil {
			return nil, b.writeError("update", err)
		}
		defer func() { _ = rows.Close() }()
		return scanOneRecord(rows)
	}

	if _, err := b.DB.ExecContext(ctx, stmt, args...); err != nil {
		return nil, b.writeError("update", err)
	}
	return b.selectByID(ctx, table, pk, id)
}

// Delete removes the row identified by the primary key.
func (b *BaseSQLAdapter) Delete(ctx context.Context, table, pk string, id any) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}

	schema, tableName := ParseQualifiedName(table, b.D)
	stmt, args := b.builder().Delete(schema, tableName, pk, id)

	if _, err := b.DB.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete row: %w", err)
	}
	return nil
}

// SelectByID returns a single row by primary key, or core.ErrNotFound.
func (b *BaseSQLAdapter) SelectByID(ctx context.Context, table, pk string, id any) (core.Record, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	return b.selectByID(ctx, table, pk, id)
}

func (b *BaseSQLAdapter) selectByID(ctx context.Context, table, pk string, id any) (core.Record, error) {
	schema, tableName := ParseQualifiedName(table, b.D)
	stmt, args := b.builder().ByID(schema, tableName, pk, id)

	rows, err := b.DB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanOneRecord(rows)
}

// writeError runs the driver error through the adapter's classifier.
// Recognized constraint violations surface as *ValidationError; anything
// else keeps its identity and gains only operation context.
func (b *BaseSQLAdapter) writeError(op string, err error) error {
	if b.Classify != nil {
		if verr := b.Classify(err); verr != nil {
			return verr
		}
	}
	return fmt.Errorf("failed to %s row: %w", op, err)
}

// scanRecords reads all rows into generic records.
func scanRecords(rows *sql.Rows) ([]core.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []core.Record
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(core.Record, len(cols))
		for i, col := range cols {
			val := values[i]
			// Convert []byte to string for readability
			if bs, ok := val.([]byte); ok {
				val = string(bs)
			}
			record[col] = val
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return records, nil
}

// scanOneRecord reads exactly one row, or core.ErrNotFound.
func scanOneRecord(rows *sql.Rows) (core.Record, error) {
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, core.ErrNotFound
	}
	return records[0], nil
}

func recordFromParams(params core.RawParams) core.Record {
	record := make(core.Record, len(params))
	for k, v := range params {
		record[k] = v
	}
	return record
}
