// Package sqlite provides a SQLite database adapter for LeapAdmin.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite" // sqlite driver (pure Go)

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
)

// Dialect is the SQLite dialect configuration.
var Dialect = &dialect.Dialect{
	Name:              "sqlite",
	DefaultSchema:     "main",
	Placeholder:       dialect.PlaceholderQuestion,
	Identifiers:       dialect.IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
	SupportsReturning: true,
}

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, D: Dialect},
	}
	a.Classify = classifyConstraintError
	return a
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "sqlite"
}

// Connect establishes a connection to SQLite.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	// Foreign keys are off by default in SQLite; the reference typing
	// and FK constraint classification depend on them.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ListTables returns the base tables. SQLite has no information_schema,
// so the catalog comes from sqlite_master.
func (a *Adapter) ListTables(ctx context.Context, _ string) ([]string, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	stmt := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`

	rows, err := a.DB.QueryContext(ctx, stmt)
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

// TableMetadata introspects a table through PRAGMA statements.
func (a *Adapter) TableMetadata(ctx context.Context, table string) (*adapter.TableMetadata, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, tableName := adapter.ParseQualifiedName(table, a.D)

	// Foreign keys first: reference typing folds into the column pass.
	references, err := a.foreignKeys(ctx, tableName)
	if err != nil {
		a.Logger.Debug("foreign key introspection unavailable", "table", table, "error", err)
		references = nil
	}

	stmt := fmt.Sprintf("PRAGMA table_xinfo(%s)", a.D.QuoteIdentifier(tableName))
	rows, err := a.DB.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var properties []core.Property
	pkName := ""
	position := 0
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
			hidden  int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk, &hidden); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		if hidden == 1 {
			// Implicit rowid-style column, not part of the declared schema.
			continue
		}
		position++

		generated := hidden == 2 || hidden == 3
		kind := adapter.KindOfSQLType(colType)
		if generated {
			kind = core.KindVirtual
		}

		ref := ""
		if target, ok := references[name]; ok {
			kind = core.KindReference
			ref = target
		}

		// An INTEGER primary key aliases rowid and is assigned by the
		// engine, like an identity column elsewhere.
		identity := pk > 0 && strings.EqualFold(strings.TrimSpace(colType), "integer")
		editable := !generated && !identity
		if pk > 0 && dflt.Valid {
			editable = false
		}

		prop := core.Property{
			Name:            name,
			Kind:            kind,
			Editable:        editable,
			Nullable:        notNull == 0,
			PrimaryKey:      pk > 0,
			Position:        position,
			ReferencedTable: ref,
		}
		if prop.PrimaryKey && pkName == "" {
			pkName = prop.Name
		}
		properties = append(properties, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	// Row count is informational only
	countStmt := "SELECT COUNT(*) FROM " + a.D.QualifyTable(schema, tableName)
	var rowCount int64
	if err := a.DB.QueryRowContext(ctx, countStmt).Scan(&rowCount); err != nil {
		rowCount = 0
	}

	return &adapter.TableMetadata{
		Schema:     schema,
		Name:       tableName,
		Properties: properties,
		PrimaryKey: pkName,
		RowCount:   rowCount,
	}, nil
}

func (a *Adapter) foreignKeys(ctx context.Context, tableName string) (map[string]string, error) {
	stmt := fmt.Sprintf("PRAGMA foreign_key_list(%s)", a.D.QuoteIdentifier(tableName))
	rows, err := a.DB.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	references := make(map[string]string)
	for rows.Next() {
		var (
			id, seq            int
			target, from       string
			to                 sql.NullString
			onUpdate, onDelete string
			match              string
		)
		if err := rows.Scan(&id, &seq, &target, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}
		references[from] = target
	}
	return references, rows.Err()
}
