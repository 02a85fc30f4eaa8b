// Package dialect provides SQL dialect configuration for LeapAdmin's
// statement building.
//
// This package contains the public contract for dialect definitions used
// by the query builder and the adapters. Concrete dialects are registered
// from pkg/adapters/*/ packages.
package dialect

import (
	"strconv"
	"strings"
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string // Quote character: ", `, [
	QuoteEnd string // End quote character (usually same as Quote, ] for [)
	Escape   string // Escape sequence: "", ``, ]]
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name          string
	DefaultSchema string // "main" for DuckDB, "public" for Postgres
	Placeholder   PlaceholderStyle
	Identifiers   IdentifierConfig

	// SupportsReturning reports whether INSERT/UPDATE ... RETURNING *
	// is available for reading back the written row.
	SupportsReturning bool
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QualifyTable returns the quoted schema.table reference. An empty
// schema falls back to the dialect's default schema.
func (d *Dialect) QualifyTable(schema, table string) string {
	if schema == "" {
		schema = d.DefaultSchema
	}
	if schema == "" {
		return d.QuoteIdentifier(table)
	}
	return d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(table)
}
