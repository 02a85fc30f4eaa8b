package adapter

import (
	"strings"

	"github.com/leapstack-labs/leapadmin/pkg/core"
)

// KindOfSQLType maps an information_schema data type to a property kind.
// Unrecognized types (JSON, arrays, geometry, ...) fall back to KindMixed
// and are filtered with plain equality.
func KindOfSQLType(sqlType string) core.Kind {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	switch {
	case strings.Contains(t, "char"), strings.Contains(t, "text"), t == "uuid", t == "enum":
		return core.KindString
	case strings.Contains(t, "bool"):
		return core.KindBoolean
	case strings.Contains(t, "timestamp"), strings.Contains(t, "datetime"):
		return core.KindDateTime
	case t == "date":
		return core.KindDate
	case strings.Contains(t, "interval"), strings.Contains(t, "point"):
		// Guard: both contain "int" but are not integral
		return core.KindMixed
	case strings.Contains(t, "int"):
		return core.KindNumber
	case strings.Contains(t, "decimal"), strings.Contains(t, "numeric"),
		strings.Contains(t, "real"), strings.Contains(t, "double"),
		strings.Contains(t, "float"):
		return core.KindFloat
	default:
		return core.KindMixed
	}
}

// columnInfo is one introspected row of information_schema.columns.
type columnInfo struct {
	name       string
	dataType   string
	nullable   bool
	position   int
	hasDefault bool
	identity   bool
	generated  bool
}

// buildProperty derives the property for a column, given the table's
// primary-key and foreign-key shape.
func buildProperty(col columnInfo, primaryKey map[string]bool, references map[string]string) core.Property {
	kind := KindOfSQLType(col.dataType)
	if col.generated {
		kind = core.KindVirtual
	}

	ref := ""
	if target, ok := references[col.name]; ok {
		kind = core.KindReference
		ref = target
	}

	// Server-managed columns must not accept client values: generated
	// columns, identity columns, and defaulted primary keys (serials).
	editable := !col.generated && !col.identity
	if primaryKey[col.name] && col.hasDefault {
		editable = false
	}

	return core.Property{
		Name:            col.name,
		Kind:            kind,
		Editable:        editable,
		Nullable:        col.nullable,
		PrimaryKey:      primaryKey[col.name],
		Position:        col.position,
		ReferencedTable: ref,
	}
}
