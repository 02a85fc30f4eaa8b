package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
)

// Builder renders conditions and CRUD statements for one dialect.
type Builder struct {
	d *dialect.Dialect
}

// NewBuilder creates a statement builder for the given dialect.
func NewBuilder(d *dialect.Dialect) *Builder {
	return &Builder{d: d}
}

// SelectOptions controls sorting and pagination of a Select statement.
type SelectOptions struct {
	SortBy     string
	Descending bool
	Limit      int
	Offset     int
}

// Where renders a condition to a SQL fragment (without the WHERE
// keyword) and its ordered arguments. Placeholder numbering starts at
// argIndex, which is 1-based. An empty condition renders to "".
func (b *Builder) Where(cond *core.Condition, argIndex int) (string, []any) {
	if cond.Empty() {
		return "", nil
	}

	var parts []string
	var args []any
	next := func() string {
		p := b.d.FormatPlaceholder(argIndex)
		argIndex++
		return p
	}

	for _, pred := range cond.Predicates() {
		col := b.d.QuoteIdentifier(pred.Column)
		switch pred.Op {
		case core.OpEq:
			parts = append(parts, fmt.Sprintf("%s = %s", col, next()))
			args = append(args, pred.Value)

		case core.OpContains:
			// Plain equality cannot express case-insensitive substring
			// matching, so this renders as a raw comparison expression.
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE %s", col, next()))
			args = append(args, pred.Value)

		case core.OpRange:
			var bounds []string
			if pred.From != nil {
				bounds = append(bounds, fmt.Sprintf("%s >= %s", col, next()))
				args = append(args, *pred.From)
			}
			if pred.To != nil {
				bounds = append(bounds, fmt.Sprintf("%s <= %s", col, next()))
				args = append(args, *pred.To)
			}
			parts = append(parts, strings.Join(bounds, " AND "))

		case core.OpIn:
			placeholders := make([]string, len(pred.Values))
			for i, v := range pred.Values {
				placeholders[i] = next()
				args = append(args, v)
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")))
		}
	}

	return strings.Join(parts, " AND "), args
}

// Select builds a SELECT * statement with optional condition, sorting,
// and pagination.
func (b *Builder) Select(schema, table string, cond *core.Condition, opts SelectOptions) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(b.d.QualifyTable(schema, table))

	where, args := b.Where(cond, 1)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	if opts.SortBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.d.QuoteIdentifier(opts.SortBy))
		if opts.Descending {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	if opts.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", opts.Limit)
	}
	if opts.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", opts.Offset)
	}

	return sb.String(), args
}

// Count builds a SELECT COUNT(*) statement with optional condition.
func (b *Builder) Count(schema, table string, cond *core.Condition) (string, []any) {
	stmt := "SELECT COUNT(*) FROM " + b.d.QualifyTable(schema, table)
	where, args := b.Where(cond, 1)
	if where != "" {
		stmt += " WHERE " + where
	}
	return stmt, args
}

// Insert builds an INSERT statement from normalized params. Columns are
// emitted in sorted order so the statement is deterministic for a given
// param set. When the dialect supports it, RETURNING * is appended so
// the written row can be read back.
func (b *Builder) Insert(schema, table string, params core.RawParams) (string, []any) {
	cols := sortedKeys(params)

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		quoted[i] = b.d.QuoteIdentifier(col)
		placeholders[i] = b.d.FormatPlaceholder(i + 1)
		args[i] = params[col]
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.d.QualifyTable(schema, table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
	if b.d.SupportsReturning {
		stmt += " RETURNING *"
	}
	return stmt, args
}

// Update builds an UPDATE statement from normalized params, keyed by the
// primary-key column. Columns are emitted in sorted order.
func (b *Builder) Update(schema, table, pk string, id any, params core.RawParams) (string, []any) {
	cols := sortedKeys(params)

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = %s", b.d.QuoteIdentifier(col), b.d.FormatPlaceholder(i+1))
		args = append(args, params[col])
	}
	args = append(args, id)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		b.d.QualifyTable(schema, table),
		strings.Join(sets, ", "),
		b.d.QuoteIdentifier(pk),
		b.d.FormatPlaceholder(len(cols)+1))
	if b.d.SupportsReturning {
		stmt += " RETURNING *"
	}
	return stmt, args
}

// Delete builds a DELETE statement keyed by the primary-key column.
func (b *Builder) Delete(schema, table, pk string, id any) (string, []any) {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		b.d.QualifyTable(schema, table),
		b.d.QuoteIdentifier(pk),
		b.d.FormatPlaceholder(1))
	return stmt, []any{id}
}

// ByID builds a single-row SELECT keyed by the primary-key column.
func (b *Builder) ByID(schema, table, pk string, id any) (string, []any) {
	stmt := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s",
		b.d.QualifyTable(schema, table),
		b.d.QuoteIdentifier(pk),
		b.d.FormatPlaceholder(1))
	return stmt, []any{id}
}

func sortedKeys(params core.RawParams) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
