package core

// =============================================================================
// Property kinds
// =============================================================================

// Kind classifies a property for filtering, normalization, and sorting.
type Kind int

// Property kinds. The set is closed: the filter translator and the
// parameter normalizer switch over every kind, so adding one here
// requires updating both.
const (
	// KindString holds free text; filtered with case-insensitive contains.
	KindString Kind = iota
	// KindNumber holds integral values.
	KindNumber
	// KindFloat holds fractional numeric values.
	KindFloat
	// KindBoolean holds true/false values.
	KindBoolean
	// KindDate holds calendar dates without a time component.
	KindDate
	// KindDateTime holds timestamps.
	KindDateTime
	// KindReference holds a foreign key to another resource.
	KindReference
	// KindVirtual marks a computed column; it has no stored value and
	// cannot be sorted on or written to.
	KindVirtual
	// KindMixed covers everything else (JSON, arrays, enums, blobs).
	KindMixed
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindReference:
		return "reference"
	case KindVirtual:
		return "virtual"
	case KindMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of this kind are persisted as numbers.
// Reference keys count: they are integral foreign keys in this system.
func (k Kind) Numeric() bool {
	return k == KindNumber || k == KindFloat || k == KindReference
}

// Temporal reports whether values of this kind are filtered as date ranges.
func (k Kind) Temporal() bool {
	return k == KindDate || k == KindDateTime
}

// =============================================================================
// Property
// =============================================================================

// Property describes one field of a resource, built from column metadata.
// It is a value type and is never modified after construction.
type Property struct {
	// Name is the column name, unique within a resource.
	Name string

	// Kind classifies the property for filtering and normalization.
	Kind Kind

	// Editable reports whether client-supplied values for this field may
	// reach persistence. Generated columns and identity primary keys are
	// not editable.
	Editable bool

	// Nullable indicates whether the column allows NULL values.
	Nullable bool

	// PrimaryKey indicates whether the column is part of the primary key.
	PrimaryKey bool

	// Position is the ordinal position of the column in the table.
	Position int

	// ReferencedTable is the target table for KindReference properties.
	ReferencedTable string
}

// Sortable reports whether the resource may be sorted by this property.
// Virtual columns have no stored value to order by.
func (p Property) Sortable() bool {
	return p.Kind != KindVirtual
}
