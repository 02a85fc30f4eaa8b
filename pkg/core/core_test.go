package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindString, "string"},
		{KindNumber, "number"},
		{KindFloat, "float"},
		{KindBoolean, "boolean"},
		{KindDate, "date"},
		{KindDateTime, "datetime"},
		{KindReference, "reference"},
		{KindVirtual, "virtual"},
		{KindMixed, "mixed"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestKindClassification(t *testing.T) {
	assert.True(t, KindNumber.Numeric())
	assert.True(t, KindFloat.Numeric())
	assert.True(t, KindReference.Numeric())
	assert.False(t, KindString.Numeric())

	assert.True(t, KindDate.Temporal())
	assert.True(t, KindDateTime.Temporal())
	assert.False(t, KindNumber.Temporal())
}

func TestPropertySortable(t *testing.T) {
	assert.True(t, Property{Name: "title", Kind: KindString}.Sortable())
	assert.False(t, Property{Name: "full_name", Kind: KindVirtual}.Sortable())
}

func TestConditionAdd(t *testing.T) {
	var c Condition
	assert.True(t, c.Empty())

	c.Add(Predicate{Column: "name", Op: OpContains, Value: "%bob%"})
	c.Add(Predicate{Column: "age", Op: OpEq, Value: float64(42)})

	require.Len(t, c.Predicates(), 2)
	assert.False(t, c.Empty())
	assert.Equal(t, "name", c.Predicates()[0].Column)
	assert.Equal(t, "age", c.Predicates()[1].Column)
}

func TestConditionAddReplacesSameColumn(t *testing.T) {
	var c Condition
	c.Add(Predicate{Column: "age", Op: OpEq, Value: float64(1)})
	c.Add(Predicate{Column: "name", Op: OpContains, Value: "%x%"})
	c.Add(Predicate{Column: "age", Op: OpEq, Value: float64(2)})

	require.Len(t, c.Predicates(), 2)
	// Replacement keeps the original position
	assert.Equal(t, "age", c.Predicates()[0].Column)
	assert.Equal(t, float64(2), c.Predicates()[0].Value)
}

func TestNilConditionEmpty(t *testing.T) {
	var c *Condition
	assert.True(t, c.Empty())
	assert.Nil(t, c.Predicates())
}

func TestDateRangeEmpty(t *testing.T) {
	now := time.Now()
	assert.True(t, (*DateRange)(nil).Empty())
	assert.True(t, (&DateRange{}).Empty())
	assert.False(t, (&DateRange{From: &now}).Empty())
	assert.False(t, (&DateRange{To: &now}).Empty())
}

func TestRawParamsClone(t *testing.T) {
	orig := RawParams{"a": "1", "b": "2"}
	clone := orig.Clone()
	clone["a"] = "changed"

	assert.Equal(t, "1", orig["a"])
	assert.Equal(t, "changed", clone["a"])
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{
		Resource: "users",
		Fields: map[string]string{
			"email": "must not be null",
			"age":   "violates check constraint",
		},
	}
	// Field order in the message is stable regardless of map iteration order
	assert.Equal(t,
		"validation failed for users (age: violates check constraint; email: must not be null)",
		err.Error())
}

func TestUnsortableFieldError(t *testing.T) {
	err := &UnsortableFieldError{Resource: "users", Field: "full_name"}
	assert.Contains(t, err.Error(), "full_name")
	assert.Contains(t, err.Error(), "users")
}
