package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a record lookup by primary key matches
// no rows.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a create or update rejected by the database,
// with one message per offending field. It is built from the structured
// validation failure the storage adapter reports; unrecognized storage
// errors are never converted into one.
type ValidationError struct {
	Resource string
	Fields   map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return fmt.Sprintf("validation failed for %s (%s)", e.Resource, strings.Join(parts, "; "))
}

// UnsortableFieldError is returned by Find, before any query executes,
// when the requested sort field cannot be ordered on.
type UnsortableFieldError struct {
	Resource string
	Field    string
}

func (e *UnsortableFieldError) Error() string {
	return fmt.Sprintf("cannot sort %s by %q: the field is virtual and has no stored value", e.Resource, e.Field)
}

// UnknownPropertyError is returned when an operation names a property
// the resource does not have.
type UnknownPropertyError struct {
	Resource string
	Field    string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("resource %s has no property %q", e.Resource, e.Field)
}
