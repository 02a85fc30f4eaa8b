package adapter

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError is the structured validation kind adapters report when
// the database rejects a write over field constraints. The decision of
// what counts as a validation failure is made here, at the adapter
// boundary, from driver error codes — never by matching error text
// upstream.
type ValidationError struct {
	Fields map[string]string
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
	return "constraint violation: " + strings.Join(parts, "; ")
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check your target.type in leapadmin.yaml", e.Type, e.Available)
}
