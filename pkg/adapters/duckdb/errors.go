package duckdb

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
)

// DuckDB reports constraint violations as message text, so classifying
// them means parsing the message forms the engine emits.
var (
	notNullRe    = regexp.MustCompile(`NOT NULL constraint failed: [\w"]+\.([\w"]+)`)
	duplicateRe  = regexp.MustCompile(`Duplicate key "([^:"]+):`)
	foreignKeyRe = regexp.MustCompile(`key "([^:"]+):[^"]*" does not exist`)
	checkRe      = regexp.MustCompile(`CHECK constraint failed(?: on table \w+)?: ?(\w*)`)
)

// classifyConstraintError maps a DuckDB driver error to the structured
// validation kind. Errors that are not constraint violations return nil
// and pass through unchanged.
func classifyConstraintError(err error) *adapter.ValidationError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "Constraint Error") && !strings.Contains(msg, "constraint failed") {
		return nil
	}

	if m := notNullRe.FindStringSubmatch(msg); m != nil {
		field := strings.Trim(m[1], `"`)
		return &adapter.ValidationError{Fields: map[string]string{field: "must not be null"}}
	}
	if m := duplicateRe.FindStringSubmatch(msg); m != nil {
		return &adapter.ValidationError{Fields: map[string]string{m[1]: "already exists"}}
	}
	if m := foreignKeyRe.FindStringSubmatch(msg); m != nil {
		return &adapter.ValidationError{Fields: map[string]string{m[1]: "referenced record does not exist"}}
	}
	if m := checkRe.FindStringSubmatch(msg); m != nil {
		field := m[1]
		if field == "" {
			field = "record"
		}
		return &adapter.ValidationError{Fields: map[string]string{field: "violates check constraint"}}
	}

	// A constraint error in a form we do not recognize: report it
	// without a field attribution rather than letting it pass as an
	// unrecognized failure class.
	return &adapter.ValidationError{Fields: map[string]string{"record": msg}}
}
