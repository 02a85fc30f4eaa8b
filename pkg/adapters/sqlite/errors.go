package sqlite

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
)

// SQLite reports constraint violations as message text, so classifying
// them means parsing the message forms the engine emits.
var (
	notNullRe   = regexp.MustCompile(`NOT NULL constraint failed: \w+\.(\w+)`)
	duplicateRe = regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`)
	checkRe     = regexp.MustCompile(`CHECK constraint failed: (\w+)`)
)

// classifyConstraintError maps a SQLite driver error to the structured
// validation kind. Errors that are not constraint violations return nil
// and pass through unchanged.
func classifyConstraintError(err error) *adapter.ValidationError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "constraint failed") {
		return nil
	}

	if m := notNullRe.FindStringSubmatch(msg); m != nil {
		return &adapter.ValidationError{Fields: map[string]string{m[1]: "must not be null"}}
	}
	if m := duplicateRe.FindStringSubmatch(msg); m != nil {
		return &adapter.ValidationError{Fields: map[string]string{m[1]: "already exists"}}
	}
	// SQLite does not name the column in FK violation messages.
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &adapter.ValidationError{Fields: map[string]string{"record": "referenced record does not exist"}}
	}
	if m := checkRe.FindStringSubmatch(msg); m != nil {
		return &adapter.ValidationError{Fields: map[string]string{m[1]: "violates check constraint"}}
	}

	// A constraint error in a form we do not recognize: report it
	// without a field attribution rather than letting it pass as an
	// unrecognized failure class.
	return &adapter.ValidationError{Fields: map[string]string{"record": msg}}
}
