package postgres

import (
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
)

// Integrity-constraint violation codes (class 23).
const (
	codeNotNull    = "23502"
	codeForeignKey = "23503"
	codeUnique     = "23505"
	codeCheck      = "23514"
)

// detailKeyRe extracts the column list from constraint details such as
// `Key (email)=(bob@x.io) already exists.`
var detailKeyRe = regexp.MustCompile(`Key \(([^)]+)\)=`)

// classifyPgError maps a pgx driver error to the structured validation
// kind using the SQLSTATE code, never the message text. Errors outside
// constraint class 23 return nil and pass through unchanged.
func classifyPgError(err error) *adapter.ValidationError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case codeNotNull:
		return &adapter.ValidationError{Fields: map[string]string{pgErr.ColumnName: "must not be null"}}
	case codeUnique:
		return &adapter.ValidationError{Fields: map[string]string{fieldFromDetail(pgErr): "already exists"}}
	case codeForeignKey:
		return &adapter.ValidationError{Fields: map[string]string{fieldFromDetail(pgErr): "referenced record does not exist"}}
	case codeCheck:
		return &adapter.ValidationError{Fields: map[string]string{fieldFromConstraint(pgErr): "violates check constraint"}}
	default:
		return nil
	}
}

func fieldFromDetail(pgErr *pgconn.PgError) string {
	if m := detailKeyRe.FindStringSubmatch(pgErr.Detail); m != nil {
		return m[1]
	}
	return fieldFromConstraint(pgErr)
}

func fieldFromConstraint(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "record"
}
