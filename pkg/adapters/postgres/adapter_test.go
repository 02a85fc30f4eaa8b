package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/dialect"
)

func TestSelfRegistration(t *testing.T) {
	assert.True(t, adapter.IsRegistered("postgres"), "postgres adapter should be auto-registered")

	d, ok := dialect.Get("postgres")
	require.True(t, ok)
	assert.Equal(t, "public", d.DefaultSchema)
	assert.Equal(t, "$2", d.FormatPlaceholder(2))
}

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      adapter.Config
		expected string
	}{
		{
			name:     "defaults",
			cfg:      adapter.Config{Database: "admin"},
			expected: "host=localhost port=5432 dbname=admin sslmode=disable",
		},
		{
			name: "full config",
			cfg: adapter.Config{
				Host:     "db.internal",
				Port:     5433,
				Database: "admin",
				Username: "app",
				Password: "secret",
				Schema:   "ops",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=db.internal port=5433 dbname=admin sslmode=require user=app password=secret search_path=ops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.cfg))
		})
	}
}

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantMsg   string
	}{
		{
			name:      "not null",
			err:       &pgconn.PgError{Code: "23502", ColumnName: "email"},
			wantField: "email",
			wantMsg:   "must not be null",
		},
		{
			name:      "unique from detail",
			err:       &pgconn.PgError{Code: "23505", Detail: "Key (email)=(bob@x.io) already exists."},
			wantField: "email",
			wantMsg:   "already exists",
		},
		{
			name:      "foreign key from detail",
			err:       &pgconn.PgError{Code: "23503", Detail: "Key (team_id)=(99) is not present in table \"teams\"."},
			wantField: "team_id",
			wantMsg:   "referenced record does not exist",
		},
		{
			name:      "check falls back to constraint name",
			err:       &pgconn.PgError{Code: "23514", ConstraintName: "users_age_check"},
			wantField: "users_age_check",
			wantMsg:   "violates check constraint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := classifyPgError(tt.err)
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantMsg, verr.Fields[tt.wantField])
		})
	}
}

func TestClassifyPgErrorIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, classifyPgError(errors.New("connection refused")))
	// Syntax error is not a constraint violation
	assert.Nil(t, classifyPgError(&pgconn.PgError{Code: "42601"}))
}
