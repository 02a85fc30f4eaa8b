package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapadmin/pkg/core"
)

func TestKindOfSQLType(t *testing.T) {
	tests := []struct {
		sqlType  string
		expected core.Kind
	}{
		{"VARCHAR", core.KindString},
		{"character varying", core.KindString},
		{"text", core.KindString},
		{"uuid", core.KindString},
		{"BOOLEAN", core.KindBoolean},
		{"integer", core.KindNumber},
		{"BIGINT", core.KindNumber},
		{"smallint", core.KindNumber},
		{"numeric", core.KindFloat},
		{"DOUBLE", core.KindFloat},
		{"real", core.KindFloat},
		{"date", core.KindDate},
		{"timestamp without time zone", core.KindDateTime},
		{"TIMESTAMP WITH TIME ZONE", core.KindDateTime},
		{"interval", core.KindMixed},
		{"point", core.KindMixed},
		{"jsonb", core.KindMixed},
		{"bytea", core.KindMixed},
	}

	for _, tt := range tests {
		t.Run(tt.sqlType, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOfSQLType(tt.sqlType))
		})
	}
}

func TestBuildPropertyPlainColumn(t *testing.T) {
	prop := buildProperty(
		columnInfo{name: "name", dataType: "varchar", nullable: true, position: 2},
		nil, nil)

	assert.Equal(t, core.KindString, prop.Kind)
	assert.True(t, prop.Editable)
	assert.True(t, prop.Nullable)
	assert.False(t, prop.PrimaryKey)
}

func TestBuildPropertySerialPrimaryKey(t *testing.T) {
	prop := buildProperty(
		columnInfo{name: "id", dataType: "integer", position: 1, hasDefault: true},
		map[string]bool{"id": true}, nil)

	assert.True(t, prop.PrimaryKey)
	assert.False(t, prop.Editable, "defaulted primary keys are server-managed")
}

func TestBuildPropertyIdentityColumn(t *testing.T) {
	prop := buildProperty(
		columnInfo{name: "id", dataType: "bigint", position: 1, identity: true},
		nil, nil)

	assert.False(t, prop.Editable)
	assert.Equal(t, core.KindNumber, prop.Kind)
}

func TestBuildPropertyGeneratedColumn(t *testing.T) {
	prop := buildProperty(
		columnInfo{name: "full_name", dataType: "varchar", position: 4, generated: true},
		nil, nil)

	assert.Equal(t, core.KindVirtual, prop.Kind)
	assert.False(t, prop.Editable)
	assert.False(t, prop.Sortable())
}

func TestBuildPropertyForeignKey(t *testing.T) {
	prop := buildProperty(
		columnInfo{name: "team_id", dataType: "integer", nullable: true, position: 3},
		nil, map[string]string{"team_id": "teams"})

	assert.Equal(t, core.KindReference, prop.Kind)
	assert.Equal(t, "teams", prop.ReferencedTable)
	assert.True(t, prop.Editable)
}
