package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapadmin/pkg/resource"
)

func testResource(t *testing.T) *resource.Resource {
	t.Helper()
	return resource.New(usersMeta(), "admin", &fakeAdapter{}, nil)
}

func TestParseQueryDefaults(t *testing.T) {
	q, err := parseQuery(url.Values{}, testResource(t))
	require.NoError(t, err)
	assert.Equal(t, defaultPerPage, q.Limit)
	assert.Zero(t, q.Offset)
	assert.Empty(t, q.SortBy)
	assert.False(t, q.Descending)
	assert.Empty(t, q.Filter)
}

func TestParseQueryPagination(t *testing.T) {
	values := url.Values{"page": {"3"}, "perPage": {"50"}}
	q, err := parseQuery(values, testResource(t))
	require.NoError(t, err)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, 100, q.Offset)
}

func TestParseQueryPerPageCapped(t *testing.T) {
	values := url.Values{"perPage": {"9999"}}
	q, err := parseQuery(values, testResource(t))
	require.NoError(t, err)
	assert.Equal(t, maxPerPage, q.Limit)
}

func TestParseQueryInvalidNumbers(t *testing.T) {
	for _, values := range []url.Values{
		{"page": {"zero"}},
		{"page": {"0"}},
		{"perPage": {"-1"}},
		{"perPage": {"lots"}},
	} {
		_, err := parseQuery(values, testResource(t))
		assert.Error(t, err, "values %v", values)
	}
}

func TestParseFilterMergesRangeBounds(t *testing.T) {
	values := url.Values{
		"filter.created_at.from": {"2026-01-01"},
		"filter.created_at.to":   {"2026-02-01"},
	}
	q, err := parseQuery(values, testResource(t))
	require.NoError(t, err)

	require.Len(t, q.Filter, 1)
	clause := q.Filter[0]
	assert.Equal(t, "created_at", clause.Property.Name)
	require.NotNil(t, clause.Range)
	assert.NotNil(t, clause.Range.From)
	assert.NotNil(t, clause.Range.To)
}

func TestParseFilterClauseOrderIsStable(t *testing.T) {
	values := url.Values{
		"filter.team_id": {"7"},
		"filter.name":    {"bob"},
		"filter.age":     {"30"},
	}

	// Map iteration order varies between runs, so repeat the parse and
	// require the same clause order every time.
	for range 20 {
		q, err := parseQuery(values, testResource(t))
		require.NoError(t, err)
		require.Len(t, q.Filter, 3)
		assert.Equal(t, "age", q.Filter[0].Property.Name)
		assert.Equal(t, "name", q.Filter[1].Property.Name)
		assert.Equal(t, "team_id", q.Filter[2].Property.Name)
	}
}

func TestParseFilterInvalidDate(t *testing.T) {
	values := url.Values{"filter.created_at.from": {"yesterday"}}
	_, err := parseQuery(values, testResource(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter.created_at.from")
}

func TestParseFilterUnknownProperty(t *testing.T) {
	values := url.Values{"filter.ghost": {"x"}}
	_, err := parseQuery(values, testResource(t))
	require.Error(t, err)
}

func TestParseTimeLayouts(t *testing.T) {
	for _, value := range []string{
		"2026-01-02",
		"2026-01-02T15:04:05",
		"2026-01-02T15:04:05Z",
	} {
		parsed, err := parseTime(value)
		require.NoError(t, err, value)
		require.NotNil(t, parsed)
	}

	parsed, err := parseTime("")
	require.NoError(t, err)
	assert.Nil(t, parsed)
}
