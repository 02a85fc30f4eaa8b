package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/resource"
)

func usersMeta() *adapter.TableMetadata {
	return &adapter.TableMetadata{
		Schema:     "main",
		Name:       "users",
		PrimaryKey: "id",
		Properties: []core.Property{
			{Name: "id", Kind: core.KindNumber, PrimaryKey: true, Position: 1},
			{Name: "name", Kind: core.KindString, Editable: true, Position: 2},
			{Name: "team_id", Kind: core.KindReference, Editable: true, Nullable: true, Position: 3, ReferencedTable: "teams"},
			{Name: "full_name", Kind: core.KindVirtual, Position: 4},
			{Name: "created_at", Kind: core.KindDateTime, Editable: true, Position: 5},
		},
	}
}

func newTestRouter(t *testing.T, f *fakeAdapter) http.Handler {
	t.Helper()

	if f.tables == nil {
		f.tables = []string{"users"}
	}
	if f.metadata == nil {
		f.metadata = map[string]*adapter.TableMetadata{"users": usersMeta()}
	}

	cat, err := resource.Discover(context.Background(), f, adapter.Config{Database: "admin"}, nil, nil)
	require.NoError(t, err)

	r := chi.NewMux()
	SetupRoutes(r, cat, testLogger())
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestListResources(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodGet, "/api/resources", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	resources := body["resources"].([]any)
	require.Len(t, resources, 1)
	first := resources[0].(map[string]any)
	assert.Equal(t, "users", first["name"])
	assert.Equal(t, "admin", first["databaseName"])
	assert.Equal(t, "id", first["primaryKey"])
}

func TestDescribeResource(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodGet, "/api/resources/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	props := body["properties"].([]any)
	require.Len(t, props, 5)

	byName := make(map[string]map[string]any)
	for _, p := range props {
		prop := p.(map[string]any)
		byName[prop["name"].(string)] = prop
	}
	assert.Equal(t, "reference", byName["team_id"]["kind"])
	assert.Equal(t, "teams", byName["team_id"]["referencedTable"])
	assert.Equal(t, "virtual", byName["full_name"]["kind"])
	assert.Equal(t, true, byName["id"]["primaryKey"])
}

func TestListRecords(t *testing.T) {
	f := &fakeAdapter{
		selectRows: []core.Record{{"id": int64(1), "name": "bob"}},
		countValue: 41,
	}
	h := newTestRouter(t, f)

	rec := doRequest(t, h, http.MethodGet,
		"/api/resources/users/records?filter.name=bob&sortBy=name&direction=desc&page=2&perPage=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(41), body["total"])
	records := body["records"].([]any)
	require.Len(t, records, 1)

	assert.Equal(t, "name", f.lastOpts.SortBy)
	assert.True(t, f.lastOpts.Descending)
	assert.Equal(t, 10, f.lastOpts.Limit)
	assert.Equal(t, 10, f.lastOpts.Offset)

	preds := f.lastCond.Predicates()
	require.Len(t, preds, 1)
	assert.Equal(t, core.OpContains, preds[0].Op)
	assert.Equal(t, "%bob%", preds[0].Value)
}

func TestListRecordsDateRange(t *testing.T) {
	f := &fakeAdapter{}
	h := newTestRouter(t, f)

	rec := doRequest(t, h, http.MethodGet,
		"/api/resources/users/records?filter.created_at.from=2026-01-01&filter.created_at.to=2026-02-01", "")
	require.Equal(t, http.StatusOK, rec.Code)

	preds := f.lastCond.Predicates()
	require.Len(t, preds, 1)
	assert.Equal(t, core.OpRange, preds[0].Op)
	require.NotNil(t, preds[0].From)
	require.NotNil(t, preds[0].To)
}

func TestListRecordsEmptyResult(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodGet, "/api/resources/users/records", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"records":[]`)
}

func TestListRecordsUnsortableField(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodGet, "/api/resources/users/records?sortBy=full_name", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "full_name")
}

func TestListRecordsUnknownFilterField(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodGet, "/api/resources/users/records?filter.nope=x", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "nope")
}

func TestUnknownResource(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodGet, "/api/resources/ghosts/records", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ghosts")
}

func TestGetRecordNotFound(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodGet, "/api/resources/users/records/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRecord(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodPost, "/api/resources/users/records",
		`{"name":"bob","team_id":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	record := body["record"].(map[string]any)
	assert.Equal(t, "bob", record["name"])
	assert.NotContains(t, record, "team_id")
}

func TestCreateRecordValidationError(t *testing.T) {
	f := &fakeAdapter{insertErr: &adapter.ValidationError{
		Fields: map[string]string{"name": "must not be null"},
	}}
	h := newTestRouter(t, f)

	rec := doRequest(t, h, http.MethodPost, "/api/resources/users/records", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "must not be null", fields["name"])
}

func TestCreateRecordBadJSON(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodPost, "/api/resources/users/records", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRecord(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodPut, "/api/resources/users/records/7",
		`{"name":"robert"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	record := body["record"].(map[string]any)
	assert.Equal(t, "robert", record["name"])
}

func TestDeleteRecord(t *testing.T) {
	h := newTestRouter(t, &fakeAdapter{})

	rec := doRequest(t, h, http.MethodDelete, "/api/resources/users/records/7", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}
