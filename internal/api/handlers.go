package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/resource"
)

// SetupRoutes mounts the resource endpoints on the router.
func SetupRoutes(router chi.Router, catalog *resource.Catalog, logger *slog.Logger) {
	h := &handler{catalog: catalog, logger: logger}

	router.Route("/api/resources", func(r chi.Router) {
		r.Get("/", h.listResources)
		r.Route("/{resource}", func(r chi.Router) {
			r.Use(h.resolveResource)
			r.Get("/", h.describeResource)
			r.Get("/records", h.listRecords)
			r.Post("/records", h.createRecord)
			r.Route("/records/{id}", func(r chi.Router) {
				r.Get("/", h.getRecord)
				r.Put("/", h.updateRecord)
				r.Delete("/", h.deleteRecord)
			})
		})
	})
}

type handler struct {
	catalog *resource.Catalog
	logger  *slog.Logger
}

// resolveResource looks up the {resource} path segment once for every
// nested route.
func (h *handler) resolveResource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "resource")
		res, ok := h.catalog.Get(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown resource " + name})
			return
		}
		ctx := contextWithResource(r.Context(), res)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type resourceSummary struct {
	Name         string `json:"name"`
	DatabaseName string `json:"databaseName"`
	DatabaseType string `json:"databaseType"`
	PrimaryKey   string `json:"primaryKey"`
}

type propertyView struct {
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	Editable        bool   `json:"editable"`
	Nullable        bool   `json:"nullable"`
	PrimaryKey      bool   `json:"primaryKey"`
	ReferencedTable string `json:"referencedTable,omitempty"`
}

func (h *handler) listResources(w http.ResponseWriter, r *http.Request) {
	list := h.catalog.List()
	out := make([]resourceSummary, 0, len(list))
	for _, res := range list {
		out = append(out, resourceSummary{
			Name:         res.Name(),
			DatabaseName: res.DatabaseName(),
			DatabaseType: res.DatabaseType(),
			PrimaryKey:   res.PrimaryKey(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"resources": out})
}

func (h *handler) describeResource(w http.ResponseWriter, r *http.Request) {
	res := resourceFromContext(r.Context())

	props := make([]propertyView, 0, len(res.Properties()))
	for _, p := range res.Properties() {
		props = append(props, propertyView{
			Name:            p.Name,
			Kind:            p.Kind.String(),
			Editable:        p.Editable,
			Nullable:        p.Nullable,
			PrimaryKey:      p.PrimaryKey,
			ReferencedTable: p.ReferencedTable,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":       res.Name(),
		"primaryKey": res.PrimaryKey(),
		"properties": props,
	})
}

func (h *handler) listRecords(w http.ResponseWriter, r *http.Request) {
	res := resourceFromContext(r.Context())

	q, err := parseQuery(r.URL.Query(), res)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	records, err := res.Find(r.Context(), q)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	total, err := res.Count(r.Context(), q.Filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if records == nil {
		records = []core.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"total":   total,
	})
}

func (h *handler) getRecord(w http.ResponseWriter, r *http.Request) {
	res := resourceFromContext(r.Context())

	record, err := res.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": record})
}

func (h *handler) createRecord(w http.ResponseWriter, r *http.Request) {
	res := resourceFromContext(r.Context())

	params, err := decodeParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	record, err := res.Create(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"record": record})
}

func (h *handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	res := resourceFromContext(r.Context())

	params, err := decodeParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	record, err := res.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": record})
}

func (h *handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	res := resourceFromContext(r.Context())

	if err := res.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeParams(r *http.Request) (core.RawParams, error) {
	var params core.RawParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		return nil, err
	}
	return params, nil
}
