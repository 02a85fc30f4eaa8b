package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/leapadmin/pkg/core"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP statuses. Validation failures
// carry their per-field messages; anything unrecognized is a 500 with
// the detail kept out of the response body.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  "validation failed",
			Fields: verr.Fields,
		})
		return
	}

	var unsortable *core.UnsortableFieldError
	if errors.As(err, &unsortable) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: unsortable.Error()})
		return
	}

	var unknown *core.UnknownPropertyError
	if errors.As(err, &unknown) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: unknown.Error()})
		return
	}

	if errors.Is(err, core.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "record not found"})
		return
	}

	logger.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}
