package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tmahefa/facturier/internal/httpx"
	"github.com/tmahefa/facturier/internal/services"
)

// decodeJSON parses the request body into dst, answering 400 itself on
// malformed input. Returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

// requireID reads the id query parameter, answering 400 when missing.
func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return "", false
	}
	return id, true
}

// writeServiceError maps service failures: validation rejections become 400
// with the field map, anything else is a storage fault.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "storage_failure", nil)
}
