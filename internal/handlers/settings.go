package handlers

import (
	"net/http"

	"github.com/tmahefa/facturier/internal/httpx"
	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/store"
)

// SettingsHandler reads and replaces the singleton company record.
type SettingsHandler struct {
	Store store.Store
}

func NewSettingsHandler(st store.Store) *SettingsHandler {
	return &SettingsHandler{Store: st}
}

// Get: GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.LoadSettings()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

// Save: PUT /settings
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if !decodeJSON(w, r, &settings) {
		return
	}
	if err := h.Store.SaveSettings(settings); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}
