package handlers

import (
	"net/http"

	"github.com/tmahefa/facturier/internal/httpx"
	"github.com/tmahefa/facturier/internal/services"
)

// BackupHandler exposes export/import/reset of the whole data set.
type BackupHandler struct {
	Backup *services.BackupService
}

func NewBackupHandler(backup *services.BackupService) *BackupHandler {
	return &BackupHandler{Backup: backup}
}

// Export: GET /backup/export
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Backup.Export()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="facturier-backup.json"`)
	httpx.JSON(w, http.StatusOK, doc)
}

// Import: POST /backup/import — collections absent from the document are
// left untouched.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var doc services.Document
	if !decodeJSON(w, r, &doc) {
		return
	}
	if err := h.Backup.Import(doc); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

// Reset: POST /backup/reset — clears everything and re-seeds defaults.
func (h *BackupHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Backup.Reset(); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
