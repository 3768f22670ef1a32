package handlers

import (
	"net/http"

	"github.com/tmahefa/facturier/internal/httpx"
	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/services"
)

// ClientHandler exposes the client directory.
type ClientHandler struct {
	Dir *services.ClientDirectory
}

func NewClientHandler(dir *services.ClientDirectory) *ClientHandler {
	return &ClientHandler{Dir: dir}
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Dir.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if !decodeJSON(w, r, &client) {
		return
	}
	created, err := h.Dir.Add(client)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update: POST /clients/update?id=...
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var client models.Client
	if !decodeJSON(w, r, &client) {
		return
	}
	updated, err := h.Dir.Update(id, client)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !updated {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /clients/delete?id=...
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	deleted, err := h.Dir.Delete(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
