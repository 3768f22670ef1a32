package handlers

import (
	"net/http"

	"github.com/tmahefa/facturier/internal/httpx"
	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/services"
)

// InvoiceHandler exposes the invoice lifecycle to rendering collaborators.
type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if !decodeJSON(w, r, &inv) {
		return
	}
	created, err := h.Svc.Create(inv)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Get: GET /invoices/get?id=...
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	inv, found, err := h.Svc.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !found {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Update: POST /invoices/update?id=...
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var inv models.Invoice
	if !decodeJSON(w, r, &inv) {
		return
	}
	updated, err := h.Svc.Update(id, inv)
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

// Delete: POST /invoices/delete?id=...
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	deleted, err := h.Svc.Delete(id)
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

// Confirm: POST /invoices/confirm?id=... — draft invoices only.
func (h *InvoiceHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	confirmed, err := h.Svc.Confirm(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !confirmed {
		// unknown id or status other than draft
		httpx.JSONError(w, http.StatusConflict, "not_confirmable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

// NextNumber: GET /invoices/next-number
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.Svc.NextNumber()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"number": number})
}

// Stats: GET /stats
func (h *InvoiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
