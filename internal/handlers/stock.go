package handlers

import (
	"net/http"

	"github.com/tmahefa/facturier/internal/httpx"
	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/services"
)

// StockHandler exposes the stock catalog and inline restocking.
type StockHandler struct {
	Ledger *services.StockLedger
}

func NewStockHandler(ledger *services.StockLedger) *StockHandler {
	return &StockHandler{Ledger: ledger}
}

// stockView decorates a catalog entry with its replenishment status for
// low-stock alerts.
type stockView struct {
	models.StockItem
	StockStatus string `json:"stockStatus"`
}

// List: GET /stock
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	stock, err := h.Ledger.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	items := make([]stockView, len(stock))
	for i, item := range stock {
		items[i] = stockView{StockItem: item, StockStatus: item.Status()}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// Create: POST /stock
func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item models.StockItem
	if !decodeJSON(w, r, &item) {
		return
	}
	created, err := h.Ledger.AddItem(item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update: POST /stock/update?id=...
func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var item models.StockItem
	if !decodeJSON(w, r, &item) {
		return
	}
	updated, err := h.Ledger.UpdateItem(id, item)
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

// Delete: POST /stock/delete?id=...
func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	deleted, err := h.Ledger.DeleteItem(id)
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

// AddQuantity: POST /stock/add-quantity with {"id": ..., "amount": ...}.
// A rejected amount or unknown id comes back as 400/404 so the caller can
// show inline feedback.
func (h *StockHandler) AddQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if req.Amount <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_quantity", nil)
		return
	}
	added, err := h.Ledger.AddQuantity(req.ID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !added {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "added"})
}
