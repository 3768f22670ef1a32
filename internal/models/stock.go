package models

import "time"

// Stock status values as reported by the stock list endpoint.
const (
	StockOK  = "ok"
	StockLow = "low"
	StockOut = "out"
)

// StockItem is a catalog entry whose available quantity tracks confirmed
// invoice consumption. QuantityAvailable is clamped at zero on decrement and
// never goes negative.
type StockItem struct {
	ID                string    `json:"id"`
	Category          string    `json:"category"`
	Name              string    `json:"name"`
	Reference         string    `json:"reference,omitempty"`
	PurchasePrice     float64   `json:"purchasePrice"`
	PurchaseUnit      string    `json:"purchaseUnit"`
	UnitPrice         float64   `json:"unitPrice"`
	QuantityAvailable float64   `json:"quantityAvailable"`
	MinQuantity       float64   `json:"minQuantity"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// Status reports the replenishment state used for low-stock alerts.
func (s *StockItem) Status() string {
	if s.QuantityAvailable == 0 {
		return StockOut
	}
	if s.QuantityAvailable <= s.MinQuantity {
		return StockLow
	}
	return StockOK
}
