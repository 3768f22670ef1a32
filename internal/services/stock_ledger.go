package services

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/store"
	"github.com/tmahefa/facturier/internal/validation"
)

// StockLedger maintains quantityAvailable consistency under invoice status
// transitions, and owns the stock catalog CRUD.
type StockLedger struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

func NewStockLedger(st store.Store) *StockLedger {
	return &StockLedger{store: st, now: time.Now, newID: uuid.NewString}
}

// ApplyConsumption deducts each stock-referencing line item's quantity from
// its stock item, clamped at zero. Free-text items (no stock reference) and
// unknown references are ignored. One batch write after processing all items.
func (l *StockLedger) ApplyConsumption(items []models.LineItem) error {
	return l.adjust(items, func(available, qty float64) float64 {
		return math.Max(0, available-qty)
	})
}

// ReverseConsumption adds quantities back, uncapped. Restoration after a
// clamped deduction will not perfectly invert: the amount lost at the zero
// clamp is gone (clamp-loss).
func (l *StockLedger) ReverseConsumption(items []models.LineItem) error {
	return l.adjust(items, func(available, qty float64) float64 {
		return available + qty
	})
}

func (l *StockLedger) adjust(items []models.LineItem, apply func(available, qty float64) float64) error {
	stock, err := l.store.LoadStock()
	if err != nil {
		return err
	}
	touched := false
	for _, item := range items {
		if item.StockReferenceID == "" {
			continue
		}
		for i := range stock {
			if stock[i].ID != item.StockReferenceID {
				continue
			}
			stock[i].QuantityAvailable = apply(stock[i].QuantityAvailable, item.Quantity)
			stock[i].LastUpdated = l.now()
			touched = true
			break
		}
	}
	if !touched {
		return nil
	}
	return l.store.SaveStock(stock)
}

// AddQuantity increments an item's available quantity for inline restocking.
// Returns false (no error) for a non-positive or non-numeric amount and for
// an unknown id, so callers can show inline feedback.
func (l *StockLedger) AddQuantity(id string, amount float64) (bool, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return false, nil
	}
	stock, err := l.store.LoadStock()
	if err != nil {
		return false, err
	}
	for i := range stock {
		if stock[i].ID != id {
			continue
		}
		stock[i].QuantityAvailable += amount
		stock[i].LastUpdated = l.now()
		if err := l.store.SaveStock(stock); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// AddItem creates a catalog entry. Name is required; quantities must not be
// negative.
func (l *StockLedger) AddItem(item models.StockItem) (models.StockItem, error) {
	if err := validateStockItem(&item); err != nil {
		return models.StockItem{}, err
	}
	stock, err := l.store.LoadStock()
	if err != nil {
		return models.StockItem{}, err
	}
	now := l.now()
	item.ID = l.newID()
	item.CreatedAt = now
	item.LastUpdated = now
	if item.PurchaseUnit == "" {
		item.PurchaseUnit = "pièce"
	}
	if item.PurchasePrice == 0 && item.UnitPrice > 0 {
		item.PurchasePrice = item.UnitPrice
	}
	stock = append(stock, item)
	if err := l.store.SaveStock(stock); err != nil {
		return models.StockItem{}, err
	}
	return item, nil
}

// UpdateItem replaces a catalog entry, preserving id and createdAt. Returns
// false when the id is unknown.
func (l *StockLedger) UpdateItem(id string, item models.StockItem) (bool, error) {
	if err := validateStockItem(&item); err != nil {
		return false, err
	}
	stock, err := l.store.LoadStock()
	if err != nil {
		return false, err
	}
	for i := range stock {
		if stock[i].ID != id {
			continue
		}
		item.ID = id
		item.CreatedAt = stock[i].CreatedAt
		item.LastUpdated = l.now()
		stock[i] = item
		if err := l.store.SaveStock(stock); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// DeleteItem removes a catalog entry. Returns false when the id is unknown.
func (l *StockLedger) DeleteItem(id string) (bool, error) {
	stock, err := l.store.LoadStock()
	if err != nil {
		return false, err
	}
	kept := stock[:0:0]
	for _, item := range stock {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(stock) {
		return false, nil
	}
	if err := l.store.SaveStock(kept); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the catalog as stored; callers sort as needed.
func (l *StockLedger) List() ([]models.StockItem, error) {
	return l.store.LoadStock()
}

func validateStockItem(item *models.StockItem) error {
	v := validation.Violations{}
	validation.Required("name", item.Name, v)
	validation.NonNegativeFloat("purchasePrice", item.PurchasePrice, v)
	validation.NonNegativeFloat("unitPrice", item.UnitPrice, v)
	validation.NonNegativeFloat("quantityAvailable", item.QuantityAvailable, v)
	validation.NonNegativeFloat("minQuantity", item.MinQuantity, v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}
