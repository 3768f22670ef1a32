package services

import (
	"time"

	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/store"
)

// BackupService bundles and restores all four collections as a single
// document. Stock items cross this boundary in a legacy-compatible shape so
// backups from the previous generation of the app keep importing cleanly.
type BackupService struct {
	store store.Store
	now   func() time.Time
}

func NewBackupService(st store.Store) *BackupService {
	return &BackupService{store: st, now: time.Now}
}

// LegacyStockItem mirrors quantityAvailable into the older quantity field and
// purchaseUnit into unit. The canonical model carries single fields; this
// duplication exists only at the import/export boundary.
type LegacyStockItem struct {
	models.StockItem
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// Document is the export/import payload. A nil collection means "absent":
// imports leave absent collections untouched (partial import).
type Document struct {
	Invoices   []models.Invoice  `json:"invoices"`
	Clients    []models.Client   `json:"clients"`
	Stock      []LegacyStockItem `json:"stock"`
	Settings   *models.Settings  `json:"settings,omitempty"`
	ExportDate time.Time         `json:"exportDate"`
}

// Export bundles every collection plus the export timestamp.
func (b *BackupService) Export() (Document, error) {
	invoices, err := b.store.LoadInvoices()
	if err != nil {
		return Document{}, err
	}
	clients, err := b.store.LoadClients()
	if err != nil {
		return Document{}, err
	}
	stock, err := b.store.LoadStock()
	if err != nil {
		return Document{}, err
	}
	settings, err := b.store.LoadSettings()
	if err != nil {
		return Document{}, err
	}
	legacy := make([]LegacyStockItem, len(stock))
	for i, item := range stock {
		qty := item.QuantityAvailable
		legacy[i] = LegacyStockItem{StockItem: item, Quantity: &qty, Unit: item.PurchaseUnit}
	}
	return Document{
		Invoices:   invoices,
		Clients:    clients,
		Stock:      legacy,
		Settings:   &settings,
		ExportDate: b.now(),
	}, nil
}

// Import replaces the collections present in the document; absent ones are
// left untouched.
func (b *BackupService) Import(doc Document) error {
	if doc.Invoices != nil {
		if err := b.store.SaveInvoices(doc.Invoices); err != nil {
			return err
		}
	}
	if doc.Clients != nil {
		if err := b.store.SaveClients(doc.Clients); err != nil {
			return err
		}
	}
	if doc.Stock != nil {
		stock := make([]models.StockItem, len(doc.Stock))
		for i, legacy := range doc.Stock {
			stock[i] = normalizeLegacyStock(legacy)
		}
		if err := b.store.SaveStock(stock); err != nil {
			return err
		}
	}
	if doc.Settings != nil {
		if err := b.store.SaveSettings(*doc.Settings); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears all collections and re-seeds defaults.
func (b *BackupService) Reset() error {
	return b.store.Reset()
}

// normalizeLegacyStock collapses the old duplicated fields into the canonical
// model: unit backfills purchaseUnit, unitPrice backfills purchasePrice, and
// quantity backfills quantityAvailable.
func normalizeLegacyStock(legacy LegacyStockItem) models.StockItem {
	item := legacy.StockItem
	if item.PurchaseUnit == "" && legacy.Unit != "" {
		item.PurchaseUnit = legacy.Unit
	}
	if item.PurchasePrice == 0 && item.UnitPrice > 0 {
		item.PurchasePrice = item.UnitPrice
	}
	if item.QuantityAvailable == 0 && legacy.Quantity != nil {
		item.QuantityAvailable = *legacy.Quantity
	}
	return item
}
