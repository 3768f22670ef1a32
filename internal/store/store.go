// Package store provides whole-collection persistence for the four record
// collections. Each collection is stored as a single JSON value under a
// stable key, so consumers read and replace collections wholesale; there is
// no partial update at this layer.
package store

import "github.com/tmahefa/facturier/internal/models"

// Stable collection keys. The _v2 suffix is part of the persisted layout and
// must not change without an alias migration.
const (
	KeyInvoices = "invoices_v2"
	KeyClients  = "clients_v2"
	KeyStock    = "stock_v2"
	KeySettings = "settings_v2"
)

// Store is the capability injected into every component. Load on a collection
// that was never written returns an empty value, not an error.
type Store interface {
	LoadInvoices() ([]models.Invoice, error)
	SaveInvoices(invoices []models.Invoice) error
	LoadClients() ([]models.Client, error)
	SaveClients(clients []models.Client) error
	LoadStock() ([]models.StockItem, error)
	SaveStock(stock []models.StockItem) error
	LoadSettings() (models.Settings, error)
	SaveSettings(settings models.Settings) error
	// Reset clears all four keys and re-seeds defaults.
	Reset() error
}
