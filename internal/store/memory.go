package store

import (
	"slices"
	"sync"

	"github.com/tmahefa/facturier/internal/models"
)

// MemStore is an in-memory Store used by tests and demo mode. The mutex only
// guards the fake itself; the system's single-writer model is unchanged.
type MemStore struct {
	mu       sync.RWMutex
	invoices []models.Invoice
	clients  []models.Client
	stock    []models.StockItem
	settings models.Settings
}

// NewMemStore returns a store pre-seeded like GormStore.Init.
func NewMemStore() *MemStore {
	return &MemStore{
		invoices: []models.Invoice{},
		clients:  []models.Client{},
		stock:    []models.StockItem{},
		settings: models.DefaultSettings(),
	}
}

func (m *MemStore) LoadInvoices() ([]models.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.invoices), nil
}

func (m *MemStore) SaveInvoices(invoices []models.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = slices.Clone(invoices)
	return nil
}

func (m *MemStore) LoadClients() ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.clients), nil
}

func (m *MemStore) SaveClients(clients []models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients = slices.Clone(clients)
	return nil
}

func (m *MemStore) LoadStock() ([]models.StockItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.stock), nil
}

func (m *MemStore) SaveStock(stock []models.StockItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock = slices.Clone(stock)
	return nil
}

func (m *MemStore) LoadSettings() (models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, nil
}

func (m *MemStore) SaveSettings(settings models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
	return nil
}

func (m *MemStore) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices = []models.Invoice{}
	m.clients = []models.Client{}
	m.stock = []models.StockItem{}
	m.settings = models.DefaultSettings()
	return nil
}
