package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/tmahefa/facturier/internal/models"
)

// document is one stored collection: the whole JSON value under its key.
type document struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (document) TableName() string { return "documents" }

// GormStore persists collections in a single documents table, sqlite by
// default or postgres depending on the DSN.
type GormStore struct {
	db *gorm.DB
}

// Open connects, migrates the documents table, and verifies connectivity.
func Open(dsn string) (*GormStore, error) {
	if NormalizeDSN(dsn) == "" {
		return nil, errors.New("empty DSN")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("automigrate documents: %w", err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Init seeds empty collections and default settings for keys that were never
// written. Idempotent: keys that exist are left untouched.
func (s *GormStore) Init() error {
	seeds := []struct {
		key   string
		value any
	}{
		{KeyInvoices, []models.Invoice{}},
		{KeyClients, []models.Client{}},
		{KeyStock, []models.StockItem{}},
		{KeySettings, models.DefaultSettings()},
	}
	for _, seed := range seeds {
		var count int64
		if err := s.db.Model(&document{}).Where("key = ?", seed.key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.put(seed.key, seed.value); err != nil {
			return err
		}
	}
	return nil
}

// Ping reports storage reachability for the health endpoint.
func (s *GormStore) Ping() error {
	return s.db.Exec("SELECT 1").Error
}

func (s *GormStore) LoadInvoices() ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := s.get(KeyInvoices, &invoices)
	return invoices, err
}

func (s *GormStore) SaveInvoices(invoices []models.Invoice) error {
	return s.put(KeyInvoices, invoices)
}

func (s *GormStore) LoadClients() ([]models.Client, error) {
	clients := []models.Client{}
	err := s.get(KeyClients, &clients)
	return clients, err
}

func (s *GormStore) SaveClients(clients []models.Client) error {
	return s.put(KeyClients, clients)
}

func (s *GormStore) LoadStock() ([]models.StockItem, error) {
	stock := []models.StockItem{}
	err := s.get(KeyStock, &stock)
	return stock, err
}

func (s *GormStore) SaveStock(stock []models.StockItem) error {
	return s.put(KeyStock, stock)
}

func (s *GormStore) LoadSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.get(KeySettings, &settings)
	return settings, err
}

func (s *GormStore) SaveSettings(settings models.Settings) error {
	return s.put(KeySettings, settings)
}

// Reset clears all four keys and re-seeds defaults.
func (s *GormStore) Reset() error {
	keys := []string{KeyInvoices, KeyClients, KeyStock, KeySettings}
	if err := s.db.Where("key IN ?", keys).Delete(&document{}).Error; err != nil {
		return err
	}
	return s.Init()
}

// get unmarshals the stored value into out; a missing key leaves out at its
// zero/empty value.
func (s *GormStore) get(key string, out any) error {
	var doc document
	err := s.db.First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(doc.Value), out)
}

// put atomically replaces the whole stored collection.
func (s *GormStore) put(key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	doc := document{Key: key, Value: string(body), UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
}
