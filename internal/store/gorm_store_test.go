package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/tmahefa/facturier/internal/models"
)

func openTestStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	st, err := Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return st
}

func TestInitSeedsDefaults(t *testing.T) {
	st := openTestStore(t)

	invoices, err := st.LoadInvoices()
	if err != nil {
		t.Fatalf("load invoices: %v", err)
	}
	if len(invoices) != 0 {
		t.Errorf("expected empty invoices, got %d", len(invoices))
	}
	settings, err := st.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	st := openTestStore(t)

	if err := st.SaveSettings(models.Settings{CompanyName: "Changed"}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := st.SaveClients([]models.Client{{ID: "c1", Name: "Jean"}}); err != nil {
		t.Fatalf("save clients: %v", err)
	}

	// a second Init must not clobber existing collections
	if err := st.Init(); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	settings, _ := st.LoadSettings()
	if settings.CompanyName != "Changed" {
		t.Errorf("re-init clobbered settings: %+v", settings)
	}
	clients, _ := st.LoadClients()
	if len(clients) != 1 {
		t.Errorf("re-init clobbered clients: %+v", clients)
	}
}

func TestSaveReplacesWholeCollection(t *testing.T) {
	st := openTestStore(t)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := []models.Invoice{{ID: "i1", Number: "FACT-2025-001", Status: models.StatusDraft, CreatedAt: now, UpdatedAt: now}}
	if err := st.SaveInvoices(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := []models.Invoice{{ID: "i2", Number: "FACT-2025-002", Status: models.StatusDraft, CreatedAt: now, UpdatedAt: now}}
	if err := st.SaveInvoices(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	invoices, err := st.LoadInvoices()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != "i2" {
		t.Errorf("save is whole-collection replace, got %+v", invoices)
	}
}

func TestStockRoundTrip(t *testing.T) {
	st := openTestStore(t)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	stock := []models.StockItem{{
		ID: "s1", Category: "toles", Name: "Tôle galva", PurchaseUnit: "feuille",
		PurchasePrice: 20000, UnitPrice: 25000, QuantityAvailable: 10, MinQuantity: 3,
		CreatedAt: now, LastUpdated: now,
	}}
	if err := st.SaveStock(stock); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := st.LoadStock()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 item, got %d", len(loaded))
	}
	if loaded[0].Name != "Tôle galva" || loaded[0].QuantityAvailable != 10 {
		t.Errorf("round trip mismatch: %+v", loaded[0])
	}
	if !loaded[0].CreatedAt.Equal(now) {
		t.Errorf("createdAt mismatch: %v", loaded[0].CreatedAt)
	}
}

func TestResetClearsAndReseeds(t *testing.T) {
	st := openTestStore(t)

	if err := st.SaveClients([]models.Client{{ID: "c1", Name: "Jean"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.SaveSettings(models.Settings{CompanyName: "Changed"}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := st.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	clients, _ := st.LoadClients()
	if len(clients) != 0 {
		t.Errorf("clients survived reset: %+v", clients)
	}
	settings, _ := st.LoadSettings()
	if settings != models.DefaultSettings() {
		t.Errorf("settings not re-seeded: %+v", settings)
	}
}

func TestDialectorSelection(t *testing.T) {
	tests := []struct {
		dsn          string
		wantPostgres bool
	}{
		{"postgres://u:p@localhost:5432/facturier", true},
		{"host=localhost user=u dbname=facturier", true},
		{"facturier.db", false},
		{":memory:", false},
	}
	for _, tt := range tests {
		d := Dialector(tt.dsn)
		isPostgres := d.Name() == "postgres"
		if isPostgres != tt.wantPostgres {
			t.Errorf("Dialector(%q).Name() = %q", tt.dsn, d.Name())
		}
	}
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`  "postgres://u@h/db"  `, "postgres://u@h/db"},
		{"host=h  user=u   dbname=d", "host=h user=u dbname=d sslmode=disable"},
		{"host=h user=u dbname=d sslmode=require", "host=h user=u dbname=d sslmode=require"},
		{"facturier.db", "facturier.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDSN(tt.in); got != tt.want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
