package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/services"
	"github.com/tmahefa/facturier/internal/store"
)

func newInvoiceHandler(t *testing.T) (*InvoiceHandler, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	ledger := services.NewStockLedger(st)
	directory := services.NewClientDirectory(st)
	svc := services.NewInvoiceService(st, ledger, directory)
	return NewInvoiceHandler(svc), st
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestCreateInvoice(t *testing.T) {
	h, _ := newInvoiceHandler(t)

	body := `{
		"date": "2025-06-15",
		"client": {"name": "Jean Rakoto", "phone": "0340000000"},
		"items": [{"reference": "Tôle galva", "quantity": 4, "unitPrice": 25000}]
	}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Invoice
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Error("missing generated id")
	}
	if !strings.HasPrefix(created.Number, "FACT-") || !strings.HasSuffix(created.Number, "-001") {
		t.Errorf("number = %q", created.Number)
	}
	if created.Status != models.StatusDraft {
		t.Errorf("status = %q, want draft", created.Status)
	}
	if created.Total != 100000 {
		t.Errorf("total = %v, want 100000", created.Total)
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	h, st := newInvoiceHandler(t)

	body := `{"client": {"name": ""}, "items": []}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "validation_failed" {
		t.Errorf("error = %q", resp.Error)
	}
	if _, ok := resp.Details["client.name"]; !ok {
		t.Errorf("missing client.name violation: %v", resp.Details)
	}
	invoices, _ := st.LoadInvoices()
	if len(invoices) != 0 {
		t.Errorf("rejected invoice was persisted: %+v", invoices)
	}
}

func TestCreateInvoiceMalformedJSON(t *testing.T) {
	h, _ := newInvoiceHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_json") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetInvoice(t *testing.T) {
	h, _ := newInvoiceHandler(t)

	body := `{"date": "2025-06-15", "client": {"name": "Jean"}, "items": [{"reference": "x", "quantity": 1, "unitPrice": 500}]}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	var created models.Invoice
	decodeBody(t, rec, &created)

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/invoices/get?id="+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got models.Invoice
	decodeBody(t, rec, &got)
	if got.ID != created.ID || got.Client.Name != "Jean" {
		t.Errorf("got %+v", got)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/invoices/get?id=nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/invoices/get", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing id: status = %d", rec.Code)
	}
}

func TestConfirmInvoice(t *testing.T) {
	h, st := newInvoiceHandler(t)
	if err := st.SaveStock([]models.StockItem{{ID: "s1", Name: "Tôle", QuantityAvailable: 10, UnitPrice: 25000, PurchasePrice: 20000}}); err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	body := `{"date": "2025-06-15", "client": {"name": "Jean"}, "items": [{"stockReferenceId": "s1", "reference": "Tôle", "quantity": 4, "unitPrice": 25000}]}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	var created models.Invoice
	decodeBody(t, rec, &created)

	rec = httptest.NewRecorder()
	h.Confirm(rec, httptest.NewRequest(http.MethodPost, "/invoices/confirm?id="+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: status = %d, body %s", rec.Code, rec.Body.String())
	}
	stock, _ := st.LoadStock()
	if stock[0].QuantityAvailable != 6 {
		t.Errorf("quantity = %v, want 6", stock[0].QuantityAvailable)
	}

	// already confirmed
	rec = httptest.NewRecorder()
	h.Confirm(rec, httptest.NewRequest(http.MethodPost, "/invoices/confirm?id="+created.ID, nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("re-confirm: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Confirm(rec, httptest.NewRequest(http.MethodPost, "/invoices/confirm?id=nope", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("unknown id: status = %d", rec.Code)
	}
}

func TestDeleteInvoice(t *testing.T) {
	h, st := newInvoiceHandler(t)

	body := `{"date": "2025-06-15", "client": {"name": "Jean"}, "items": [{"reference": "x", "quantity": 1, "unitPrice": 500}]}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	var created models.Invoice
	decodeBody(t, rec, &created)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/invoices/delete?id="+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	invoices, _ := st.LoadInvoices()
	if len(invoices) != 0 {
		t.Errorf("invoice survived delete: %+v", invoices)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/invoices/delete?id="+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d", rec.Code)
	}
}

func TestListInvoicesEnvelope(t *testing.T) {
	h, _ := newInvoiceHandler(t)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/invoices", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []models.Invoice `json:"items"`
		Total int              `json:"total"`
	}
	decodeBody(t, rec, &resp)
	if resp.Total != 0 || resp.Items == nil {
		t.Errorf("empty list envelope: %s", rec.Body.String())
	}
}

func TestStatsEndpoint(t *testing.T) {
	h, _ := newInvoiceHandler(t)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats services.Stats
	decodeBody(t, rec, &stats)
	if stats.LastClient != "-" {
		t.Errorf("lastClient = %q, want sentinel", stats.LastClient)
	}
	if stats.TotalInvoices != 0 || stats.MonthTotal != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
