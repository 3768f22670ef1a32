package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/store"
	"github.com/tmahefa/facturier/internal/validation"
)

// StockEffect tags what a status transition does to inventory.
type StockEffect int

const (
	EffectNone StockEffect = iota
	EffectApply
	EffectReverse
)

// stockEffect maps an invoice status transition to its inventory effect.
// Only crossing the confirmed boundary moves stock: editing line items while
// the status stays confirmed does not re-adjust the delta.
func stockEffect(oldStatus, newStatus string) StockEffect {
	switch {
	case newStatus == models.StatusConfirmed && oldStatus != models.StatusConfirmed:
		return EffectApply
	case oldStatus == models.StatusConfirmed && newStatus != models.StatusConfirmed:
		return EffectReverse
	default:
		return EffectNone
	}
}

// InvoiceService is the invoice state machine. It is the only component that
// triggers StockLedger and ClientDirectory side effects, and it applies them
// before persisting the invoice collection.
type InvoiceService struct {
	store   store.Store
	ledger  *StockLedger
	clients *ClientDirectory
	now     func() time.Time
	newID   func() string
}

func NewInvoiceService(st store.Store, ledger *StockLedger, clients *ClientDirectory) *InvoiceService {
	return &InvoiceService{
		store:   st,
		ledger:  ledger,
		clients: clients,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Stats are the dashboard aggregates, evaluated at call time.
type Stats struct {
	MonthTotal    float64 `json:"monthTotal"`
	TotalInvoices int     `json:"totalInvoices"`
	LastClient    string  `json:"lastClient"`
}

// Create stores a new invoice, defaulting status draft and type standard.
// An invoice created already confirmed consumes stock immediately. The client
// snapshot is always upserted into the directory.
func (s *InvoiceService) Create(inv models.Invoice) (models.Invoice, error) {
	if err := validateInvoice(&inv); err != nil {
		return models.Invoice{}, err
	}
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return models.Invoice{}, err
	}
	now := s.now()
	inv.ID = s.newID()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = models.StatusDraft
	}
	if inv.Type == "" {
		inv.Type = models.TypeStandard
	}
	if inv.Date == "" {
		inv.Date = now.Format("2006-01-02")
	}
	if inv.Number == "" {
		inv.Number = nextNumber(invoices, now.Year())
	}
	inv.ComputeTotals()
	if inv.Status == models.StatusConfirmed {
		if err := s.ledger.ApplyConsumption(inv.Items); err != nil {
			return models.Invoice{}, err
		}
	}
	if err := s.clients.UpsertFromInvoiceClient(inv.Client); err != nil {
		return models.Invoice{}, err
	}
	invoices = append(invoices, inv)
	if err := s.store.SaveInvoices(invoices); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// Update replaces an invoice, preserving createdAt and the prior status/type
// when the update omits them. Crossing the confirmed boundary applies or
// reverses stock consumption; a reversal uses the old invoice's line items,
// since those are what was actually deducted. Returns false when the id is
// unknown.
func (s *InvoiceService) Update(id string, inv models.Invoice) (bool, error) {
	if err := validateInvoice(&inv); err != nil {
		return false, err
	}
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return false, err
	}
	for i := range invoices {
		if invoices[i].ID != id {
			continue
		}
		old := invoices[i]
		inv.ID = id
		inv.CreatedAt = old.CreatedAt
		inv.UpdatedAt = s.now()
		if inv.Status == "" {
			inv.Status = old.Status
			if inv.Status == "" {
				inv.Status = models.StatusDraft
			}
		}
		if inv.Type == "" {
			inv.Type = old.Type
			if inv.Type == "" {
				inv.Type = models.TypeStandard
			}
		}
		if inv.ConfirmedAt == nil {
			inv.ConfirmedAt = old.ConfirmedAt
		}
		inv.ComputeTotals()
		switch stockEffect(old.Status, inv.Status) {
		case EffectApply:
			if err := s.ledger.ApplyConsumption(inv.Items); err != nil {
				return false, err
			}
		case EffectReverse:
			if err := s.ledger.ReverseConsumption(old.Items); err != nil {
				return false, err
			}
		}
		if err := s.clients.UpsertFromInvoiceClient(inv.Client); err != nil {
			return false, err
		}
		invoices[i] = inv
		if err := s.store.SaveInvoices(invoices); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes an invoice. It does not reverse stock consumption even for
// a confirmed invoice; deletion bypasses the ledger. Returns false when the
// id is unknown.
func (s *InvoiceService) Delete(id string) (bool, error) {
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return false, err
	}
	kept := invoices[:0:0]
	for _, inv := range invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	if len(kept) == len(invoices) {
		return false, nil
	}
	if err := s.store.SaveInvoices(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Confirm is the dedicated draft->confirmed shortcut. It stamps confirmedAt
// and applies consumption. Returns false for any current status other than
// draft.
func (s *InvoiceService) Confirm(id string) (bool, error) {
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return false, err
	}
	for i := range invoices {
		if invoices[i].ID != id {
			continue
		}
		if invoices[i].Status != models.StatusDraft {
			return false, nil
		}
		now := s.now()
		invoices[i].Status = models.StatusConfirmed
		invoices[i].ConfirmedAt = &now
		invoices[i].UpdatedAt = now
		if err := s.ledger.ApplyConsumption(invoices[i].Items); err != nil {
			return false, err
		}
		if err := s.store.SaveInvoices(invoices); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// GetByID returns the invoice and whether it exists.
func (s *InvoiceService) GetByID(id string) (models.Invoice, bool, error) {
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return models.Invoice{}, false, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, true, nil
		}
	}
	return models.Invoice{}, false, nil
}

// List returns invoices as stored, unordered; callers sort as needed.
func (s *InvoiceService) List() ([]models.Invoice, error) {
	return s.store.LoadInvoices()
}

// NextNumber derives FACT-{year}-{seq}: seq is 1 plus the count of invoices
// dated in the current calendar year, zero-padded to three digits. The number
// is not reserved; it is only fixed once the invoice is saved.
func (s *InvoiceService) NextNumber() (string, error) {
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return "", err
	}
	return nextNumber(invoices, s.now().Year()), nil
}

func nextNumber(invoices []models.Invoice, year int) string {
	count := 0
	for _, inv := range invoices {
		if d, ok := inv.ParseDate(); ok && d.Year() == year {
			count++
		}
	}
	return fmt.Sprintf("FACT-%d-%03d", year, count+1)
}

// Stats aggregates the current month's revenue, the total invoice count, and
// the client name of the most recently created invoice ("-" when none).
func (s *InvoiceService) Stats() (Stats, error) {
	invoices, err := s.store.LoadInvoices()
	if err != nil {
		return Stats{}, err
	}
	now := s.now()
	stats := Stats{TotalInvoices: len(invoices), LastClient: "-"}
	var latest time.Time
	for _, inv := range invoices {
		if d, ok := inv.ParseDate(); ok && d.Year() == now.Year() && d.Month() == now.Month() {
			stats.MonthTotal += inv.Total
		}
		if inv.CreatedAt.After(latest) {
			latest = inv.CreatedAt
			stats.LastClient = inv.Client.Name
		}
	}
	return stats, nil
}

func validateInvoice(inv *models.Invoice) error {
	v := validation.Violations{}
	validation.Required("client.name", inv.Client.Name, v)
	for i := range inv.Items {
		item := &inv.Items[i]
		prefix := fmt.Sprintf("items[%d].", i)
		if item.StockReferenceID == "" && item.Reference == "" && item.Description == "" {
			v[prefix+"reference"] = "required"
		}
		validation.PositiveFloat(prefix+"quantity", item.Quantity, v)
		validation.NonNegativeFloat(prefix+"unitPrice", item.UnitPrice, v)
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}
