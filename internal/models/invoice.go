package models

import (
	"strconv"
	"time"
)

// Invoice status values. Confirmation is a side-effecting status, not a
// one-way gate: any status may be edited into any other.
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Invoice document types.
const (
	TypeStandard   = "standard"
	TypeProforma   = "proforma"
	TypeCreditNote = "credit_note"
)

// Default units for detail lines (sheet-material measurements).
const (
	DefaultQuantityUnit = "feuilles"
	DefaultLengthUnit   = "m"
)

// DetailLine is one measurement row inside a line item, e.g. a count of
// sheets at a given length. Total and Display are derived via Compute.
type DetailLine struct {
	Quantity     float64 `json:"quantity"`
	QuantityUnit string  `json:"quantityUnit"`
	Length       float64 `json:"length"`
	LengthUnit   string  `json:"lengthUnit"`
	Total        float64 `json:"total"`
	Display      string  `json:"display"`
}

// Compute derives Total and the human-readable Display string.
// With a length: "10feuilles × 2m = 20m". Without: just "10feuilles".
func (d *DetailLine) Compute() {
	qUnit := d.QuantityUnit
	if qUnit == "" {
		qUnit = DefaultQuantityUnit
	}
	lUnit := d.LengthUnit
	if lUnit == "" {
		lUnit = DefaultLengthUnit
	}
	if d.Length > 0 {
		d.Total = d.Quantity * d.Length
		d.Display = formatQty(d.Quantity) + qUnit + " × " + formatQty(d.Length) + lUnit +
			" = " + formatQty(d.Total) + lUnit
		return
	}
	d.Total = d.Quantity
	d.Display = formatQty(d.Quantity) + qUnit
}

// LineItem is one row of an invoice. Total is always derived from
// Quantity*UnitPrice, never stored independently. StockReferenceID optionally
// links to a catalog StockItem for automatic quantity deduction; free-text
// items leave it empty.
type LineItem struct {
	ID               string       `json:"id"`
	StockReferenceID string       `json:"stockReferenceId,omitempty"`
	Reference        string       `json:"reference"`
	PurchasePrice    float64      `json:"purchasePrice,omitempty"`
	Description      string       `json:"description"`
	DetailLines      []DetailLine `json:"detailLines,omitempty"`
	Quantity         float64      `json:"quantity"`
	Unit             string       `json:"unit"`
	UnitPrice        float64      `json:"unitPrice"`
	Total            float64      `json:"total"`
	PurchaseCost     float64      `json:"purchaseCost,omitempty"`
	Margin           float64      `json:"margin,omitempty"`
	MarginPercent    float64      `json:"marginPercent,omitempty"`
}

// ComputeTotal recomputes the derived amount fields: the sale total, and the
// margin figures when a purchase price is known.
func (li *LineItem) ComputeTotal() {
	for i := range li.DetailLines {
		li.DetailLines[i].Compute()
	}
	li.Total = li.Quantity * li.UnitPrice
	if li.PurchasePrice > 0 {
		li.PurchaseCost = li.Quantity * li.PurchasePrice
		li.Margin = li.Total - li.PurchaseCost
		li.MarginPercent = li.Margin / li.PurchaseCost * 100
	}
}

// ClientSnapshot is the name/contact copy stored on an invoice. It is not a
// foreign key into the client directory.
type ClientSnapshot struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Invoice owns its line items and client snapshot by value.
type Invoice struct {
	ID          string         `json:"id"`
	Number      string         `json:"number"`
	Date        string         `json:"date"` // YYYY-MM-DD, as entered
	Status      string         `json:"status"`
	Type        string         `json:"type"`
	Client      ClientSnapshot `json:"client"`
	Items       []LineItem     `json:"items"`
	Notes       string         `json:"notes,omitempty"`
	Total       float64        `json:"total"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	ConfirmedAt *time.Time     `json:"confirmedAt,omitempty"`
}

// ComputeTotals recomputes every line item and the invoice total.
func (inv *Invoice) ComputeTotals() {
	total := 0.0
	for i := range inv.Items {
		inv.Items[i].ComputeTotal()
		total += inv.Items[i].Total
	}
	inv.Total = total
}

// ParseDate parses the invoice date field. Invoices with an unparseable date
// are excluded from year/month aggregations rather than failing them.
func (inv *Invoice) ParseDate() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", inv.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
