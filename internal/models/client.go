package models

import "time"

// Client is a directory entry, created directly or derived from invoice
// activity. Invoices carry their own name/contact snapshot, so editing a
// client here never relinks past invoices.
type Client struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone,omitempty"`
	Address          string     `json:"address,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastPurchaseDate *time.Time `json:"lastPurchaseDate,omitempty"`
	TotalPurchases   int        `json:"totalPurchases"`
}
