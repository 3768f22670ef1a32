package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmahefa/facturier/internal/models"
	"github.com/tmahefa/facturier/internal/store"
	"github.com/tmahefa/facturier/internal/validation"
)

// ClientDirectory keeps one client record per distinct case-insensitive name,
// updated from invoice activity.
type ClientDirectory struct {
	store store.Store
	now   func() time.Time
	newID func() string
}

func NewClientDirectory(st store.Store) *ClientDirectory {
	return &ClientDirectory{store: st, now: time.Now, newID: uuid.NewString}
}

// UpsertFromInvoiceClient records a purchase for the snapshot's client.
// No-op for an empty name. Matching is case-insensitive on name; on a match
// the snapshot's phone/address win even when blank (last write wins), the
// purchase counter increments, and id/createdAt are preserved. Otherwise a
// new client starts at totalPurchases 1.
func (d *ClientDirectory) UpsertFromInvoiceClient(snapshot models.ClientSnapshot) error {
	if strings.TrimSpace(snapshot.Name) == "" {
		return nil
	}
	clients, err := d.store.LoadClients()
	if err != nil {
		return err
	}
	now := d.now()
	for i := range clients {
		if !strings.EqualFold(clients[i].Name, snapshot.Name) {
			continue
		}
		clients[i] = models.Client{
			ID:               clients[i].ID,
			Name:             snapshot.Name,
			Phone:            snapshot.Phone,
			Address:          snapshot.Address,
			CreatedAt:        clients[i].CreatedAt,
			LastPurchaseDate: &now,
			TotalPurchases:   clients[i].TotalPurchases + 1,
		}
		return d.store.SaveClients(clients)
	}
	clients = append(clients, models.Client{
		ID:               d.newID(),
		Name:             snapshot.Name,
		Phone:            snapshot.Phone,
		Address:          snapshot.Address,
		CreatedAt:        now,
		LastPurchaseDate: &now,
		TotalPurchases:   1,
	})
	return d.store.SaveClients(clients)
}

// Add creates a client directly. Direct creation starts the purchase counter
// at zero and does not enforce name uniqueness; only invoice upserts do.
func (d *ClientDirectory) Add(client models.Client) (models.Client, error) {
	if err := validateClient(&client); err != nil {
		return models.Client{}, err
	}
	clients, err := d.store.LoadClients()
	if err != nil {
		return models.Client{}, err
	}
	client.ID = d.newID()
	client.CreatedAt = d.now()
	client.TotalPurchases = 0
	client.LastPurchaseDate = nil
	clients = append(clients, client)
	if err := d.store.SaveClients(clients); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// Update replaces a client record, preserving id, createdAt, and the
// purchase counter. Returns false when the id is unknown.
func (d *ClientDirectory) Update(id string, client models.Client) (bool, error) {
	if err := validateClient(&client); err != nil {
		return false, err
	}
	clients, err := d.store.LoadClients()
	if err != nil {
		return false, err
	}
	for i := range clients {
		if clients[i].ID != id {
			continue
		}
		client.ID = id
		client.CreatedAt = clients[i].CreatedAt
		client.TotalPurchases = clients[i].TotalPurchases
		client.LastPurchaseDate = clients[i].LastPurchaseDate
		clients[i] = client
		if err := d.store.SaveClients(clients); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes a client. Returns false when the id is unknown. Past
// invoices keep their snapshot and are unaffected.
func (d *ClientDirectory) Delete(id string) (bool, error) {
	clients, err := d.store.LoadClients()
	if err != nil {
		return false, err
	}
	kept := clients[:0:0]
	for _, c := range clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(clients) {
		return false, nil
	}
	if err := d.store.SaveClients(kept); err != nil {
		return false, err
	}
	return true, nil
}

// List returns clients as stored; callers sort as needed.
func (d *ClientDirectory) List() ([]models.Client, error) {
	return d.store.LoadClients()
}

func validateClient(client *models.Client) error {
	v := validation.Violations{}
	validation.Required("name", client.Name, v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}
