// Package library manages saved user creations and the marketplace catalog.
// Both collections live in the blob store as single JSON documents and are
// cached in memory; every mutation rewrites the whole blob.
package library

import (
	"fmt"
	"sync"
	"time"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/shared/id"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/store"
)

const (
	creationsKey   = "userCreations"
	marketplaceKey = "marketplaceItems"
)

// Creation is one saved app in the user's library.
type Creation struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	Spec        *schema.Spec `json:"spec"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Creations persists the user's saved apps.
type Creations struct {
	mu    sync.RWMutex
	store store.Store
	items []Creation
}

// NewCreations loads the collection from the store. A missing or corrupt
// blob yields an empty library.
func NewCreations(st store.Store) (*Creations, error) {
	c := &Creations{store: st, items: []Creation{}}
	if _, err := store.LoadJSON(st, creationsKey, &c.items); err != nil {
		return nil, err
	}
	if c.items == nil {
		c.items = []Creation{}
	}
	return c, nil
}

// List returns all creations, newest first.
func (c *Creations) List() []Creation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Creation, len(c.items))
	copy(out, c.items)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Get returns the creation with the given id.
func (c *Creations) Get(creationID string) (Creation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.ID == creationID {
			return item, true
		}
	}
	return Creation{}, false
}

// Save upserts a creation and persists the collection. A blank id gets a
// generated one.
func (c *Creations) Save(creation *Creation) error {
	if creation.Spec == nil {
		return fmt.Errorf("library: creation has no spec")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if creation.ID == "" {
		creation.ID = id.NewPackageID().String()
	}
	if creation.Name == "" {
		creation.Name = creation.Spec.Name
	}
	creation.UpdatedAt = now

	for i := range c.items {
		if c.items[i].ID == creation.ID {
			creation.CreatedAt = c.items[i].CreatedAt
			c.items[i] = *creation
			return c.persist()
		}
	}

	creation.CreatedAt = now
	c.items = append(c.items, *creation)
	return c.persist()
}

// Delete removes a creation by id.
func (c *Creations) Delete(creationID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == creationID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist()
		}
	}
	return fmt.Errorf("library: creation %s not found", creationID)
}

// Count returns the number of saved creations.
func (c *Creations) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Creations) persist() error {
	return store.SaveJSON(c.store, creationsKey, c.items)
}

// Item is a marketplace package.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Author      string       `json:"author,omitempty"`
	Version     string       `json:"version,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Spec        *schema.Spec `json:"spec"`
}

// Marketplace holds the installable catalog.
type Marketplace struct {
	mu    sync.RWMutex
	store store.Store
	items []Item
}

// NewMarketplace loads the catalog from the store.
func NewMarketplace(st store.Store) (*Marketplace, error) {
	m := &Marketplace{store: st, items: []Item{}}
	if _, err := store.LoadJSON(st, marketplaceKey, &m.items); err != nil {
		return nil, err
	}
	if m.items == nil {
		m.items = []Item{}
	}
	return m, nil
}

// List returns catalog items, optionally filtered by category.
func (m *Marketplace) List(category string) []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Item, 0, len(m.items))
	for _, item := range m.items {
		if category == "" || item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Get returns a catalog item by id.
func (m *Marketplace) Get(itemID string) (Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// Add upserts a catalog item and persists.
func (m *Marketplace) Add(item Item) error {
	if item.ID == "" {
		item.ID = id.NewPackageID().String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = item
			return m.persist()
		}
	}
	m.items = append(m.items, item)
	return m.persist()
}

// Exists reports whether an item id is in the catalog.
func (m *Marketplace) Exists(itemID string) bool {
	_, ok := m.Get(itemID)
	return ok
}

// Count returns the catalog size.
func (m *Marketplace) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Install copies a catalog item into the user's creations as a fresh
// creation with its own id.
func (m *Marketplace) Install(itemID string, creations *Creations) (*Creation, error) {
	item, ok := m.Get(itemID)
	if !ok {
		return nil, fmt.Errorf("library: marketplace item %s not found", itemID)
	}
	if item.Spec == nil {
		return nil, fmt.Errorf("library: marketplace item %s has no spec", itemID)
	}

	creation := &Creation{
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Spec:        item.Spec,
	}
	if err := creations.Save(creation); err != nil {
		return nil, err
	}
	return creation, nil
}

func (m *Marketplace) persist() error {
	return store.SaveJSON(m.store, marketplaceKey, m.items)
}
