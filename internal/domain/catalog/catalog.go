// Package catalog is the menu: the authoritative list of sellable items.
package catalog

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/brintopos/brintopos/internal/domain"
)

const itemIDPrefix = "menu-"

// Catalog is safe for concurrent use. Reads return copies.
type Catalog struct {
	mu    sync.RWMutex
	items []domain.MenuItem
}

// New returns a catalog seeded with items.
func New(items []domain.MenuItem) (*Catalog, error) {
	c := &Catalog{}
	for _, it := range items {
		if _, err := c.Add(it); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates item and appends it. An empty id is generated.
func (c *Catalog) Add(item domain.MenuItem) (domain.MenuItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if err := validate(item); err != nil {
		return domain.MenuItem{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item.ID == "" {
		item.ID = itemIDPrefix + uuid.NewString()
	}
	if c.indexOf(item.ID) >= 0 {
		return domain.MenuItem{}, domain.NewValidationError("id", "menu item %q already exists", item.ID)
	}
	c.items = append(c.items, item)
	return item, nil
}

// Update replaces the item with the same id.
func (c *Catalog) Update(item domain.MenuItem) (domain.MenuItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if err := validate(item); err != nil {
		return domain.MenuItem{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(item.ID)
	if i < 0 {
		return domain.MenuItem{}, domain.NewNotFoundError("menu item", item.ID)
	}
	c.items[i] = item
	return item, nil
}

// Remove deletes the item and reports whether it existed.
func (c *Catalog) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func (c *Catalog) Get(id string) (domain.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return domain.MenuItem{}, domain.NewNotFoundError("menu item", id)
	}
	return c.items[i], nil
}

// List returns items in menu order. An empty category or "All" lists everything.
func (c *Catalog) List(category domain.Category) []domain.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.MenuItem, 0, len(c.items))
	for _, it := range c.items {
		if category == "" || category == domain.CategoryAll || it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Categories returns the filter tabs, "All" first.
func Categories() []domain.Category {
	return append([]domain.Category{domain.CategoryAll}, domain.ValidCategories...)
}

func (c *Catalog) indexOf(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func validate(item domain.MenuItem) error {
	if item.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if item.Price.IsNegative() {
		return domain.NewValidationError("price", "must not be negative")
	}
	if !item.Category.Valid() {
		return domain.NewValidationError("category", "unknown category %q", item.Category)
	}
	return nil
}
