// Package catalog holds the read-only kiosk menu.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"kiosk/internal/models"
)

// ErrImageMissing is returned by CheckImage when a dish image is not on disk
var ErrImageMissing = errors.New("image not found")

// Catalog is an ordered, immutable set of menu items keyed by name
type Catalog struct {
	items []models.MenuItem
	index map[string]int
}

// New builds a catalog, preserving the given order
func New(items ...models.MenuItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.MenuItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i := range items {
		if err := models.ValidateMenuItem(&items[i]); err != nil {
			return nil, err
		}
		if _, dup := c.index[items[i].Name]; dup {
			return nil, fmt.Errorf("duplicate menu item %q", items[i].Name)
		}
		c.index[items[i].Name] = len(c.items)
		c.items = append(c.items, items[i])
	}
	return c, nil
}

// MustNew is New for package-level menus known to be valid
func MustNew(items ...models.MenuItem) *Catalog {
	c, err := New(items...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the house menu
func Default() *Catalog {
	return MustNew(
		models.MenuItem{Name: "Margherita Pizza", ImageRef: "pizza.jpg", Price: 250},
		models.MenuItem{Name: "BBQ Chicken Pizza", ImageRef: "bbq_pizza.jpg", Price: 350},
		models.MenuItem{Name: "Veg Burger", ImageRef: "veg_burger.jpg", Price: 150},
		models.MenuItem{Name: "Chicken Burger", ImageRef: "chicken_burger.jpg", Price: 180},
		models.MenuItem{Name: "Pasta Alfredo", ImageRef: "pasta.jpg", Price: 220},
		models.MenuItem{Name: "Grilled Sandwich", ImageRef: "sandwich.jpg", Price: 120},
		models.MenuItem{Name: "Caesar Salad", ImageRef: "salad.jpg", Price: 160},
		models.MenuItem{Name: "French Fries", ImageRef: "fries.jpg", Price: 100},
		models.MenuItem{Name: "Chocolate Brownie", ImageRef: "brownie.jpg", Price: 140},
		models.MenuItem{Name: "Coke (500ml)", ImageRef: "coke.jpg", Price: 50},
	)
}

// List returns the menu in display order
func (c *Catalog) List() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds a menu item by name
func (c *Catalog) Lookup(name string) (models.MenuItem, bool) {
	i, ok := c.index[name]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[i], true
}

// Price returns the unit price of a dish, or false if it is not on the menu
func (c *Catalog) Price(name string) (int, bool) {
	item, ok := c.Lookup(name)
	return item.Price, ok
}

// Len returns the number of dishes
func (c *Catalog) Len() int {
	return len(c.items)
}

// ImagePath resolves an item's image reference against dir.
// Absolute references are returned unchanged.
func ImagePath(dir string, item models.MenuItem) string {
	if !item.HasImage() || filepath.IsAbs(item.ImageRef) || dir == "" {
		return item.ImageRef
	}
	return filepath.Join(dir, item.ImageRef)
}

// CheckImage verifies that an image file exists and is a regular file
func CheckImage(path string) error {
	if path == "" {
		return ErrImageMissing
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrImageMissing, path)
		}
		return fmt.Errorf("stat image %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrImageMissing, path)
	}
	return nil
}
