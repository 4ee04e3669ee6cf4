package models

import (
	"fmt"
	"strings"
)

// MenuItem represents a dish on the kiosk menu
type MenuItem struct {
	Name     string `yaml:"name"`
	ImageRef string `yaml:"image"`
	Price    int    `yaml:"price"`
}

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item *MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price < 0 {
		return fmt.Errorf("menu item %q: price must not be negative", item.Name)
	}
	return nil
}

// HasImage reports whether the item carries an image reference
func (mi *MenuItem) HasImage() bool {
	return mi.ImageRef != ""
}
