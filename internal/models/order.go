package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Receipt is a journaled checkout
type Receipt struct {
	gorm.Model
	ReceiptID string        `gorm:"unique_index"`
	Lines     []ReceiptLine `gorm:"foreignkey:ReceiptID;association_foreignkey:ReceiptID"`
	Total     int
	IssuedAt  time.Time
}

// ReceiptLine is a single billed dish on a receipt
type ReceiptLine struct {
	gorm.Model
	ReceiptID string `gorm:"index"`
	Dish      string
	Quantity  int
	UnitPrice int
}

// Amount returns the line subtotal
func (l ReceiptLine) Amount() int {
	return l.UnitPrice * l.Quantity
}

// OrderStatus represents the possible states of a kiosk order
type OrderStatus string

const (
	OrderStatusNotPlaced OrderStatus = "not_placed"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCompleted OrderStatus = "completed"
)

// Label returns the text shown on the kiosk status line
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPlaced:
		return "Order Placed"
	case OrderStatusCompleted:
		return "Order Completed"
	default:
		return "Order Not Placed"
	}
}
