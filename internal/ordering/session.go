// Package ordering implements the kiosk order ledger and its lifecycle:
// add, place, checkout and cancel.
package ordering

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"kiosk/internal/catalog"
	"kiosk/internal/models"

	"github.com/google/uuid"
)

// Cancel window bounds in seconds. A fresh window is drawn from
// [MinCancelWindow, MaxCancelWindow] whenever a line is created or grown.
const (
	MinCancelWindow = 180
	MaxCancelWindow = 240
)

// cancellableFrom is the smallest window that still allows cancellation.
const cancellableFrom = 180

// Line is one dish in the ledger
type Line struct {
	Dish         string
	Quantity     int
	CancelWindow int
}

// BillLine is a priced line on a receipt
type BillLine struct {
	Dish      string
	Quantity  int
	UnitPrice int
}

// Amount returns the line subtotal
func (b BillLine) Amount() int {
	return b.UnitPrice * b.Quantity
}

// Receipt is the result of a successful checkout
type Receipt struct {
	ID       string
	Lines    []BillLine
	Total    int
	IssuedAt time.Time
}

// Session owns the ledger of a single kiosk session.
// It is not safe for concurrent use.
type Session struct {
	menu   *catalog.Catalog
	lines  map[string]*Line
	order  []string
	status models.OrderStatus

	window func() int
	now    func() time.Time
}

// Option configures a Session
type Option func(*Session)

// WithWindowFunc overrides how cancel windows are drawn
func WithWindowFunc(fn func() int) Option {
	return func(s *Session) { s.window = fn }
}

// WithClock overrides the receipt timestamp source
func WithClock(fn func() time.Time) Option {
	return func(s *Session) { s.now = fn }
}

// NewSession creates an empty session over menu
func NewSession(menu *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		menu:   menu,
		lines:  make(map[string]*Line),
		status: models.OrderStatusNotPlaced,
		window: RandomWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RandomWindow draws a cancel window uniformly from [MinCancelWindow, MaxCancelWindow]
func RandomWindow() int {
	return MinCancelWindow + rand.IntN(MaxCancelWindow-MinCancelWindow+1)
}

// Menu returns the catalog the session orders from
func (s *Session) Menu() *catalog.Catalog {
	return s.menu
}

// AddItem adds qty of dish to the ledger. An existing line keeps its
// position, grows by qty and gets a freshly drawn cancel window.
func (s *Session) AddItem(dish string, qty int) (Line, error) {
	if _, ok := s.menu.Lookup(dish); !ok {
		return Line{}, fmt.Errorf("%w: %q is not on the menu", ErrSelection, dish)
	}
	if qty < 1 {
		return Line{}, fmt.Errorf("%w: quantity %d is less than 1", ErrSelection, qty)
	}

	line, ok := s.lines[dish]
	if !ok {
		line = &Line{Dish: dish}
		s.lines[dish] = line
		s.order = append(s.order, dish)
	}
	line.Quantity += qty
	line.CancelWindow = s.window()
	return *line, nil
}

// PlaceOrder marks the order as placed
func (s *Session) PlaceOrder() error {
	if len(s.order) == 0 {
		return fmt.Errorf("place order: %w", ErrEmptyOrder)
	}
	s.status = models.OrderStatusPlaced
	return nil
}

// Checkout bills every line, clears the ledger and completes the order
func (s *Session) Checkout() (Receipt, error) {
	if len(s.order) == 0 {
		return Receipt{}, fmt.Errorf("checkout: %w", ErrEmptyOrder)
	}

	receipt := Receipt{
		ID:       uuid.NewString(),
		Lines:    make([]BillLine, 0, len(s.order)),
		IssuedAt: s.now(),
	}
	for _, dish := range s.order {
		price, _ := s.menu.Price(dish)
		bl := BillLine{Dish: dish, Quantity: s.lines[dish].Quantity, UnitPrice: price}
		receipt.Lines = append(receipt.Lines, bl)
		receipt.Total += bl.Amount()
	}

	s.lines = make(map[string]*Line)
	s.order = nil
	s.status = models.OrderStatusCompleted
	return receipt, nil
}

// CancelOne removes the first line, in insertion order, that is still
// inside its cancel window.
func (s *Session) CancelOne() (Line, error) {
	for i, dish := range s.order {
		line := s.lines[dish]
		if line.CancelWindow >= cancellableFrom {
			delete(s.lines, dish)
			s.order = slices.Delete(s.order, i, i+1)
			return *line, nil
		}
	}
	return Line{}, fmt.Errorf("cancel: %w", ErrCancellationWindowExpired)
}

// Lines returns a copy of the ledger in insertion order
func (s *Session) Lines() []Line {
	out := make([]Line, 0, len(s.order))
	for _, dish := range s.order {
		out = append(out, *s.lines[dish])
	}
	return out
}

// Line returns the ledger line for dish
func (s *Session) Line(dish string) (Line, bool) {
	line, ok := s.lines[dish]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Status returns the current order status
func (s *Session) Status() models.OrderStatus {
	return s.status
}

// Len returns the number of lines in the ledger
func (s *Session) Len() int {
	return len(s.order)
}

// Subtotal returns the current bill without checking out
func (s *Session) Subtotal() int {
	total := 0
	for _, dish := range s.order {
		price, _ := s.menu.Price(dish)
		total += price * s.lines[dish].Quantity
	}
	return total
}

// FormatWindow renders a window in seconds as minutes and seconds, e.g. 3:5
func FormatWindow(seconds int) string {
	return fmt.Sprintf("%d:%d", seconds/60, seconds%60)
}
