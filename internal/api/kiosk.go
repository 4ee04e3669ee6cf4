// Package api binds a kiosk session to its receipt journal, metrics and log.
// The presentation layer talks to the ordering core only through KioskAPI.
package api

import (
	"errors"
	"fmt"
	"log/slog"

	"kiosk/internal/logger"
	"kiosk/internal/models"
	"kiosk/internal/monitoring"
	"kiosk/internal/ordering"
)

// ErrJournal is returned alongside a valid receipt when the checkout
// succeeded but could not be written to the journal.
var ErrJournal = errors.New("receipt not journaled")

// Journal represents the kiosk's receipt store
type Journal interface {
	Record(r ordering.Receipt) error
	Recent(limit int) ([]models.Receipt, error)
	Totals() (count int, revenue int, err error)
}

// KioskAPI is the set of actions a kiosk screen can trigger
type KioskAPI struct {
	session *ordering.Session
	journal Journal
	monitor *monitoring.Monitor
	log     *logger.Logger
}

// NewKioskAPI creates a kiosk API over session. journal may be nil.
func NewKioskAPI(session *ordering.Session, journal Journal, monitor *monitoring.Monitor, log *logger.Logger) *KioskAPI {
	if monitor == nil {
		monitor = monitoring.NewMonitor()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &KioskAPI{
		session: session,
		journal: journal,
		monitor: monitor,
		log:     log,
	}
}

// Session returns the underlying session for read access
func (k *KioskAPI) Session() *ordering.Session {
	return k.session
}

// Menu lists the dishes on offer
func (k *KioskAPI) Menu() []models.MenuItem {
	return k.session.Menu().List()
}

// AddItem adds qty of dish to the order
func (k *KioskAPI) AddItem(dish string, qty int) (ordering.Line, error) {
	line, err := k.session.AddItem(dish, qty)
	if err != nil {
		k.reject("add_item", err)
		return ordering.Line{}, err
	}
	k.monitor.ItemAdded(dish, qty)
	k.monitor.SetLedgerLines(k.session.Len())
	k.log.Info("add_item", "item added to order",
		slog.String("dish", dish),
		slog.Int("qty", qty),
		slog.Int("line_qty", line.Quantity),
		slog.Int("cancel_window", line.CancelWindow),
	)
	return line, nil
}

// PlaceOrder places the current order
func (k *KioskAPI) PlaceOrder() error {
	if err := k.session.PlaceOrder(); err != nil {
		k.reject("place_order", err)
		return err
	}
	k.monitor.OrderPlaced()
	k.log.Info("place_order", "order placed", slog.Int("lines", k.session.Len()))
	return nil
}

// Checkout bills and clears the order. When the receipt cannot be
// journaled the receipt is still returned with an ErrJournal error.
func (k *KioskAPI) Checkout() (ordering.Receipt, error) {
	receipt, err := k.session.Checkout()
	if err != nil {
		k.reject("checkout", err)
		return ordering.Receipt{}, err
	}
	k.monitor.CheckedOut(receipt.Total)
	k.monitor.SetLedgerLines(0)
	k.log.Info("checkout", "order checked out",
		slog.String("receipt_id", receipt.ID),
		slog.Int("total", receipt.Total),
		slog.Int("lines", len(receipt.Lines)),
	)

	if k.journal != nil {
		if err := k.journal.Record(receipt); err != nil {
			k.log.Error("checkout", "failed to journal receipt", err, slog.String("receipt_id", receipt.ID))
			return receipt, fmt.Errorf("%w: %v", ErrJournal, err)
		}
	}
	return receipt, nil
}

// CancelOne cancels the first cancellable line of the order
func (k *KioskAPI) CancelOne() (ordering.Line, error) {
	line, err := k.session.CancelOne()
	if err != nil {
		k.reject("cancel", err)
		return ordering.Line{}, err
	}
	k.monitor.Cancelled()
	k.monitor.SetLedgerLines(k.session.Len())
	k.log.Info("cancel", "order line cancelled",
		slog.String("dish", line.Dish),
		slog.Int("qty", line.Quantity),
		slog.Int("cancel_window", line.CancelWindow),
	)
	return line, nil
}

// Receipts returns the most recent journaled receipts with the session totals
func (k *KioskAPI) Receipts(limit int) ([]models.Receipt, int, int, error) {
	if k.journal == nil {
		return nil, 0, 0, nil
	}
	receipts, err := k.journal.Recent(limit)
	if err != nil {
		return nil, 0, 0, err
	}
	count, revenue, err := k.journal.Totals()
	if err != nil {
		return nil, 0, 0, err
	}
	return receipts, count, revenue, nil
}

// ImageMissing logs a dish whose image could not be shown
func (k *KioskAPI) ImageMissing(dish, path string, err error) {
	k.log.Warn("show_image", "dish image unavailable",
		slog.String("dish", dish),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

func (k *KioskAPI) reject(action string, err error) {
	kind := ordering.Kind(err)
	k.monitor.Rejected(kind)
	k.log.Debug(action, "action rejected", slog.String("kind", kind), slog.String("error", err.Error()))
}
