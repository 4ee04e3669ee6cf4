package api

import (
	"bytes"
	"errors"
	"testing"

	"kiosk/internal/catalog"
	"kiosk/internal/journal"
	"kiosk/internal/logger"
	"kiosk/internal/models"
	"kiosk/internal/monitoring"
	"kiosk/internal/ordering"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingJournal struct{}

func (failingJournal) Record(ordering.Receipt) error { return errors.New("database is locked") }
func (failingJournal) Recent(int) ([]models.Receipt, error) {
	return nil, errors.New("database is locked")
}
func (failingJournal) Totals() (int, int, error) { return 0, 0, errors.New("database is locked") }

func newTestAPI(t *testing.T) (*KioskAPI, *monitoring.Monitor) {
	t.Helper()
	j, err := journal.Open(journal.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })

	m := monitoring.NewMonitor()
	return NewKioskAPI(ordering.NewSession(catalog.Default()), j, m, logger.Discard()), m
}

func metricValue(t *testing.T, m *monitoring.Monitor, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				total += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				total += metric.GetGauge().GetValue()
			}
		}
	}
	return total
}

func TestKioskAPI_OrderLifecycle(t *testing.T) {
	k, m := newTestAPI(t)

	_, err := k.AddItem("Margherita Pizza", 2)
	require.NoError(t, err)
	_, err = k.AddItem("Veg Burger", 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, metricValue(t, m, "kiosk_ledger_lines"))

	require.NoError(t, k.PlaceOrder())
	assert.Equal(t, models.OrderStatusPlaced, k.Session().Status())

	receipt, err := k.Checkout()
	require.NoError(t, err)
	assert.Equal(t, 650, receipt.Total)

	receipts, count, revenue, err := k.Receipts(5)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, receipt.ID, receipts[0].ReceiptID)
	assert.Equal(t, 1, count)
	assert.Equal(t, 650, revenue)

	assert.Equal(t, 3.0, metricValue(t, m, "kiosk_items_added_total"))
	assert.Equal(t, 1.0, metricValue(t, m, "kiosk_orders_placed_total"))
	assert.Equal(t, 650.0, metricValue(t, m, "kiosk_revenue_total"))
	assert.Equal(t, 0.0, metricValue(t, m, "kiosk_ledger_lines"))
}

func TestKioskAPI_RejectedActions(t *testing.T) {
	k, m := newTestAPI(t)

	_, err := k.AddItem("Sushi", 1)
	assert.ErrorIs(t, err, ordering.ErrSelection)
	assert.ErrorIs(t, k.PlaceOrder(), ordering.ErrEmptyOrder)
	_, err = k.Checkout()
	assert.ErrorIs(t, err, ordering.ErrEmptyOrder)
	_, err = k.CancelOne()
	assert.ErrorIs(t, err, ordering.ErrCancellationWindowExpired)

	assert.Equal(t, 4.0, metricValue(t, m, "kiosk_rejected_actions_total"))
	assert.Equal(t, 0.0, metricValue(t, m, "kiosk_checkouts_total"))
}

func TestKioskAPI_Cancel(t *testing.T) {
	k, m := newTestAPI(t)

	_, err := k.AddItem("French Fries", 3)
	require.NoError(t, err)

	line, err := k.CancelOne()
	require.NoError(t, err)
	assert.Equal(t, "French Fries", line.Dish)
	assert.Zero(t, k.Session().Len())
	assert.Equal(t, 1.0, metricValue(t, m, "kiosk_cancellations_total"))
}

func TestKioskAPI_JournalFailure(t *testing.T) {
	var buf bytes.Buffer
	m := monitoring.NewMonitor()
	k := NewKioskAPI(ordering.NewSession(catalog.Default()), failingJournal{}, m, logger.New("kiosk", &buf, "info"))

	_, err := k.AddItem("Caesar Salad", 1)
	require.NoError(t, err)

	receipt, err := k.Checkout()
	assert.ErrorIs(t, err, ErrJournal)
	assert.Equal(t, 160, receipt.Total)
	assert.Zero(t, k.Session().Len())
	assert.Equal(t, models.OrderStatusCompleted, k.Session().Status())
	assert.Contains(t, buf.String(), "failed to journal receipt")

	_, _, _, err = k.Receipts(5)
	assert.Error(t, err)
}

func TestKioskAPI_WithoutJournal(t *testing.T) {
	k := NewKioskAPI(ordering.NewSession(catalog.Default()), nil, nil, nil)

	_, err := k.AddItem("Coke (500ml)", 2)
	require.NoError(t, err)
	receipt, err := k.Checkout()
	require.NoError(t, err)
	assert.Equal(t, 100, receipt.Total)

	receipts, count, _, err := k.Receipts(5)
	assert.NoError(t, err)
	assert.Empty(t, receipts)
	assert.Zero(t, count)
	assert.Len(t, k.Menu(), 10)
}
