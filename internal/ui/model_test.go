package ui

import (
	"os"
	"path/filepath"
	"testing"

	"kiosk/internal/api"
	"kiosk/internal/catalog"
	"kiosk/internal/journal"
	"kiosk/internal/models"
	"kiosk/internal/ordering"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, imageDir string) Model {
	t.Helper()
	j, err := journal.Open(journal.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })

	session := ordering.NewSession(catalog.Default(), ordering.WithWindowFunc(func() int { return 185 }))
	k := api.NewKioskAPI(session, j, nil, nil)
	return New(k, Options{Title: "Ustaad Hotel - Self-Service", ImageDir: imageDir})
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestNewShowsWelcome(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	assert.Equal(t, "Welcome", m.notice.title)
	assert.Equal(t, "Welcome To Ustaad Hotel!", m.notice.text)
	assert.Equal(t, "Margherita Pizza", m.selected)
	assert.Contains(t, m.View(), "Status: Order Not Placed")
}

func TestAddWithQuantity(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	m, _ = press(t, m, "a", "+", "+", "a")
	line, ok := m.api.Session().Line("Margherita Pizza")
	require.True(t, ok)
	assert.Equal(t, 4, line.Quantity)
	assert.Equal(t, 3, m.qty)
	assert.Contains(t, m.View(), "✅ Margherita Pizza x 4 (⏳ 3:5 min left)")

	m, _ = press(t, m, "-", "-", "-", "-")
	assert.Equal(t, minQuantity, m.qty)

	for i := 0; i < 15; i++ {
		m, _ = press(t, m, "+")
	}
	assert.Equal(t, maxQuantity, m.qty)
}

func TestPlaceAndCheckout(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	m, _ = press(t, m, "p")
	assert.Equal(t, "No Order", m.notice.title)
	m, _ = press(t, m, "c")
	assert.Equal(t, "No Order", m.notice.title)
	assert.Equal(t, "You have not placed any order yet.", m.notice.text)

	m, _ = press(t, m, "+", "enter", "down", "-", "a", "p")
	assert.Equal(t, "Order Confirmation", m.notice.title)
	assert.Equal(t, models.OrderStatusPlaced, m.api.Session().Status())
	assert.Contains(t, m.View(), "Status: Order Placed")

	m, _ = press(t, m, "c")
	assert.Equal(t, "Checkout", m.notice.title)
	assert.Contains(t, m.notice.text, "Rs 850")
	assert.Zero(t, m.api.Session().Len())
	assert.Contains(t, m.View(), "Status: Order Completed")
}

func TestCancel(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	m, _ = press(t, m, "x")
	assert.Equal(t, "Cannot Cancel", m.notice.title)

	m, _ = press(t, m, "a", "x")
	assert.Equal(t, "Cancellation", m.notice.title)
	assert.Equal(t, "Order for Margherita Pizza has been cancelled.", m.notice.text)
	assert.Zero(t, m.api.Session().Len())
}

func TestImageLookup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pizza.jpg"), []byte("jpg"), 0o644))

	m := newTestModel(t, dir)
	assert.True(t, m.imageFound)
	assert.Equal(t, filepath.Join(dir, "pizza.jpg"), m.imagePath)

	m, _ = press(t, m, "down")
	assert.Equal(t, "BBQ Chicken Pizza", m.selected)
	assert.False(t, m.imageFound)
	assert.Equal(t, "Image Missing", m.notice.title)
}

func TestReceiptsView(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	m, _ = press(t, m, "a", "c", "r")
	assert.Equal(t, viewReceipts, m.currentView)
	assert.Len(t, m.receipts.Rows(), 1)
	assert.Equal(t, "1 receipts this session, Rs 250 in total", m.notice.text)

	// order actions are inert outside the order view
	m, _ = press(t, m, "a")
	assert.Zero(t, m.api.Session().Len())

	m, _ = press(t, m, "esc")
	assert.Equal(t, viewOrder, m.currentView)
	assert.Empty(t, m.notice.title)
}

func TestFullscreenAndQuit(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	m, cmd := press(t, m, "f")
	assert.True(t, m.fullscreen)
	require.NotNil(t, cmd)

	m, _ = press(t, m, "f")
	assert.False(t, m.fullscreen)

	_, cmd = press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWarningFor(t *testing.T) {
	assert.Equal(t, "Selection Error", warningFor(ordering.ErrSelection).title)
	assert.Equal(t, "Please add items before placing an order.", warningFor(ordering.ErrEmptyOrder).text)
	assert.Equal(t, "Orders cannot be cancelled after 1 minute!", warningFor(ordering.ErrCancellationWindowExpired).text)
	assert.Equal(t, "Error", warningFor(assert.AnError).title)
}

func TestWelcomeName(t *testing.T) {
	assert.Equal(t, "Ustaad Hotel", welcomeName("Ustaad Hotel - Self-Service"))
	assert.Equal(t, "Corner Cafe", welcomeName("Corner Cafe"))
	assert.Equal(t, "the kiosk", welcomeName(""))
}
