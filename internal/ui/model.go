// Package ui is the terminal front end of the kiosk.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"kiosk/internal/api"
	"kiosk/internal/catalog"
	"kiosk/internal/models"
	"kiosk/internal/ordering"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	minQuantity = 1
	maxQuantity = 10

	recentReceipts = 10
)

const (
	viewOrder    = "order"
	viewReceipts = "receipts"
)

// Options configures the kiosk screen
type Options struct {
	Title      string
	ImageDir   string
	Fullscreen bool
}

type level int

const (
	levelInfo level = iota
	levelSuccess
	levelWarning
)

// notice is the message box shown under the order, replacing the
// pop-up dialogs of a windowed kiosk.
type notice struct {
	level level
	title string
	text  string
}

// dishItem is a menu entry in the dish list
type dishItem struct {
	models.MenuItem
}

func (i dishItem) Title() string       { return i.Name }
func (i dishItem) Description() string { return fmt.Sprintf("Rs %d", i.Price) }
func (i dishItem) FilterValue() string { return i.Name }

// Model defines the kiosk screen state
type Model struct {
	api  *api.KioskAPI
	opts Options

	menu     list.Model
	receipts table.Model
	qty      int

	selected   string
	imagePath  string
	imageFound bool

	notice      notice
	currentView string
	fullscreen  bool
	width       int
	height      int
}

// New creates the kiosk screen over k
func New(k *api.KioskAPI, opts Options) Model {
	items := make([]list.Item, 0)
	for _, mi := range k.Menu() {
		items = append(items, dishItem{mi})
	}

	menu := list.New(items, list.NewDefaultDelegate(), 40, 20)
	menu.Title = "Menu"
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	menu.SetShowStatusBar(false)

	receipts := table.New(
		table.WithColumns([]table.Column{
			{Title: "Receipt", Width: 10},
			{Title: "Time", Width: 10},
			{Title: "Items", Width: 36},
			{Title: "Total", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(recentReceipts+1),
	)

	m := Model{
		api:         k,
		opts:        opts,
		menu:        menu,
		receipts:    receipts,
		qty:         minQuantity,
		currentView: viewOrder,
		fullscreen:  opts.Fullscreen,
	}
	m.syncSelection()
	m.notice = notice{
		level: levelInfo,
		title: "Welcome",
		text:  fmt.Sprintf("Welcome To %s!", welcomeName(opts.Title)),
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window events
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width/2, max(msg.Height-14, 6))
		return m, nil
	case tea.KeyMsg:
		if handled, next, cmd := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case viewOrder:
		m.menu, cmd = m.menu.Update(msg)
		m.syncSelection()
	case viewReceipts:
		m.receipts, cmd = m.receipts.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return true, m, tea.Quit
	case "f11", "f":
		return true, m, m.toggleFullscreen()
	case "esc":
		if m.currentView != viewOrder {
			m.currentView = viewOrder
		}
		m.notice = notice{}
		return true, m, nil
	case "r":
		if m.currentView == viewReceipts {
			m.currentView = viewOrder
			return true, m, nil
		}
		m.loadReceipts()
		return true, m, nil
	}

	if m.currentView != viewOrder {
		return false, m, nil
	}

	switch msg.String() {
	case "+", "=":
		m.qty = min(m.qty+1, maxQuantity)
	case "-":
		m.qty = max(m.qty-1, minQuantity)
	case "a", "enter":
		m.addSelected()
	case "p":
		m.placeOrder()
	case "c":
		m.checkout()
	case "x":
		m.cancelOne()
	default:
		return false, m, nil
	}
	return true, m, nil
}

func (m *Model) toggleFullscreen() tea.Cmd {
	m.fullscreen = !m.fullscreen
	if m.fullscreen {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

// syncSelection refreshes the image panel when the highlighted dish changes
func (m *Model) syncSelection() {
	item, ok := m.menu.SelectedItem().(dishItem)
	if !ok {
		m.selected, m.imagePath, m.imageFound = "", "", false
		return
	}
	if item.Name == m.selected {
		return
	}

	m.selected = item.Name
	m.imagePath = catalog.ImagePath(m.opts.ImageDir, item.MenuItem)
	m.imageFound = true
	if err := catalog.CheckImage(m.imagePath); err != nil {
		m.imageFound = false
		m.api.ImageMissing(item.Name, m.imagePath, err)
		m.notice = notice{
			level: levelWarning,
			title: "Image Missing",
			text:  fmt.Sprintf("Image for %s not found: %s", item.Name, m.imagePath),
		}
	}
}

func (m *Model) addSelected() {
	item, ok := m.menu.SelectedItem().(dishItem)
	if !ok {
		m.warn(ordering.ErrSelection)
		return
	}
	line, err := m.api.AddItem(item.Name, m.qty)
	if err != nil {
		m.warn(err)
		return
	}
	m.notice = notice{
		level: levelSuccess,
		title: "Added",
		text:  fmt.Sprintf("%s x %d added (now %d)", line.Dish, m.qty, line.Quantity),
	}
}

func (m *Model) placeOrder() {
	if err := m.api.PlaceOrder(); err != nil {
		m.warn(err)
		return
	}
	m.notice = notice{
		level: levelSuccess,
		title: "Order Confirmation",
		text:  "Your order has been placed successfully!",
	}
}

func (m *Model) checkout() {
	receipt, err := m.api.Checkout()
	if errors.Is(err, ordering.ErrEmptyOrder) {
		m.notice = notice{level: levelWarning, title: "No Order", text: "You have not placed any order yet."}
		return
	}
	if err != nil && !errors.Is(err, api.ErrJournal) {
		m.warn(err)
		return
	}
	text := fmt.Sprintf("Your total bill is: Rs %d\nThank you for dining with us!", receipt.Total)
	if err != nil {
		text += "\n(receipt could not be saved to the journal)"
	}
	m.notice = notice{level: levelSuccess, title: "Checkout", text: text}
}

func (m *Model) cancelOne() {
	line, err := m.api.CancelOne()
	if err != nil {
		m.warn(err)
		return
	}
	m.notice = notice{
		level: levelInfo,
		title: "Cancellation",
		text:  fmt.Sprintf("Order for %s has been cancelled.", line.Dish),
	}
}

func (m *Model) loadReceipts() {
	receipts, count, revenue, err := m.api.Receipts(recentReceipts)
	if err != nil {
		m.notice = notice{level: levelWarning, title: "Receipts", text: fmt.Sprintf("Could not load receipts: %v", err)}
		return
	}
	m.receipts.SetRows(receiptRows(receipts))
	m.currentView = viewReceipts
	m.notice = notice{
		level: levelInfo,
		title: "Receipts",
		text:  fmt.Sprintf("%d receipts this session, Rs %d in total", count, revenue),
	}
}

// warn turns an ordering error into the warning shown to the customer
func (m *Model) warn(err error) {
	m.notice = warningFor(err)
}

func warningFor(err error) notice {
	switch {
	case errors.Is(err, ordering.ErrSelection):
		return notice{level: levelWarning, title: "Selection Error", text: "Please select a dish before adding."}
	case errors.Is(err, ordering.ErrEmptyOrder):
		return notice{level: levelWarning, title: "No Order", text: "Please add items before placing an order."}
	case errors.Is(err, ordering.ErrCancellationWindowExpired):
		return notice{level: levelWarning, title: "Cannot Cancel", text: "Orders cannot be cancelled after 1 minute!"}
	default:
		return notice{level: levelWarning, title: "Error", text: err.Error()}
	}
}

func welcomeName(title string) string {
	if name, _, found := strings.Cut(title, " - "); found {
		return name
	}
	if title == "" {
		return "the kiosk"
	}
	return title
}
