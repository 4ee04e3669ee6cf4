package ui

import (
	"fmt"
	"strings"

	"kiosk/internal/models"
	"kiosk/internal/ordering"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B0000")).
			Background(lipgloss.Color("#F8E8C1")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8B0000")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#8B0000"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case viewReceipts:
		return docStyle.Render(m.receiptsView())
	default:
		return docStyle.Render(m.orderView())
	}
}

func (m Model) orderView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.opts.Title))
	b.WriteString("\n\n")

	left := panelStyle.Render(m.menu.View() + "\n" + quantityView(m.qty))
	right := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render("🍽 "+m.imageView()),
		panelStyle.Render("📜 Your Order\n"+orderLinesView(m.api.Session())),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(statusView(m.api.Session().Status())))
	b.WriteString("\n")

	if n := noticeView(m.notice); n != "" {
		b.WriteString("\n" + n + "\n")
	}
	b.WriteString(helpStyle.Render("\n↑/↓ select • +/- quantity • a add • p place • c checkout • x cancel • r receipts • f fullscreen • q quit"))
	return b.String()
}

func (m Model) imageView() string {
	if m.selected == "" {
		return "No dish selected"
	}
	if !m.imageFound {
		return fmt.Sprintf("%s\n(no image: %s)", m.selected, m.imagePath)
	}
	return fmt.Sprintf("%s\n[%s]", m.selected, m.imagePath)
}

func (m Model) receiptsView() string {
	view := titleStyle.Render("Receipts") + "\n\n" + m.receipts.View() + "\n"
	if n := noticeView(m.notice); n != "" {
		view += "\n" + n + "\n"
	}
	view += helpStyle.Render("\nr/esc back • q quit")
	return view
}

func quantityView(qty int) string {
	return fmt.Sprintf("Quantity: [- %2d +]", qty)
}

// orderLinesView lists the ledger the way the order summary panel shows it
func orderLinesView(s *ordering.Session) string {
	lines := s.Lines()
	if len(lines) == 0 {
		return "No items added yet"
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "✅ %s x %d (⏳ %s min left)\n", l.Dish, l.Quantity, ordering.FormatWindow(l.CancelWindow))
	}
	fmt.Fprintf(&b, "Subtotal: Rs %d", s.Subtotal())
	return b.String()
}

func statusView(status models.OrderStatus) string {
	label := "🟢 Status: " + status.Label()
	if status != models.OrderStatusNotPlaced {
		label += " ✅"
	}
	return label
}

func noticeView(n notice) string {
	if n.title == "" {
		return ""
	}
	style := infoStyle
	switch n.level {
	case levelSuccess:
		style = successStyle
	case levelWarning:
		style = warningStyle
	}
	return style.Render(n.title) + "\n" + n.text
}

func receiptRows(receipts []models.Receipt) []table.Row {
	rows := make([]table.Row, 0, len(receipts))
	for _, r := range receipts {
		items := make([]string, 0, len(r.Lines))
		for _, l := range r.Lines {
			items = append(items, fmt.Sprintf("%s x%d", l.Dish, l.Quantity))
		}
		id := r.ReceiptID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, table.Row{
			id,
			r.IssuedAt.Format("15:04:05"),
			strings.Join(items, ", "),
			fmt.Sprintf("Rs %d", r.Total),
		})
	}
	return rows
}
