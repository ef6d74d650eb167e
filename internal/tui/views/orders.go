package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// OrdersModel is the order history screen.
type OrdersModel struct {
	orders []api.Order
	loaded bool
	width  int
	height int
}

// NewOrdersModel creates the order history screen.
func NewOrdersModel(width, height int) OrdersModel {
	return OrdersModel{width: width, height: height}
}

// SetOrders replaces the displayed history.
func (m *OrdersModel) SetOrders(orders []api.Order) {
	m.orders = orders
	m.loaded = true
}

// Update handles messages for the order history screen.
func (m OrdersModel) Update(msg tea.Msg) (OrdersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == tui.KeyEsc {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}
	return m, nil
}

// View renders the order history screen.
func (m OrdersModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Your Orders"))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(tui.DimStyle.Render("Loading..."))
	case len(m.orders) == 0:
		b.WriteString(tui.DimStyle.Render("No orders yet."))
	default:
		for _, o := range m.orders {
			b.WriteString(fmt.Sprintf("%-12s %-24s x%-3d %10s  %s  %s\n",
				o.ID, o.ItemName, o.Quantity,
				money.Format(money.FromFloat(o.Total)), o.Status, o.CreatedAt))
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("esc: back to catalog"))
	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
