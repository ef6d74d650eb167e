package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// BackMsg returns to the previous screen.
type BackMsg struct{}

// DetailModel is the product detail screen with reviews and a quantity
// picker.
type DetailModel struct {
	item     *api.Item
	reviews  []api.Review
	quantity int
	width    int
	height   int
}

// NewDetailModel creates an empty detail screen; content arrives via
// SetItem once loaded.
func NewDetailModel(width, height int) DetailModel {
	return DetailModel{quantity: 1, width: width, height: height}
}

// SetItem replaces the displayed product.
func (m *DetailModel) SetItem(item *api.Item, reviews []api.Review) {
	m.item = item
	m.reviews = reviews
	m.quantity = 1
}

// Update handles messages for the detail screen.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return BackMsg{} }
		case "+", tui.KeyUp:
			if m.item != nil && m.quantity < m.item.Quantity {
				m.quantity++
			}
		case "-", tui.KeyDown:
			if m.quantity > 1 {
				m.quantity--
			}
		case "a", tui.KeyEnter:
			if m.item != nil && m.item.Quantity > 0 {
				item := *m.item
				qty := m.quantity
				return m, func() tea.Msg {
					return AddQuantityMsg{Item: item, Quantity: qty}
				}
			}
		}
	}
	return m, nil
}

// AddQuantityMsg adds a chosen quantity of the displayed item.
type AddQuantityMsg struct {
	Item     api.Item
	Quantity int
}

// View renders the detail screen.
func (m DetailModel) View() string {
	if m.item == nil {
		return tui.DimStyle.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render(m.item.Name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Price:    %s\n", money.Format(m.item.CostCents())))
	b.WriteString(fmt.Sprintf("Stock:    %d\n", m.item.Quantity))
	b.WriteString(fmt.Sprintf("Category: %s\n", m.item.Category))
	if m.item.Description != "" {
		b.WriteString("\n" + m.item.Description + "\n")
	}

	b.WriteString(fmt.Sprintf("\nQuantity: %s\n", tui.SelectedStyle.Render(fmt.Sprintf("%d", m.quantity))))

	if len(m.reviews) > 0 {
		b.WriteString("\n" + tui.TitleStyle.Render("Reviews") + "\n")
		for _, r := range m.reviews {
			b.WriteString(fmt.Sprintf("  [%d/5] %s: %s\n", r.Rating, r.Username, r.ReviewText))
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("+/-: quantity  a: add to basket  esc: back"))
	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
