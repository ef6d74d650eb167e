package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// ChangeQuantityMsg adjusts a basket line's quantity. Zero removes it.
type ChangeQuantityMsg struct {
	ProductID string
	Quantity  int
}

// RemoveLineMsg deletes a basket line.
type RemoveLineMsg struct {
	ProductID string
}

// StartCheckoutMsg begins a checkout run over the basket.
type StartCheckoutMsg struct{}

// BasketModel is the basket review screen.
type BasketModel struct {
	lines      []basket.Line
	totalCents int64
	cursor     int
	width      int
	height     int
}

// NewBasketModel creates the basket screen.
func NewBasketModel(width, height int) BasketModel {
	return BasketModel{width: width, height: height}
}

// SetLines replaces the displayed basket.
func (m *BasketModel) SetLines(lines []basket.Line, totalCents int64) {
	m.lines = lines
	m.totalCents = totalCents
	if m.cursor >= len(lines) {
		m.cursor = len(lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles messages for the basket screen.
func (m BasketModel) Update(msg tea.Msg) (BasketModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return BackMsg{} }
		case tui.KeyUp, "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case tui.KeyDown, "j":
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}
		case "+":
			if line, ok := m.selected(); ok {
				id, qty := line.ProductID, line.Quantity+1
				return m, func() tea.Msg { return ChangeQuantityMsg{ProductID: id, Quantity: qty} }
			}
		case "-":
			// Quantity zero removes the line.
			if line, ok := m.selected(); ok {
				id, qty := line.ProductID, line.Quantity-1
				return m, func() tea.Msg { return ChangeQuantityMsg{ProductID: id, Quantity: qty} }
			}
		case "d":
			if line, ok := m.selected(); ok {
				id := line.ProductID
				return m, func() tea.Msg { return RemoveLineMsg{ProductID: id} }
			}
		case "c":
			if len(m.lines) > 0 {
				return m, func() tea.Msg { return StartCheckoutMsg{} }
			}
		}
	}
	return m, nil
}

func (m BasketModel) selected() (basket.Line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return basket.Line{}, false
	}
	return m.lines[m.cursor], true
}

// View renders the basket screen.
func (m BasketModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Basket"))
	b.WriteString("\n\n")

	if len(m.lines) == 0 {
		b.WriteString(tui.DimStyle.Render("Your basket is empty."))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("esc: back to catalog"))
		return tui.BoxStyle.Width(m.width - 4).Render(b.String())
	}

	for i, line := range m.lines {
		row := fmt.Sprintf("%-24s %4d x %8s = %10s",
			line.ProductName, line.Quantity,
			money.Format(line.UnitPriceCents), money.Format(line.SubtotalCents()))
		if i == m.cursor {
			row = tui.SelectedStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row + "\n")
	}

	b.WriteString(fmt.Sprintf("\nTotal: %s\n\n", tui.TitleStyle.Render(money.Format(m.totalCents))))
	b.WriteString(tui.DimStyle.Render("+/-: quantity  d: remove  c: checkout  esc: back"))
	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
