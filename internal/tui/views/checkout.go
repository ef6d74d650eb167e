package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/checkout"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// CompleteReceiptMsg feeds a pasted gateway receipt into an awaiting
// payment flow.
type CompleteReceiptMsg struct {
	OrderRef  string
	PaymentID string
	Signature string
}

// CheckoutModel shows a running checkout: one row per basket line,
// updated live as orders are created, receipts arrive, and payments
// verify. Awaiting rows accept a pasted receipt.
type CheckoutModel struct {
	attempts []checkout.Attempt
	byID     map[string]int
	cursor   int
	done     bool

	input    textinput.Model
	entering bool

	width  int
	height int
}

// NewCheckoutModel creates the checkout screen.
func NewCheckoutModel(width, height int) CheckoutModel {
	ti := textinput.New()
	ti.Placeholder = "paymentId signature"
	ti.CharLimit = 256
	ti.Width = 60
	return CheckoutModel{
		byID:   make(map[string]int),
		input:  ti,
		width:  width,
		height: height,
	}
}

// Reset clears the screen for a fresh run.
func (m *CheckoutModel) Reset() {
	m.attempts = nil
	m.byID = make(map[string]int)
	m.cursor = 0
	m.done = false
	m.entering = false
	m.input.SetValue("")
	m.input.Blur()
}

// ApplyAttempt inserts or updates a row, preserving basket order.
func (m *CheckoutModel) ApplyAttempt(a checkout.Attempt) {
	if i, ok := m.byID[a.ID]; ok {
		m.attempts[i] = a
		return
	}
	m.byID[a.ID] = len(m.attempts)
	m.attempts = append(m.attempts, a)
}

// SetDone marks the run's creation phase finished.
func (m *CheckoutModel) SetDone() {
	m.done = true
}

// Entering reports whether the receipt input owns the keyboard.
func (m CheckoutModel) Entering() bool {
	return m.entering
}

// Update handles messages for the checkout screen.
func (m CheckoutModel) Update(msg tea.Msg) (CheckoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.entering {
			switch msg.String() {
			case tui.KeyEsc:
				m.entering = false
				m.input.Blur()
				return m, nil
			case tui.KeyEnter:
				value := strings.TrimSpace(m.input.Value())
				m.entering = false
				m.input.SetValue("")
				m.input.Blur()

				fields := strings.Fields(value)
				att, ok := m.selected()
				if !ok || len(fields) < 2 {
					return m, nil
				}
				ref := att.GatewayOrderRef
				return m, func() tea.Msg {
					return CompleteReceiptMsg{OrderRef: ref, PaymentID: fields[0], Signature: fields[1]}
				}
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return BackMsg{} }
		case tui.KeyUp, "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case tui.KeyDown, "j":
			if m.cursor < len(m.attempts)-1 {
				m.cursor++
			}
		case tui.KeyEnter:
			if att, ok := m.selected(); ok && att.Status == checkout.StatusAwaitingGateway {
				m.entering = true
				m.input.Focus()
				return m, textinput.Blink
			}
		}
	}
	return m, nil
}

func (m CheckoutModel) selected() (checkout.Attempt, bool) {
	if m.cursor < 0 || m.cursor >= len(m.attempts) {
		return checkout.Attempt{}, false
	}
	return m.attempts[m.cursor], true
}

// View renders the checkout screen.
func (m CheckoutModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Checkout"))
	b.WriteString("\n\n")

	if len(m.attempts) == 0 {
		b.WriteString(tui.DimStyle.Render("Starting..."))
		return tui.BoxStyle.Width(m.width - 4).Render(b.String())
	}

	for i, a := range m.attempts {
		detail := string(a.Status)
		switch {
		case a.Status == checkout.StatusFailed && a.Reason != "":
			detail = tui.ErrorStyle.Render(a.Reason)
		case a.Status == checkout.StatusConfirmed:
			detail = tui.SuccessStyle.Render("payment " + a.PaymentRef)
		case a.Status == checkout.StatusAwaitingGateway:
			detail = tui.WarningStyle.Render("awaiting receipt, press enter")
		}

		cursor := "  "
		if i == m.cursor && !m.entering {
			cursor = tui.SelectedStyle.Render("> ")
		}
		row := fmt.Sprintf("%s%s %-24s x%-3d %8s  %s",
			cursor, tui.StatusIcon(a.Status), a.ProductName, a.Quantity,
			money.Format(a.SubtotalCents), detail)
		b.WriteString(row + "\n")
	}

	if m.entering {
		b.WriteString("\nReceipt: " + m.input.View() + "\n")
		b.WriteString(tui.DimStyle.Render("enter: submit  esc: cancel"))
	} else {
		b.WriteString("\n")
		if m.done {
			b.WriteString(tui.SuccessStyle.Render("Orders created; basket cleared.") + "\n")
		}
		b.WriteString(tui.DimStyle.Render("enter: paste receipt  o: orders  esc: back"))
	}
	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
