package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/checkout"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// RunCheckoutCmd runs the orchestrator over the current basket. Status
// changes stream through updates; the command returns once every
// remote-order creation has resolved and the basket is cleared.
func RunCheckoutCmd(orch *checkout.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		attempts, err := orch.Run(context.Background())
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.CheckoutDoneMsg{Attempts: attempts}
	}
}

// WaitAttemptCmd delivers the next attempt status change from the
// orchestrator's update channel. Reissue it after each message.
func WaitAttemptCmd(updates <-chan checkout.Attempt) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-updates
		if !ok {
			return nil
		}
		return tui.AttemptMsg{Attempt: a}
	}
}
