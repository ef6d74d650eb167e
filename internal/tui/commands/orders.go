package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// LoadOrdersCmd fetches the shopper's order history.
func LoadOrdersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.MyOrders(context.Background())
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.OrdersMsg{Orders: orders}
	}
}
