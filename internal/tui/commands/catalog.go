// Package commands provides Bubble Tea commands that talk to the stores
// and the storefront API off the UI goroutine.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// LoadCatalogCmd fetches the catalog listing.
func LoadCatalogCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := client.Items(context.Background())
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.CatalogMsg{Items: items}
	}
}

// SearchCatalogCmd fetches the catalog filtered by keyword.
func SearchCatalogCmd(client *api.Client, keyword string) tea.Cmd {
	return func() tea.Msg {
		items, err := client.SearchItems(context.Background(), keyword)
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.CatalogMsg{Items: items}
	}
}

// LoadItemCmd fetches one product and its reviews for the detail screen.
func LoadItemCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		item, err := client.Item(context.Background(), id)
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		reviews, err := client.ItemReviews(context.Background(), id)
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.ItemMsg{Item: item, Reviews: reviews}
	}
}
