package commands

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// LoadBasketCmd reads the basket for display.
func LoadBasketCmd(store *basket.Store) tea.Cmd {
	return func() tea.Msg {
		return readBasket(store)
	}
}

// AddToBasketCmd snapshots the item's price and stock, merges it into
// the basket, and reports the new basket state.
func AddToBasketCmd(client *api.Client, store *basket.Store, logger *log.Logger, item api.Item, quantity int) tea.Cmd {
	return func() tea.Msg {
		p := basket.Product{
			ID:             strconv.FormatInt(item.ID, 10),
			Name:           item.Name,
			UnitPriceCents: item.CostCents(),
			Stock:          item.Quantity,
		}
		if err := store.Add(p, quantity); err != nil {
			return tui.ErrorMsg{Err: err}
		}
		_ = logger.Append(log.LogEvent{Event: log.EventBasketAdd, ProductID: p.ID, Quantity: quantity})
		return readBasket(store)
	}
}

// SetQuantityCmd changes a line's quantity; zero removes the line.
func SetQuantityCmd(store *basket.Store, logger *log.Logger, productID string, quantity int) tea.Cmd {
	return func() tea.Msg {
		if err := store.SetQuantity(productID, quantity); err != nil {
			return tui.ErrorMsg{Err: err}
		}
		_ = logger.Append(log.LogEvent{Event: log.EventBasketSetQty, ProductID: productID, Quantity: quantity})
		return readBasket(store)
	}
}

// RemoveLineCmd deletes a basket line.
func RemoveLineCmd(store *basket.Store, logger *log.Logger, productID string) tea.Cmd {
	return func() tea.Msg {
		if err := store.Remove(productID); err != nil {
			return tui.ErrorMsg{Err: err}
		}
		_ = logger.Append(log.LogEvent{Event: log.EventBasketRemove, ProductID: productID})
		return readBasket(store)
	}
}

func readBasket(store *basket.Store) tea.Msg {
	lines, err := store.Lines()
	if err != nil {
		return tui.ErrorMsg{Err: err}
	}
	total, err := store.Total()
	if err != nil {
		return tui.ErrorMsg{Err: err}
	}
	count, err := store.Count()
	if err != nil {
		return tui.ErrorMsg{Err: err}
	}
	return tui.BasketMsg{Lines: lines, TotalCents: total, Count: count}
}
