// Package views provides the screens of the terminal storefront.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/money"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// OpenDetailMsg is sent when the shopper selects a catalog item.
type OpenDetailMsg struct {
	ItemID int64
}

// AddItemMsg is sent when the shopper adds the selected item from the
// catalog without opening its detail.
type AddItemMsg struct {
	Item api.Item
}

// catalogEntry adapts an api.Item to the bubbles list delegate.
type catalogEntry struct {
	item api.Item
}

func (e catalogEntry) Title() string { return e.item.Name }

func (e catalogEntry) Description() string {
	stock := fmt.Sprintf("%d in stock", e.item.Quantity)
	if e.item.Quantity < 1 {
		stock = "out of stock"
	}
	return fmt.Sprintf("%s · %s · %s", money.Format(e.item.CostCents()), e.item.Category, stock)
}

func (e catalogEntry) FilterValue() string { return e.item.Name + " " + e.item.Category }

// ShopModel is the catalog browsing screen.
type ShopModel struct {
	list   list.Model
	width  int
	height int
}

// NewShopModel creates the catalog screen.
func NewShopModel(width, height int) ShopModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width-4, height-6)
	l.Title = "Catalog"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return ShopModel{list: l, width: width, height: height}
}

// SetItems replaces the catalog listing.
func (m *ShopModel) SetItems(items []api.Item) {
	entries := make([]list.Item, len(items))
	for i, it := range items {
		entries[i] = catalogEntry{item: it}
	}
	m.list.SetItems(entries)
}

// Filtering reports whether the list's filter input owns the keyboard.
func (m ShopModel) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the item under the cursor, if any.
func (m ShopModel) Selected() (api.Item, bool) {
	e, ok := m.list.SelectedItem().(catalogEntry)
	if !ok {
		return api.Item{}, false
	}
	return e.item, true
}

// Update handles messages for the catalog screen.
func (m ShopModel) Update(msg tea.Msg) (ShopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		// Let the list's filter input swallow keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case tui.KeyEnter:
			if item, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenDetailMsg{ItemID: item.ID} }
			}
		case "a":
			if item, ok := m.Selected(); ok && item.Quantity > 0 {
				return m, func() tea.Msg { return AddItemMsg{Item: item} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the catalog screen.
func (m ShopModel) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("enter: detail  a: add  b: basket  o: orders  l: log in/out  /: filter  ctrl+c: exit"))
	return b.String()
}
