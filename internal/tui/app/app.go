// Package app provides the main TUI application that wires all views together.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/checkout"
	"github.com/shopverse-dev/shopverse/internal/config"
	"github.com/shopverse-dev/shopverse/internal/guard"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/session"
	"github.com/shopverse-dev/shopverse/internal/tui"
	"github.com/shopverse-dev/shopverse/internal/tui/commands"
	"github.com/shopverse-dev/shopverse/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	shopView     views.ShopModel
	detailView   views.DetailModel
	basketView   views.BasketModel
	checkoutView views.CheckoutModel
	ordersView   views.OrdersModel
	loginView    views.LoginModel

	// Live checkout state; set while a run is active.
	gateway      *checkout.ManualGateway
	orch         *checkout.Orchestrator
	updates      chan checkout.Attempt
	checkoutDone bool
	navScheduled bool
}

// New creates the App with its stores and API client injected.
func New(cfg *config.Config, client *api.Client, sessions *session.Store, baskets *basket.Store, logger *log.Logger) *App {
	model := tui.NewModel(cfg, client, sessions, baskets, logger)

	return &App{
		model:        model,
		shopView:     views.NewShopModel(model.Width, model.Height),
		detailView:   views.NewDetailModel(model.Width, model.Height),
		basketView:   views.NewBasketModel(model.Width, model.Height),
		checkoutView: views.NewCheckoutModel(model.Width, model.Height),
		ordersView:   views.NewOrdersModel(model.Width, model.Height),
		loginView:    views.NewLoginModel(model.Width, model.Height),
	}
}

// Init loads the catalog and the persisted basket.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadCatalogCmd(a.model.Client),
		commands.LoadBasketCmd(a.model.Baskets),
	)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		a.shopView, _ = a.shopView.Update(msg)
		a.detailView, _ = a.detailView.Update(msg)
		a.basketView, _ = a.basketView.Update(msg)
		a.checkoutView, _ = a.checkoutView.Update(msg)
		a.ordersView, _ = a.ordersView.Update(msg)
		a.loginView, _ = a.loginView.Update(msg)
		return a, nil

	case tea.KeyMsg:
		a.model.Err = nil

		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

		if cmd, handled := a.handleGlobalKey(msg.String()); handled {
			return a, cmd
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	// Data arriving from commands.
	case tui.CatalogMsg:
		a.shopView.SetItems(msg.Items)
		return a, nil

	case tui.ItemMsg:
		a.detailView.SetItem(msg.Item, msg.Reviews)
		a.model.State = tui.StateDetail
		return a, nil

	case tui.BasketMsg:
		a.model.BasketCount = msg.Count
		a.basketView.SetLines(msg.Lines, msg.TotalCents)
		return a, nil

	case tui.OrdersMsg:
		a.ordersView.SetOrders(msg.Orders)
		return a, nil

	case tui.ErrorMsg:
		a.model.Err = msg.Err
		return a, nil

	// Session changes.
	case tui.LoggedInMsg:
		route := a.model.PendingRoute
		a.model.PendingRoute = ""
		if route == "" || msg.Role == session.RoleAdmin {
			a.model.State = tui.StateShop
			return a, nil
		}
		return a, a.navigate(route)

	case tui.LoggedOutMsg:
		a.model.State = tui.StateShop
		return a, nil

	// View intents.
	case tui.NavigateMsg:
		return a, a.navigate(msg.Route)

	case views.BackMsg:
		a.model.State = tui.StateShop
		return a, nil

	case views.OpenDetailMsg:
		return a, commands.LoadItemCmd(a.model.Client, msg.ItemID)

	case views.AddItemMsg:
		return a, commands.AddToBasketCmd(a.model.Client, a.model.Baskets, a.model.Logger, msg.Item, 1)

	case views.AddQuantityMsg:
		return a, commands.AddToBasketCmd(a.model.Client, a.model.Baskets, a.model.Logger, msg.Item, msg.Quantity)

	case views.ChangeQuantityMsg:
		return a, commands.SetQuantityCmd(a.model.Baskets, a.model.Logger, msg.ProductID, msg.Quantity)

	case views.RemoveLineMsg:
		return a, commands.RemoveLineCmd(a.model.Baskets, a.model.Logger, msg.ProductID)

	case views.SubmitLoginMsg:
		return a, commands.LoginCmd(a.model.Client, a.model.Sessions, a.model.Logger, msg.Email, msg.Password, msg.AsAdmin)

	case views.StartCheckoutMsg:
		return a, a.startCheckout()

	case views.CompleteReceiptMsg:
		if a.gateway != nil {
			a.gateway.Complete(msg.OrderRef, checkout.Completion{
				PaymentID: msg.PaymentID,
				Signature: msg.Signature,
			})
		}
		return a, nil

	case tui.AttemptMsg:
		a.checkoutView.ApplyAttempt(msg.Attempt)
		cmds := []tea.Cmd{commands.WaitAttemptCmd(a.updates)}
		if cmd := a.maybeScheduleNav(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tui.CheckoutDoneMsg:
		a.checkoutDone = true
		a.checkoutView.SetDone()
		cmds := []tea.Cmd{commands.LoadBasketCmd(a.model.Baskets)}
		if cmd := a.maybeScheduleNav(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	// Route remaining messages to the active view.
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateShop:
		a.shopView, cmd = a.shopView.Update(msg)
	case tui.StateDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case tui.StateBasket:
		a.basketView, cmd = a.basketView.Update(msg)
	case tui.StateCheckout:
		a.checkoutView, cmd = a.checkoutView.Update(msg)
	case tui.StateOrders:
		a.ordersView, cmd = a.ordersView.Update(msg)
	case tui.StateLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	}
	return a, cmd
}

// handleGlobalKey handles screen-switch keys that work outside text
// entry contexts.
func (a *App) handleGlobalKey(k string) (tea.Cmd, bool) {
	if !a.globalKeysActive() {
		return nil, false
	}

	switch k {
	case "b":
		return a.navigate(guard.RouteBasket), true
	case "o":
		return a.navigate(guard.RouteOrders), true
	case "l":
		if a.model.Sessions.IsAuthenticated() {
			return commands.LogoutCmd(a.model.Sessions, a.model.Logger), true
		}
		return a.navigate(guard.RouteShopperLogin), true
	}
	return nil, false
}

// globalKeysActive reports whether a text input currently owns the
// keyboard.
func (a *App) globalKeysActive() bool {
	switch a.model.State {
	case tui.StateLogin:
		return false
	case tui.StateShop:
		return !a.shopView.Filtering()
	case tui.StateCheckout:
		return !a.checkoutView.Entering()
	default:
		return true
	}
}

// navigate runs the route guard and switches screens when allowed. A
// redirect to a login route remembers the intended destination.
func (a *App) navigate(route guard.Route) tea.Cmd {
	target := tui.RouteState(route)
	decision := guard.Decide(guard.FromStore(a.model.Sessions), tui.RequiredRole(target))

	switch decision.Kind {
	case guard.Wait:
		// Session still hydrating; render nothing different yet.
		return nil

	case guard.Redirect:
		switch decision.Target {
		case guard.RouteShopperLogin, guard.RouteAdminLogin:
			a.model.PendingRoute = route
			a.loginView.SetNotice("log in to continue")
			a.model.State = tui.StateLogin
		default:
			a.model.State = tui.RouteState(decision.Target)
		}
		return nil
	}

	a.model.State = target
	switch target {
	case tui.StateShop:
		return commands.LoadCatalogCmd(a.model.Client)
	case tui.StateBasket:
		return commands.LoadBasketCmd(a.model.Baskets)
	case tui.StateOrders:
		return commands.LoadOrdersCmd(a.model.Client)
	}
	return nil
}

// startCheckout builds a fresh orchestrator wired to the manual gateway
// and begins the run.
func (a *App) startCheckout() tea.Cmd {
	a.gateway = checkout.NewManualGateway(a.model.Cfg.Checkout.GatewayKey)
	a.updates = make(chan checkout.Attempt, 256)
	a.checkoutDone = false
	a.navScheduled = false

	a.orch = checkout.New(a.model.Client, a.gateway, a.model.Baskets, nil, a.model.Logger, 0)
	updates := a.updates
	a.orch.OnUpdate(func(att checkout.Attempt) {
		updates <- att
	})

	a.checkoutView.Reset()
	a.model.State = tui.StateCheckout

	return tea.Batch(
		commands.RunCheckoutCmd(a.orch),
		commands.WaitAttemptCmd(a.updates),
	)
}

// maybeScheduleNav schedules the post-checkout jump to the order
// history once the run is done and no line still waits on the gateway.
func (a *App) maybeScheduleNav() tea.Cmd {
	if !a.checkoutDone || a.navScheduled || a.orch == nil {
		return nil
	}
	for _, att := range a.orch.Attempts() {
		if !att.Status.IsTerminal() {
			return nil
		}
	}
	a.navScheduled = true

	delay := time.Duration(a.model.Cfg.Checkout.NavDelay) * time.Second
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return tui.NavigateMsg{Route: guard.RouteOrders}
	})
}

// View renders the header, the active screen, and any error line.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	switch a.model.State {
	case tui.StateShop:
		b.WriteString(a.shopView.View())
	case tui.StateDetail:
		b.WriteString(a.detailView.View())
	case tui.StateBasket:
		b.WriteString(a.basketView.View())
	case tui.StateCheckout:
		b.WriteString(a.checkoutView.View())
	case tui.StateOrders:
		b.WriteString(a.ordersView.View())
	case tui.StateLogin:
		b.WriteString(a.loginView.View())
	}

	if a.model.Err != nil {
		b.WriteString("\n" + tui.ErrorStyle.Render(a.model.Err.Error()))
	}
	if a.model.CtrlCPending {
		b.WriteString("\n" + tui.WarningStyle.Render("Press ctrl+c again to exit"))
	}
	return b.String()
}

// renderHeader shows the store name, the basket badge, and who is
// logged in.
func (a *App) renderHeader() string {
	left := tui.TitleStyle.Render("Shopverse")
	badge := tui.BadgeStyle.Render(fmt.Sprintf("basket %d", a.model.BasketCount))

	who := tui.DimStyle.Render("guest")
	if cur := a.model.Sessions.Current(); cur != nil {
		who = tui.DimStyle.Render(fmt.Sprintf("%s (%s)", cur.DisplayName, cur.Role))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", badge, "  ", who)
}
