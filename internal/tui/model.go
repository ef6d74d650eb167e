package tui

import (
	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/config"
	"github.com/shopverse-dev/shopverse/internal/guard"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/session"
)

// ViewState represents the screen currently on display.
type ViewState int

const (
	StateShop ViewState = iota
	StateDetail
	StateBasket
	StateCheckout
	StateOrders
	StateLogin
)

// Model holds the application state and collaborators shared by every
// view. Stores and the API client are injected at construction.
type Model struct {
	Cfg      *config.Config
	Client   *api.Client
	Sessions *session.Store
	Baskets  *basket.Store
	Logger   *log.Logger

	State ViewState
	Err   error

	// BasketCount backs the header badge: the sum of quantities, not
	// the line count.
	BasketCount int

	// PendingRoute remembers where a guard redirect came from so a
	// successful login can land the shopper where they were headed.
	PendingRoute guard.Route

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool
}

// NewModel creates the shared model.
func NewModel(cfg *config.Config, client *api.Client, sessions *session.Store, baskets *basket.Store, logger *log.Logger) *Model {
	return &Model{
		Cfg:      cfg,
		Client:   client,
		Sessions: sessions,
		Baskets:  baskets,
		Logger:   logger,
		State:    StateShop,
		Width:    80,
		Height:   24,
	}
}

// RouteState maps screens to guard routes for access decisions.
func RouteState(route guard.Route) ViewState {
	switch route {
	case guard.RouteBasket:
		return StateBasket
	case guard.RouteCheckout:
		return StateCheckout
	case guard.RouteOrders:
		return StateOrders
	case guard.RouteShopperLogin, guard.RouteAdminLogin:
		return StateLogin
	default:
		return StateShop
	}
}

// StateRoute is the inverse mapping, used when asking the guard whether
// the current session may enter a screen.
func StateRoute(state ViewState) guard.Route {
	switch state {
	case StateBasket:
		return guard.RouteBasket
	case StateCheckout:
		return guard.RouteCheckout
	case StateOrders:
		return guard.RouteOrders
	case StateLogin:
		return guard.RouteShopperLogin
	default:
		return guard.RouteProducts
	}
}

// RequiredRole returns the role a screen demands.
func RequiredRole(state ViewState) session.Role {
	switch state {
	case StateBasket, StateCheckout, StateOrders:
		return session.RoleShopper
	default:
		return session.RoleGuest
	}
}
