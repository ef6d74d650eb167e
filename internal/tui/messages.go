package tui

import (
	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/checkout"
	"github.com/shopverse-dev/shopverse/internal/guard"
	"github.com/shopverse-dev/shopverse/internal/session"
)

// ============================================================================
// Navigation Messages
// ============================================================================

// NavigateMsg asks the app to change screens. The guard decides whether
// the navigation is allowed for the current session.
type NavigateMsg struct {
	Route guard.Route
}

// ============================================================================
// Catalog Messages
// ============================================================================

// CatalogMsg delivers the catalog listing.
type CatalogMsg struct {
	Items []api.Item
}

// ItemMsg delivers one product with its reviews for the detail screen.
type ItemMsg struct {
	Item    *api.Item
	Reviews []api.Review
}

// ============================================================================
// Basket Messages
// ============================================================================

// BasketMsg delivers the current basket lines after any mutation.
type BasketMsg struct {
	Lines      []basket.Line
	TotalCents int64
	Count      int
}

// ============================================================================
// Session Messages
// ============================================================================

// LoggedInMsg signals a successful login.
type LoggedInMsg struct {
	Identity    string
	DisplayName string
	Role        session.Role
}

// LoggedOutMsg signals that the session was cleared.
type LoggedOutMsg struct{}

// ============================================================================
// Checkout Messages
// ============================================================================

// AttemptMsg delivers a checkout attempt status change for live display.
type AttemptMsg struct {
	Attempt checkout.Attempt
}

// CheckoutDoneMsg signals that every remote-order creation has resolved
// and the basket has been cleared. Gateway completions may still be
// pending; AttemptMsg keeps arriving for those.
type CheckoutDoneMsg struct {
	Attempts []checkout.Attempt
}

// ============================================================================
// Orders Messages
// ============================================================================

// OrdersMsg delivers the shopper's order history.
type OrdersMsg struct {
	Orders []api.Order
}

// ============================================================================
// Utility Messages
// ============================================================================

// ErrorMsg is a generic error surfaced in the active view.
type ErrorMsg struct {
	Err error
}

// CtrlCResetMsg clears the exit confirmation after its timeout.
type CtrlCResetMsg struct{}
