// Package guard decides whether the current session may enter a
// role-restricted view. Decide is a pure function with no side effects
// and is safe to call on every render.
package guard

import "github.com/shopverse-dev/shopverse/internal/session"

// Route names a navigable view of the client.
type Route string

const (
	RouteSiteRoot       Route = "/"
	RouteProducts       Route = "/products"
	RouteShopperLogin   Route = "/user/login"
	RouteAdminLogin     Route = "/admin/login"
	RouteAdminDashboard Route = "/admin/dashboard"
	RouteBasket         Route = "/basket"
	RouteCheckout       Route = "/checkout"
	RouteOrders         Route = "/orders"
)

// Kind classifies a guard decision.
type Kind int

const (
	// Wait means the session is still hydrating; the caller must render
	// a neutral waiting state, not a decision.
	Wait Kind = iota
	Allow
	Redirect
)

// Decision is the outcome of a guard check. Target is set only for
// Redirect.
type Decision struct {
	Kind   Kind
	Target Route
}

// State is the session snapshot the guard decides on.
type State struct {
	Loading       bool
	Authenticated bool
	Role          session.Role
}

// FromStore reads the guard-relevant state out of a session store.
func FromStore(s *session.Store) State {
	return State{
		Loading:       s.Loading(),
		Authenticated: s.IsAuthenticated(),
		Role:          s.Role(),
	}
}

// Decide admits or denies entry to a view requiring the given role.
// session.RoleGuest as the requirement marks a public view.
func Decide(state State, required session.Role) Decision {
	if state.Loading {
		return Decision{Kind: Wait}
	}
	if required == session.RoleGuest {
		return Decision{Kind: Allow}
	}
	if !state.Authenticated {
		return Decision{Kind: Redirect, Target: loginFor(required)}
	}
	if state.Role != required {
		return Decision{Kind: Redirect, Target: homeFor(state.Role)}
	}
	return Decision{Kind: Allow}
}

// loginFor maps a required role to its login view.
func loginFor(required session.Role) Route {
	if required == session.RoleAdmin {
		return RouteAdminLogin
	}
	return RouteShopperLogin
}

// homeFor maps an actual role to its home view.
func homeFor(role session.Role) Route {
	switch role {
	case session.RoleAdmin:
		return RouteAdminDashboard
	case session.RoleShopper:
		return RouteProducts
	default:
		return RouteSiteRoot
	}
}
