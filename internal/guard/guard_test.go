package guard

import (
	"testing"

	"github.com/shopverse-dev/shopverse/internal/session"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		state    State
		required session.Role
		want     Decision
	}{
		{
			name:     "loading suspends the decision",
			state:    State{Loading: true},
			required: session.RoleShopper,
			want:     Decision{Kind: Wait},
		},
		{
			name:     "public views always allowed",
			state:    State{},
			required: session.RoleGuest,
			want:     Decision{Kind: Allow},
		},
		{
			name:     "guest hitting admin view goes to admin login",
			state:    State{},
			required: session.RoleAdmin,
			want:     Decision{Kind: Redirect, Target: RouteAdminLogin},
		},
		{
			name:     "guest hitting shopper view goes to shopper login",
			state:    State{},
			required: session.RoleShopper,
			want:     Decision{Kind: Redirect, Target: RouteShopperLogin},
		},
		{
			name:     "shopper hitting admin view goes to product listing",
			state:    State{Authenticated: true, Role: session.RoleShopper},
			required: session.RoleAdmin,
			want:     Decision{Kind: Redirect, Target: RouteProducts},
		},
		{
			name:     "admin hitting shopper view goes to admin dashboard",
			state:    State{Authenticated: true, Role: session.RoleAdmin},
			required: session.RoleShopper,
			want:     Decision{Kind: Redirect, Target: RouteAdminDashboard},
		},
		{
			name:     "admin allowed into admin view",
			state:    State{Authenticated: true, Role: session.RoleAdmin},
			required: session.RoleAdmin,
			want:     Decision{Kind: Allow},
		},
		{
			name:     "shopper allowed into shopper view",
			state:    State{Authenticated: true, Role: session.RoleShopper},
			required: session.RoleShopper,
			want:     Decision{Kind: Allow},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Decide(c.state, c.required)
			if got != c.want {
				t.Errorf("Decide(%+v, %v) = %+v, want %+v", c.state, c.required, got, c.want)
			}
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	state := State{Authenticated: true, Role: session.RoleShopper}
	first := Decide(state, session.RoleShopper)
	for i := 0; i < 100; i++ {
		if got := Decide(state, session.RoleShopper); got != first {
			t.Fatalf("Decide is not stable across calls: %+v vs %+v", got, first)
		}
	}
}
