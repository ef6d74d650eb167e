package checkout

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/guard"
)

type fakeOrders struct {
	mu        sync.Mutex
	failNames map[string]error // CreateOrder failures by item name
	verifyErr error
	created   []api.CreateOrderRequest
	verified  []api.VerifyPaymentRequest
	onCreate  func(api.CreateOrderRequest)
}

func (f *fakeOrders) CreateOrder(_ context.Context, req api.CreateOrderRequest) (*api.GatewayOrder, error) {
	f.mu.Lock()
	f.created = append(f.created, req)
	hook := f.onCreate
	err := f.failNames[req.ItemName]
	f.mu.Unlock()

	if hook != nil {
		hook(req)
	}
	if err != nil {
		return nil, err
	}
	return &api.GatewayOrder{ID: "order_" + req.ItemName, Amount: int64(req.Total * 100), Currency: "USD"}, nil
}

func (f *fakeOrders) VerifyPayment(_ context.Context, req api.VerifyPaymentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = append(f.verified, req)
	return f.verifyErr
}

func (f *fakeOrders) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeGateway struct {
	loadErr     error
	mu          sync.Mutex
	completions map[string]func(Completion) // keyed by gateway order ref
}

func (g *fakeGateway) Load(context.Context) error {
	return g.loadErr
}

func (g *fakeGateway) Open(_ context.Context, order api.GatewayOrder, _ string, onComplete func(Completion)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.completions == nil {
		g.completions = make(map[string]func(Completion))
	}
	g.completions[order.ID] = onComplete
	return nil
}

// finish simulates the gateway invoking a completion handler.
func (g *fakeGateway) finish(orderRef, paymentID string) {
	g.mu.Lock()
	fn := g.completions[orderRef]
	g.mu.Unlock()
	if fn != nil {
		fn(Completion{PaymentID: paymentID, OrderID: orderRef, Signature: "sig-" + paymentID})
	}
}

type fakeNav struct {
	ch chan guard.Route
}

func (n *fakeNav) NavigateTo(route guard.Route) {
	n.ch <- route
}

func newTestBasket(t *testing.T, lines ...basket.Product) *basket.Store {
	t.Helper()
	store, err := basket.NewStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	for _, p := range lines {
		if err := store.Add(p, 1); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return store
}

func attemptFor(t *testing.T, attempts []Attempt, productID string) Attempt {
	t.Helper()
	for _, a := range attempts {
		if a.ProductID == productID {
			return a
		}
	}
	t.Fatalf("no attempt for product %s in %+v", productID, attempts)
	return Attempt{}
}

func TestRunContinuesPastCreateFailureAndClearsBasket(t *testing.T) {
	store := newTestBasket(t)
	if err := store.Add(basket.Product{ID: "1", Name: "A", UnitPriceCents: 100, Stock: 5}, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(basket.Product{ID: "2", Name: "B", UnitPriceCents: 50, Stock: 5}, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	orders := &fakeOrders{failNames: map[string]error{"B": errors.New("payment service down")}}
	// The basket must still be intact while creations are resolving;
	// clearing happens only after the last creation resolves.
	orders.onCreate = func(api.CreateOrderRequest) {
		count, err := store.Count()
		if err != nil {
			t.Errorf("Count during run: %v", err)
		}
		if count == 0 {
			t.Error("basket was cleared before all creation attempts resolved")
		}
	}

	o := New(orders, &fakeGateway{}, store, nil, nil, time.Millisecond)
	attempts, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	a := attemptFor(t, attempts, "1")
	if a.Status != StatusAwaitingGateway {
		t.Errorf("line A status = %s, want AWAITING_GATEWAY", a.Status)
	}
	if a.SubtotalCents != 200 {
		t.Errorf("line A subtotal = %d, want 200", a.SubtotalCents)
	}
	if a.GatewayOrderRef != "order_A" {
		t.Errorf("line A order ref = %q", a.GatewayOrderRef)
	}

	b := attemptFor(t, attempts, "2")
	if b.Status != StatusFailed {
		t.Errorf("line B status = %s, want FAILED", b.Status)
	}
	if b.Reason == "" {
		t.Error("failed line must carry a reason")
	}

	count, _ := store.Count()
	if count != 0 {
		t.Errorf("basket count after run = %d, want 0", count)
	}
}

func TestGatewayLoadFailureAbortsBeforeAnyLine(t *testing.T) {
	store := newTestBasket(t, basket.Product{ID: "1", Name: "A", UnitPriceCents: 100, Stock: 5})

	orders := &fakeOrders{}
	o := New(orders, &fakeGateway{loadErr: errors.New("script unreachable")}, store, nil, nil, time.Millisecond)

	if _, err := o.Run(context.Background()); err == nil {
		t.Fatal("Run should fail when the gateway cannot load")
	}
	if orders.createdCount() != 0 {
		t.Errorf("created %d orders, want 0", orders.createdCount())
	}
	count, _ := store.Count()
	if count != 1 {
		t.Errorf("basket count = %d, want 1 (basket must remain unmodified)", count)
	}
}

func TestEmptyBasket(t *testing.T) {
	store := newTestBasket(t)
	o := New(&fakeOrders{}, &fakeGateway{}, store, nil, nil, time.Millisecond)

	if _, err := o.Run(context.Background()); !errors.Is(err, ErrEmptyBasket) {
		t.Errorf("err = %v, want ErrEmptyBasket", err)
	}
}

func TestCompletionsApplyOutOfOrder(t *testing.T) {
	store := newTestBasket(t,
		basket.Product{ID: "1", Name: "A", UnitPriceCents: 100, Stock: 5},
		basket.Product{ID: "2", Name: "B", UnitPriceCents: 50, Stock: 5},
	)

	orders := &fakeOrders{}
	gw := &fakeGateway{}
	o := New(orders, gw, store, nil, nil, time.Millisecond)

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Completion ordering does not match initiation ordering.
	gw.finish("order_B", "pay_2")
	gw.finish("order_A", "pay_1")

	attempts := o.Attempts()
	a := attemptFor(t, attempts, "1")
	b := attemptFor(t, attempts, "2")
	if a.Status != StatusConfirmed || a.PaymentRef != "pay_1" {
		t.Errorf("line A = %+v, want confirmed with pay_1", a)
	}
	if b.Status != StatusConfirmed || b.PaymentRef != "pay_2" {
		t.Errorf("line B = %+v, want confirmed with pay_2", b)
	}

	if len(orders.verified) != 2 {
		t.Fatalf("verified %d payments, want 2", len(orders.verified))
	}
	if orders.verified[0].OrderID != "order_B" {
		t.Errorf("first verification = %q, want order_B (completion order)", orders.verified[0].OrderID)
	}
}

func TestVerificationFailureMarksOnlyThatLine(t *testing.T) {
	store := newTestBasket(t,
		basket.Product{ID: "1", Name: "A", UnitPriceCents: 100, Stock: 5},
		basket.Product{ID: "2", Name: "B", UnitPriceCents: 50, Stock: 5},
	)

	orders := &fakeOrders{verifyErr: errors.New("signature mismatch")}
	gw := &fakeGateway{}
	o := New(orders, gw, store, nil, nil, time.Millisecond)

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	gw.finish("order_A", "pay_1")

	attempts := o.Attempts()
	a := attemptFor(t, attempts, "1")
	if a.Status != StatusFailed {
		t.Errorf("line A status = %s, want FAILED after verification rejection", a.Status)
	}
	b := attemptFor(t, attempts, "2")
	if b.Status != StatusAwaitingGateway {
		t.Errorf("line B status = %s, want AWAITING_GATEWAY (run not aborted)", b.Status)
	}
}

func TestTerminalAttemptIsImmutable(t *testing.T) {
	store := newTestBasket(t, basket.Product{ID: "1", Name: "A", UnitPriceCents: 100, Stock: 5})

	orders := &fakeOrders{}
	gw := &fakeGateway{}
	o := New(orders, gw, store, nil, nil, time.Millisecond)

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	gw.finish("order_A", "pay_1")
	gw.finish("order_A", "pay_late")

	a := attemptFor(t, o.Attempts(), "1")
	if a.Status != StatusConfirmed || a.PaymentRef != "pay_1" {
		t.Errorf("attempt = %+v, late completion must not mutate a confirmed attempt", a)
	}
	if len(orders.verified) != 1 {
		t.Errorf("verified %d payments, want 1", len(orders.verified))
	}
}

func TestNavigationScheduledAfterDelay(t *testing.T) {
	store := newTestBasket(t, basket.Product{ID: "1", Name: "A", UnitPriceCents: 100, Stock: 5})

	nav := &fakeNav{ch: make(chan guard.Route, 1)}
	o := New(&fakeOrders{}, &fakeGateway{}, store, nav, nil, 10*time.Millisecond)

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	select {
	case route := <-nav.ch:
		if route != guard.RouteOrders {
			t.Errorf("navigated to %s, want %s", route, guard.RouteOrders)
		}
	case <-time.After(time.Second):
		t.Fatal("navigation to order history was never scheduled")
	}
}

func TestOnUpdateSeesEveryTransition(t *testing.T) {
	store := newTestBasket(t, basket.Product{ID: "1", Name: "A", UnitPriceCents: 100, Stock: 5})

	orders := &fakeOrders{}
	gw := &fakeGateway{}
	o := New(orders, gw, store, nil, nil, time.Millisecond)

	var mu sync.Mutex
	var seen []Status
	o.OnUpdate(func(a Attempt) {
		mu.Lock()
		seen = append(seen, a.Status)
		mu.Unlock()
	})

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	gw.finish("order_A", "pay_1")

	mu.Lock()
	defer mu.Unlock()
	want := []Status{StatusPending, StatusAwaitingGateway, StatusVerifying, StatusConfirmed}
	if len(seen) != len(want) {
		t.Fatalf("saw %d updates %v, want %v", len(seen), seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("update %d = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestStatusMachine(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusAwaitingGateway},
		{StatusPending, StatusFailed},
		{StatusAwaitingGateway, StatusVerifying},
		{StatusAwaitingGateway, StatusFailed},
		{StatusVerifying, StatusConfirmed},
		{StatusVerifying, StatusFailed},
	}
	for _, c := range legal {
		if !CanTransitionTo(c.from, c.to) {
			t.Errorf("CanTransitionTo(%s, %s) = false, want true", c.from, c.to)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusConfirmed, StatusFailed},
		{StatusFailed, StatusPending},
		{StatusPending, StatusVerifying},
		{StatusAwaitingGateway, StatusConfirmed},
	}
	for _, c := range illegal {
		if CanTransitionTo(c.from, c.to) {
			t.Errorf("CanTransitionTo(%s, %s) = true, want false", c.from, c.to)
		}
	}

	if !StatusConfirmed.IsTerminal() || !StatusFailed.IsTerminal() {
		t.Error("CONFIRMED and FAILED must be terminal")
	}
	if StatusAwaitingGateway.IsTerminal() {
		t.Error("AWAITING_GATEWAY must not be terminal")
	}
}
