package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/basket"
	"github.com/shopverse-dev/shopverse/internal/guard"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/money"
)

// ErrEmptyBasket is returned when a run starts with nothing to buy.
var ErrEmptyBasket = errors.New("checkout: basket is empty")

// OrdersAPI is the slice of the storefront API the orchestrator needs.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.GatewayOrder, error)
	VerifyPayment(ctx context.Context, req api.VerifyPaymentRequest) error
}

// BasketStore is the slice of the basket store the orchestrator needs.
type BasketStore interface {
	Lines() ([]basket.Line, error)
	Clear() error
}

// Navigator schedules view changes on behalf of the orchestrator.
type Navigator interface {
	NavigateTo(route guard.Route)
}

// Attempt tracks a single basket line through remote-order creation,
// gateway interaction, and verification. Once terminal it never changes.
type Attempt struct {
	ID              string
	ProductID       string
	ProductName     string
	Quantity        int
	SubtotalCents   int64
	GatewayOrderRef string
	PaymentRef      string
	Status          Status
	Reason          string
}

// Orchestrator runs a checkout: one remote order per basket line,
// created sequentially, with gateway completions arriving out of order
// on their own goroutines. Stores are injected; the orchestrator holds
// no ambient global state.
type Orchestrator struct {
	orders   OrdersAPI
	gateway  Gateway
	basket   BasketStore
	nav      Navigator
	logger   *log.Logger
	navDelay time.Duration

	mu       sync.Mutex
	attempts []*Attempt
	byID     map[string]*Attempt
	onUpdate func(Attempt)
}

// New creates an Orchestrator. logger may be nil to disable event
// logging; nav may be nil when no view to navigate exists.
func New(orders OrdersAPI, gateway Gateway, basketStore BasketStore, nav Navigator, logger *log.Logger, navDelay time.Duration) *Orchestrator {
	return &Orchestrator{
		orders:   orders,
		gateway:  gateway,
		basket:   basketStore,
		nav:      nav,
		logger:   logger,
		navDelay: navDelay,
		byID:     make(map[string]*Attempt),
	}
}

// OnUpdate registers a hook fired with a copy of an attempt after every
// status change. Used by the UI to render live progress. Must be set
// before Run.
func (o *Orchestrator) OnUpdate(fn func(Attempt)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onUpdate = fn
}

// Attempts returns a snapshot of every attempt in basket order.
func (o *Orchestrator) Attempts() []Attempt {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Attempt, len(o.attempts))
	for i, a := range o.attempts {
		out[i] = *a
	}
	return out
}

// Run executes one checkout over the current basket. It returns after
// every line's remote-order creation has resolved one way or the other;
// gateway completions keep arriving afterwards and are applied to the
// per-line attempts. The basket is cleared unconditionally once all
// creations have resolved, regardless of later confirmations, and
// navigation to the order history is scheduled after a fixed delay.
func (o *Orchestrator) Run(ctx context.Context) ([]Attempt, error) {
	lines, err := o.basket.Lines()
	if err != nil {
		return nil, fmt.Errorf("read basket: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyBasket
	}

	if err := o.gateway.Load(ctx); err != nil {
		o.logEvent(log.LogEvent{Event: log.EventGatewayFailed, Error: err.Error()})
		return nil, fmt.Errorf("load payment gateway: %w", err)
	}

	var total int64
	for _, l := range lines {
		total += l.SubtotalCents()
	}
	o.logEvent(log.LogEvent{Event: log.EventCheckoutStarted, Lines: len(lines), AmountCents: total})

	// Strictly sequential creation: line n+1 starts only after line n's
	// creation call resolves. Completions are not waited for here.
	for _, line := range lines {
		o.runLine(ctx, line)
	}

	if err := o.basket.Clear(); err != nil {
		return o.Attempts(), fmt.Errorf("clear basket: %w", err)
	}
	o.logEvent(log.LogEvent{Event: log.EventCheckoutComplete, Lines: len(lines)})

	if o.nav != nil {
		time.AfterFunc(o.navDelay, func() {
			o.nav.NavigateTo(guard.RouteOrders)
		})
	}

	return o.Attempts(), nil
}

// runLine creates the remote order for one line and opens the gateway
// flow. Failures mark the line and let the loop continue.
func (o *Orchestrator) runLine(ctx context.Context, line basket.Line) {
	att := &Attempt{
		ID:            uuid.New().String(),
		ProductID:     line.ProductID,
		ProductName:   line.ProductName,
		Quantity:      line.Quantity,
		SubtotalCents: line.SubtotalCents(),
		Status:        StatusPending,
	}

	o.mu.Lock()
	o.attempts = append(o.attempts, att)
	o.byID[att.ID] = att
	o.mu.Unlock()
	o.notify(att)

	itemID, err := strconv.ParseInt(line.ProductID, 10, 64)
	if err != nil {
		o.fail(att.ID, fmt.Sprintf("invalid product id %q", line.ProductID))
		return
	}

	order, err := o.orders.CreateOrder(ctx, api.CreateOrderRequest{
		ItemID:   itemID,
		ItemName: line.ProductName,
		Total:    money.ToFloat(line.SubtotalCents()),
		Quantity: line.Quantity,
	})
	if err != nil {
		o.fail(att.ID, err.Error())
		return
	}

	o.transition(att.ID, StatusAwaitingGateway, func(a *Attempt) {
		a.GatewayOrderRef = order.ID
	})
	o.logEvent(log.LogEvent{
		Event:       log.EventOrderCreated,
		AttemptID:   att.ID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		AmountCents: line.SubtotalCents(),
		OrderRef:    order.ID,
	})

	// Completion is fire-and-forget, correlated back by attempt ID;
	// never through closure over the loop variable.
	attemptID := att.ID
	if err := o.gateway.Open(ctx, *order, line.ProductName, func(c Completion) {
		o.complete(attemptID, c)
	}); err != nil {
		o.fail(att.ID, fmt.Sprintf("open gateway: %v", err))
	}
}

// complete applies a gateway completion to its attempt and verifies the
// payment. Completions for unknown or already-terminal attempts are
// dropped: an attempt is immutable once confirmed or failed.
func (o *Orchestrator) complete(attemptID string, c Completion) {
	o.mu.Lock()
	att, ok := o.byID[attemptID]
	if !ok || !CanTransitionTo(att.Status, StatusVerifying) {
		o.mu.Unlock()
		return
	}
	att.Status = StatusVerifying
	itemID, _ := strconv.ParseInt(att.ProductID, 10, 64)
	req := api.VerifyPaymentRequest{
		ItemID:    itemID,
		ItemName:  att.ProductName,
		Total:     money.ToFloat(att.SubtotalCents),
		Quantity:  att.Quantity,
		PaymentID: c.PaymentID,
		OrderID:   c.OrderID,
		Signature: c.Signature,
	}
	o.mu.Unlock()
	o.notify(att)
	o.logEvent(log.LogEvent{Event: log.EventPaymentVerifying, AttemptID: attemptID, OrderRef: c.OrderID, PaymentRef: c.PaymentID})

	// The run's context is long gone by the time the gateway calls back.
	if err := o.orders.VerifyPayment(context.Background(), req); err != nil {
		o.fail(attemptID, fmt.Sprintf("verify payment: %v", err))
		return
	}

	o.transition(attemptID, StatusConfirmed, func(a *Attempt) {
		a.PaymentRef = c.PaymentID
	})
	o.logEvent(log.LogEvent{Event: log.EventPaymentConfirmed, AttemptID: attemptID, PaymentRef: c.PaymentID})
}

// transition moves an attempt to a new status if the state machine
// allows it, applying mutate under the lock.
func (o *Orchestrator) transition(attemptID string, to Status, mutate func(*Attempt)) {
	o.mu.Lock()
	att, ok := o.byID[attemptID]
	if !ok || !CanTransitionTo(att.Status, to) {
		o.mu.Unlock()
		return
	}
	att.Status = to
	if mutate != nil {
		mutate(att)
	}
	o.mu.Unlock()
	o.notify(att)
}

// fail marks an attempt failed with a reason. The run is never aborted
// for other lines.
func (o *Orchestrator) fail(attemptID, reason string) {
	o.transition(attemptID, StatusFailed, func(a *Attempt) {
		a.Reason = reason
	})
	o.logEvent(log.LogEvent{Event: log.EventLineFailed, AttemptID: attemptID, Error: reason})
}

// notify fires the update hook with a copy of the attempt.
func (o *Orchestrator) notify(att *Attempt) {
	o.mu.Lock()
	fn := o.onUpdate
	cp := *att
	o.mu.Unlock()
	if fn != nil {
		fn(cp)
	}
}

// logEvent appends to the event log when one is configured.
func (o *Orchestrator) logEvent(event log.LogEvent) {
	if o.logger == nil {
		return
	}
	_ = o.logger.Append(event)
}
