package checkout

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/money"
)

// Completion carries the gateway's proof of payment back to the
// orchestrator for verification.
type Completion struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Gateway is the external payment collaborator. Its checkout flow is an
// externally controlled overlay, not owned by this system.
type Gateway interface {
	// Load prepares the gateway for a run. If it fails, the whole run
	// aborts before any line is attempted.
	Load(ctx context.Context) error
	// Open presents the payment flow for one remote order and returns
	// once it is on screen. onComplete fires later, from the gateway's
	// own flow, when the shopper finishes paying; it may never fire if
	// the shopper abandons the overlay.
	Open(ctx context.Context, order api.GatewayOrder, description string, onComplete func(Completion)) error
}

// DefaultScriptURL is the hosted checkout script the web storefront
// loads before a run. Fetching it doubles as the reachability check.
const DefaultScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

// ProbeScript fetches the gateway script once to confirm the gateway is
// reachable before any order is created.
func ProbeScript(ctx context.Context, httpc *http.Client, scriptURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scriptURL, nil)
	if err != nil {
		return fmt.Errorf("build script request: %w", err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("load gateway script: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("load gateway script: status %d", resp.StatusCode)
	}
	return nil
}

// HostedGateway drives a hosted checkout flow from the terminal: it
// fetches the gateway script to confirm reachability, prints payment
// instructions per order, and reads back the receipt the shopper pastes
// after paying in the browser. Prompts are serialized on the input
// stream even though the orchestrator keeps opening further orders.
type HostedGateway struct {
	KeyID     string
	ScriptURL string

	out     io.Writer
	scanner *bufio.Scanner
	httpc   *http.Client

	promptMu sync.Mutex
	pending  sync.WaitGroup
}

// NewHostedGateway creates a HostedGateway reading completions from in
// and writing instructions to out.
func NewHostedGateway(keyID string, in io.Reader, out io.Writer) *HostedGateway {
	return &HostedGateway{
		KeyID:     keyID,
		ScriptURL: DefaultScriptURL,
		out:       out,
		scanner:   bufio.NewScanner(in),
		httpc:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Load fetches the checkout script once per run.
func (g *HostedGateway) Load(ctx context.Context) error {
	return ProbeScript(ctx, g.httpc, g.ScriptURL)
}

// Open prints the payment instructions for one order and collects the
// receipt on its own goroutine so the caller's loop keeps moving.
func (g *HostedGateway) Open(_ context.Context, order api.GatewayOrder, description string, onComplete func(Completion)) error {
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()

		g.promptMu.Lock()
		defer g.promptMu.Unlock()

		fmt.Fprintf(g.out, "\nPay %s %s for %s (key %s, order %s)\n",
			order.Currency, money.Format(order.Amount), description, g.KeyID, order.ID)
		fmt.Fprintf(g.out, "Enter receipt as: <paymentId> <signature> (or press Enter to skip)\n> ")

		if !g.scanner.Scan() {
			return
		}
		fields := strings.Fields(g.scanner.Text())
		if len(fields) < 2 {
			// Abandoned overlay: the line stays where it is.
			return
		}
		onComplete(Completion{
			PaymentID: fields[0],
			OrderID:   order.ID,
			Signature: fields[1],
		})
	}()

	return nil
}

// Wait blocks until every opened prompt has been answered or skipped.
func (g *HostedGateway) Wait() {
	g.pending.Wait()
}

// OpenPayment is a payment flow waiting for the shopper in a
// ManualGateway.
type OpenPayment struct {
	Order       api.GatewayOrder
	Description string
}

// ManualGateway collects opened payment flows and lets a UI complete
// them one by one as the shopper enters receipts. An open flow with no
// completion simply stays open.
type ManualGateway struct {
	KeyID     string
	ScriptURL string

	httpc *http.Client

	mu   sync.Mutex
	open map[string]openFlow
}

type openFlow struct {
	payment    OpenPayment
	onComplete func(Completion)
}

// NewManualGateway creates a ManualGateway.
func NewManualGateway(keyID string) *ManualGateway {
	return &ManualGateway{
		KeyID:     keyID,
		ScriptURL: DefaultScriptURL,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		open:      make(map[string]openFlow),
	}
}

// Load fetches the checkout script once per run.
func (g *ManualGateway) Load(ctx context.Context) error {
	return ProbeScript(ctx, g.httpc, g.ScriptURL)
}

// Open records the payment flow and returns immediately. The completion
// callback is held until Complete is called for the order.
func (g *ManualGateway) Open(_ context.Context, order api.GatewayOrder, description string, onComplete func(Completion)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.open[order.ID] = openFlow{
		payment:    OpenPayment{Order: order, Description: description},
		onComplete: onComplete,
	}
	return nil
}

// Pending returns the payment flows still waiting for a receipt.
func (g *ManualGateway) Pending() []OpenPayment {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]OpenPayment, 0, len(g.open))
	for _, f := range g.open {
		out = append(out, f.payment)
	}
	return out
}

// Complete feeds a receipt into the flow opened for orderRef. Returns
// false if no such flow is open. The completion callback runs on its
// own goroutine, matching how a hosted overlay calls back.
func (g *ManualGateway) Complete(orderRef string, c Completion) bool {
	g.mu.Lock()
	f, ok := g.open[orderRef]
	if ok {
		delete(g.open, orderRef)
	}
	g.mu.Unlock()
	if !ok {
		return false
	}

	c.OrderID = orderRef
	go f.onComplete(c)
	return true
}
