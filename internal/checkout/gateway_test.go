package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopverse-dev/shopverse/internal/api"
)

func TestProbeScriptStatusRanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.js" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("// checkout"))
	}))
	defer srv.Close()

	httpc := srv.Client()
	if err := ProbeScript(context.Background(), httpc, srv.URL+"/checkout.js"); err != nil {
		t.Errorf("ProbeScript on 200 failed: %v", err)
	}
	if err := ProbeScript(context.Background(), httpc, srv.URL+"/missing.js"); err == nil {
		t.Error("ProbeScript on 404 should fail")
	}
}

func TestHostedGatewayReadsReceipt(t *testing.T) {
	in := strings.NewReader("pay_1 sig_1\n")
	var out strings.Builder
	g := NewHostedGateway("key_test", in, &out)

	var mu sync.Mutex
	var got Completion
	err := g.Open(context.Background(), api.GatewayOrder{ID: "order_1", Amount: 750, Currency: "INR"}, "Mug", func(c Completion) {
		mu.Lock()
		got = c
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	g.Wait()

	mu.Lock()
	defer mu.Unlock()
	if got.PaymentID != "pay_1" || got.Signature != "sig_1" || got.OrderID != "order_1" {
		t.Errorf("completion = %+v", got)
	}
	if !strings.Contains(out.String(), "order_1") {
		t.Errorf("prompt output %q should name the order", out.String())
	}
}

func TestHostedGatewaySkipLeavesLineAlone(t *testing.T) {
	in := strings.NewReader("\n")
	g := NewHostedGateway("key_test", in, &strings.Builder{})

	called := false
	err := g.Open(context.Background(), api.GatewayOrder{ID: "order_2", Amount: 100, Currency: "INR"}, "Mug", func(Completion) {
		called = true
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	g.Wait()

	if called {
		t.Error("empty receipt line must not complete the payment")
	}
}

func TestManualGatewayCompleteByOrderRef(t *testing.T) {
	g := NewManualGateway("key_test")

	done := make(chan Completion, 1)
	err := g.Open(context.Background(), api.GatewayOrder{ID: "order_3", Amount: 500, Currency: "INR"}, "Shirt", func(c Completion) {
		done <- c
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if pending := g.Pending(); len(pending) != 1 || pending[0].Order.ID != "order_3" {
		t.Fatalf("pending = %+v, want the opened order", pending)
	}

	if ok := g.Complete("order_3", Completion{PaymentID: "pay_3", Signature: "sig_3"}); !ok {
		t.Fatal("Complete returned false for an open flow")
	}

	select {
	case c := <-done:
		if c.OrderID != "order_3" || c.PaymentID != "pay_3" {
			t.Errorf("completion = %+v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("completion callback never fired")
	}

	if len(g.Pending()) != 0 {
		t.Error("completed flow must leave the pending set")
	}
	if g.Complete("order_3", Completion{PaymentID: "again"}) {
		t.Error("double completion must be rejected")
	}
}

func TestManualGatewayUnknownOrder(t *testing.T) {
	g := NewManualGateway("key_test")
	if g.Complete("nope", Completion{PaymentID: "p"}) {
		t.Error("Complete for an unknown order must return false")
	}
}
