package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopverse-dev/shopverse/internal/testutil"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	var source TokenSource
	if token != "" {
		source = staticToken(token)
	}
	return NewClient(srv.URL, 5*time.Second, source)
}

func TestLoginDecodesEnvelopeData(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Email != "ada@example.com" {
			t.Errorf("email = %q", req.Email)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"token": "tok", "email": "ada@example.com", "username": "ada"},
		})
	})

	resp, err := client.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "tok" || resp.Username != "ada" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	client := newTestClient(t, "tok-42", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-42" {
			t.Errorf("Authorization = %q, want Bearer tok-42", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	if _, err := client.MyOrders(context.Background()); err != nil {
		t.Fatalf("MyOrders failed: %v", err)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client := newTestClient(t, "stale", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.UserProfile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestFailureSurfacesServerMessage(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "item out of stock"})
	})

	err := client.Register(context.Background(), RegisterRequest{Username: "x", Email: "x@example.com", Password: "password1"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if remote.Message != "item out of stock" {
		t.Errorf("Message = %q", remote.Message)
	}
}

func TestFailureWithoutMessageHasFallback(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := client.Items(context.Background())
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if remote.Error() == "" {
		t.Error("RemoteError must always render a message")
	}
}

func TestAddItemSendsMultipartFields(t *testing.T) {
	client := newTestClient(t, "admin-tok", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		want := map[string]string{
			"name":        "Widget",
			"description": "A widget",
			"cost":        "7.50",
			"quantity":    "5",
			"category":    "tools",
		}
		for field, value := range want {
			if got := r.FormValue(field); got != value {
				t.Errorf("form %s = %q, want %q", field, got, value)
			}
		}
		if _, _, err := r.FormFile("file"); err == nil {
			t.Error("no file was attached, form must not carry one")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	err := client.AddItem(context.Background(), ItemInput{
		Name:        "Widget",
		Description: "A widget",
		CostCents:   750,
		Quantity:    5,
		Category:    "tools",
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
}

func TestCreateOrderReturnsGatewayRef(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "order_9", "amount": 75000, "currency": "USD"},
		})
	})

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{ItemID: 1, ItemName: "Widget", Total: 750, Quantity: 3})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.ID != "order_9" || order.Amount != 75000 {
		t.Errorf("order = %+v", order)
	}
}

func TestItemsDecodesCatalog(t *testing.T) {
	srv := testutil.APIServer(t, map[string]string{
		"/items/all": testutil.Envelope(testutil.CatalogJSON),
	})
	client := NewClient(srv.URL, 5*time.Second, nil)

	items, err := client.Items(context.Background())
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[0].Name != "Mug" || items[0].CostCents() != 750 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[2].Quantity != 0 {
		t.Errorf("out-of-stock item quantity = %d, want 0", items[2].Quantity)
	}
}

func TestImageURL(t *testing.T) {
	client := NewClient("http://shop.example/api", time.Second, nil)

	if got := client.ImageURL("widget.png"); got != "http://shop.example/api/uploads/widget.png" {
		t.Errorf("ImageURL = %q", got)
	}
	if got := client.ImageURL(""); got != PlaceholderImage {
		t.Errorf("ImageURL empty = %q, want local placeholder", got)
	}
}

func TestItemCostCents(t *testing.T) {
	item := Item{Cost: 199.99}
	if got := item.CostCents(); got != 19999 {
		t.Errorf("CostCents = %d, want 19999", got)
	}
}
