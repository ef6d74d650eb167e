package api

import (
	"context"
	"net/http"
)

// CreateOrderRequest asks the server to open a remote order with the
// payment gateway for a single basket line. Total is in currency units
// as the API expects.
type CreateOrderRequest struct {
	ItemID   int64   `json:"itemId"`
	ItemName string  `json:"itemName"`
	Total    float64 `json:"total"`
	Quantity int     `json:"quantity"`
}

// GatewayOrder is the remote order reference returned by the gateway,
// relayed through the API. Amount is in the smallest currency unit.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentRequest asks the server to verify a completed gateway
// payment against its signature.
type VerifyPaymentRequest struct {
	ItemID    int64   `json:"itemId"`
	ItemName  string  `json:"itemName"`
	Total     float64 `json:"total"`
	Quantity  int     `json:"quantity"`
	PaymentID string  `json:"paymentId"`
	OrderID   string  `json:"orderId"`
	Signature string  `json:"signature"`
}

// Order is a confirmed purchase in the order history.
type Order struct {
	ID        string  `json:"orderId"`
	ItemName  string  `json:"itemName"`
	Total     float64 `json:"total"`
	Quantity  int     `json:"quantity"`
	PaymentID string  `json:"paymentId"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// CreateOrder opens a remote order for one line.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*GatewayOrder, error) {
	var out GatewayOrder
	if err := c.do(ctx, http.MethodPost, "/orders/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPayment verifies a gateway completion for one line.
func (c *Client) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) error {
	return c.do(ctx, http.MethodPost, "/orders/verify", req, nil)
}

// MyOrders lists the authenticated shopper's order history.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.get(ctx, "/orders/my-orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllOrders lists every order. Admin only.
func (c *Client) AllOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.get(ctx, "/orders/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Order fetches a single order by ID.
func (c *Client) Order(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := c.get(ctx, "/orders/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
