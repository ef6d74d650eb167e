package api

import (
	"context"
	"net/http"
	"strconv"
)

// AddReviewRequest attaches a review to a product.
type AddReviewRequest struct {
	ItemID     int64  `json:"itemId"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}

// Review is a product review as served by the API.
type Review struct {
	ID         int64  `json:"reviewId"`
	ItemID     int64  `json:"itemId"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
	Username   string `json:"username"`
	CreatedAt  string `json:"createdAt"`
}

// ContactMessage is a message submitted through the site's contact
// form. Admin only.
type ContactMessage struct {
	ID      int64  `json:"contactId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AddReview posts a review for a product.
func (c *Client) AddReview(ctx context.Context, req AddReviewRequest) error {
	return c.do(ctx, http.MethodPost, "/reviews/add", req, nil)
}

// ItemReviews lists the reviews for one product.
func (c *Client) ItemReviews(ctx context.Context, itemID int64) ([]Review, error) {
	var out []Review
	if err := c.get(ctx, "/reviews/item/"+strconv.FormatInt(itemID, 10), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllReviews lists every review. Admin only.
func (c *Client) AllReviews(ctx context.Context) ([]Review, error) {
	var out []Review
	if err := c.get(ctx, "/reviews/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReview removes a review. Admin only.
func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/reviews/delete/"+strconv.FormatInt(id, 10), nil, nil)
}

// ContactMessages lists contact form submissions. Admin only.
func (c *Client) ContactMessages(ctx context.Context) ([]ContactMessage, error) {
	var out []ContactMessage
	if err := c.get(ctx, "/contact/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteContactMessage removes a contact form submission. Admin only.
func (c *Client) DeleteContactMessage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/contact/delete/"+strconv.FormatInt(id, 10), nil, nil)
}
