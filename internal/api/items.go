package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopverse-dev/shopverse/internal/money"
)

// PlaceholderImage is the local asset shown when a product has no
// uploaded image. Resolving it never involves a network request.
const PlaceholderImage = "assets/placeholder.png"

// Item is a catalog product as served by the API. Cost travels as a
// decimal currency amount; use CostCents for arithmetic.
type Item struct {
	ID          int64   `json:"itemId"`
	Name        string  `json:"itemName"`
	Description string  `json:"description"`
	Cost        float64 `json:"itemCost"`
	Quantity    int     `json:"itemQuantity"`
	Category    string  `json:"itemCategory"`
	ImageName   string  `json:"imgname"`
}

// CostCents returns the item's unit price in cents.
func (i Item) CostCents() int64 {
	return money.FromFloat(i.Cost)
}

// ItemInput describes a product to create or update. ImagePath is an
// optional local file attached to the multipart form.
type ItemInput struct {
	Name        string
	Description string
	CostCents   int64
	Quantity    int
	Category    string
	ImagePath   string
}

// Items lists the full catalog.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var out []Item
	if err := c.get(ctx, "/items/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ItemsByCategory lists the catalog filtered to one category.
func (c *Client) ItemsByCategory(ctx context.Context, category string) ([]Item, error) {
	var out []Item
	if err := c.get(ctx, "/items/category/"+url.PathEscape(category), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchItems searches the catalog by keyword.
func (c *Client) SearchItems(ctx context.Context, keyword string) ([]Item, error) {
	var out []Item
	if err := c.get(ctx, "/items/search?keyword="+url.QueryEscape(keyword), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Item fetches a single product by ID.
func (c *Client) Item(ctx context.Context, id int64) (*Item, error) {
	var out Item
	if err := c.get(ctx, "/items/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminItems lists the catalog from the admin's view.
func (c *Client) AdminItems(ctx context.Context) ([]Item, error) {
	var out []Item
	if err := c.get(ctx, "/items/admin", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddItem creates a product via a multipart form.
func (c *Client) AddItem(ctx context.Context, in ItemInput) error {
	return c.sendItemForm(ctx, http.MethodPost, "/items/add", in)
}

// UpdateItem replaces a product's fields via a multipart form.
func (c *Client) UpdateItem(ctx context.Context, id int64, in ItemInput) error {
	return c.sendItemForm(ctx, http.MethodPut, "/items/update/"+strconv.FormatInt(id, 10), in)
}

// DeleteItem removes a product.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/items/delete/"+strconv.FormatInt(id, 10), nil, nil)
}

// ImageURL resolves a product image filename to a fetchable URL, or the
// local placeholder when no image was uploaded.
func (c *Client) ImageURL(filename string) string {
	if filename == "" {
		return PlaceholderImage
	}
	return c.baseURL + "/uploads/" + url.PathEscape(filename)
}

// sendItemForm builds the multipart body shared by AddItem and
// UpdateItem: name, description, cost, quantity, category, optional file.
func (c *Client) sendItemForm(ctx context.Context, method, path string, in ItemInput) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"cost":        strconv.FormatFloat(money.ToFloat(in.CostCents), 'f', 2, 64),
		"quantity":    strconv.Itoa(in.Quantity),
		"category":    in.Category,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	if in.ImagePath != "" {
		f, err := os.Open(in.ImagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		part, err := form.CreateFormFile("file", filepath.Base(in.ImagePath))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.send(req, nil)
}
