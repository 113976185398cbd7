package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cedra_admin/internal/models"
)

// Filter - paramètres optionnels de GET /products.
// Un champ vide n'est pas envoyé (liste non filtrée).
type Filter struct {
	Category string
	Color    string
	Tags     []string
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Color != "" {
		q.Set("color", f.Color)
	}
	if len(f.Tags) > 0 {
		q.Set("tags", strings.Join(f.Tags, ","))
	}
	return q
}

func (c *Client) GetAllProducts(ctx context.Context, f Filter) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/products", f.query(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := c.get(ctx, "/products/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct - POST /products. Le corps multipart est assemblé par
// l'éditeur (internal/editor), ici on ne fait que transporter.
func (c *Client) CreateProduct(ctx context.Context, contentType string, body io.Reader) (*models.Product, error) {
	var p models.Product
	if err := c.sendMultipart(ctx, http.MethodPost, "/products", contentType, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id, contentType string, body io.Reader) (*models.Product, error) {
	var p models.Product
	if err := c.sendMultipart(ctx, http.MethodPut, "/products/"+id, contentType, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+id, nil)
}
