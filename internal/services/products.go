package services

import (
	"context"
	"fmt"
)

// ProductClient queries the inventory service.
type ProductClient struct {
	client
}

// NewProductClient creates a client for the inventory service.
func NewProductClient(baseURL string) *ProductClient {
	return &ProductClient{client: newClient(baseURL)}
}

// List returns all products.
func (c *ProductClient) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns one product by id.
func (c *ProductClient) Get(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.getJSON(ctx, fmt.Sprintf("/api/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}
