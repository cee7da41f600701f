package services

import (
	"context"
	"fmt"
)

// CustomerClient queries the customer service.
type CustomerClient struct {
	client
}

// NewCustomerClient creates a client for the customer service.
func NewCustomerClient(baseURL string) *CustomerClient {
	return &CustomerClient{client: newClient(baseURL)}
}

// List returns all customers.
func (c *CustomerClient) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := c.getJSON(ctx, "/api/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Get returns one customer by id.
func (c *CustomerClient) Get(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	if err := c.getJSON(ctx, fmt.Sprintf("/api/customers/%d", id), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
