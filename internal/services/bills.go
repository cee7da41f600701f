package services

import (
	"context"
	"fmt"
)

// BillClient queries the billing service.
type BillClient struct {
	client
}

// NewBillClient creates a client for the billing service.
func NewBillClient(baseURL string) *BillClient {
	return &BillClient{client: newClient(baseURL)}
}

// List returns all bills.
func (c *BillClient) List(ctx context.Context) ([]Bill, error) {
	var bills []Bill
	if err := c.getJSON(ctx, "/api/bills", &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// Get returns one bill by id.
func (c *BillClient) Get(ctx context.Context, id int64) (*Bill, error) {
	var bill Bill
	if err := c.getJSON(ctx, fmt.Sprintf("/api/bills/%d", id), &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}
