package tools

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medAmineRg/chatbot-service/internal/services"
)

type stubCustomers struct {
	customers []services.Customer
	err       error
}

func (s *stubCustomers) List(ctx context.Context) ([]services.Customer, error) {
	return s.customers, s.err
}

func (s *stubCustomers) Get(ctx context.Context, id int64) (*services.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.customers {
		if s.customers[i].ID == id {
			return &s.customers[i], nil
		}
	}
	return nil, services.ErrNotFound
}

type stubProducts struct {
	products []services.Product
	err      error
}

func (s *stubProducts) List(ctx context.Context) ([]services.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) Get(ctx context.Context, id int64) (*services.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, services.ErrNotFound
}

type stubBills struct {
	bills []services.Bill
	err   error
}

func (s *stubBills) List(ctx context.Context) ([]services.Bill, error) {
	return s.bills, s.err
}

func (s *stubBills) Get(ctx context.Context, id int64) (*services.Bill, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, services.ErrNotFound
}

func newTestDispatcher(customers *stubCustomers, products *stubProducts, bills *stubBills) *Dispatcher {
	if customers == nil {
		customers = &stubCustomers{}
	}
	if products == nil {
		products = &stubProducts{}
	}
	if bills == nil {
		bills = &stubBills{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDispatcher(customers, products, bills, log)
}

func TestInvokeUnknownTool(t *testing.T) {
	d := newTestDispatcher(nil, nil, nil)

	result := d.Invoke(context.Background(), "transmogrify", nil)
	assert.Equal(t, "Unknown tool: transmogrify", result)
}

func TestInvokeIsCaseInsensitive(t *testing.T) {
	d := newTestDispatcher(&stubCustomers{customers: []services.Customer{{ID: 1, Name: "Amine"}}}, nil, nil)

	result := d.Invoke(context.Background(), "LIST_Customers", nil)
	assert.Contains(t, result, "Found 1 customers")
}

func TestGetCustomerMalformedID(t *testing.T) {
	d := newTestDispatcher(&stubCustomers{}, nil, nil)

	result := d.Invoke(context.Background(), "get_customer", map[string]string{"id": "abc"})
	assert.Contains(t, result, "Invalid customer id")
	assert.Contains(t, result, "abc")
}

func TestGetCustomerMissingID(t *testing.T) {
	d := newTestDispatcher(&stubCustomers{}, nil, nil)

	result := d.Invoke(context.Background(), "get_customer", nil)
	assert.Contains(t, result, "Invalid customer id")
}

func TestGetProductNotFound(t *testing.T) {
	d := newTestDispatcher(nil, &stubProducts{}, nil)

	result := d.Invoke(context.Background(), "get_product", map[string]string{"id": "9"})
	assert.Equal(t, "Product 9 not found.", result)
}

func TestListUnavailableServiceDegrades(t *testing.T) {
	d := newTestDispatcher(nil, nil, &stubBills{err: fmt.Errorf("connection refused")})

	result := d.Invoke(context.Background(), "list_bills", nil)
	assert.Contains(t, result, "Unable to fetch bills")
}

func TestListEmptyResult(t *testing.T) {
	d := newTestDispatcher(nil, &stubProducts{}, nil)

	result := d.Invoke(context.Background(), "list_products", nil)
	assert.Contains(t, result, "Found 0 products")
	assert.Contains(t, result, "No items found.")
}

func TestListTruncatesAtFiveItems(t *testing.T) {
	var bills []services.Bill
	for i := int64(1); i <= 8; i++ {
		bills = append(bills, services.Bill{ID: i, CustomerID: 1, ProductID: 1, Quantity: 1, TotalAmount: 10})
	}
	d := newTestDispatcher(nil, nil, &stubBills{bills: bills})

	result := d.Invoke(context.Background(), "list_bills", nil)
	assert.Contains(t, result, "Found 8 bills")
	assert.Equal(t, 5, strings.Count(result, "• "))
	assert.Contains(t, result, "... and 3 more")
}

func TestGetCustomerFound(t *testing.T) {
	d := newTestDispatcher(&stubCustomers{customers: []services.Customer{
		{ID: 4, Name: "Leila", Email: "leila@example.com", Phone: "555", Address: "Sfax"},
	}}, nil, nil)

	result := d.Invoke(context.Background(), "get_customer", map[string]string{"id": "4"})
	assert.Contains(t, result, "Customer #4: Leila")
}

func TestCatalogueMentionsAllTools(t *testing.T) {
	d := newTestDispatcher(nil, nil, nil)

	catalogue := d.Catalogue()
	for _, tool := range []string{"list_customers", "get_customer", "list_products", "get_product", "list_bills", "get_bill"} {
		assert.Contains(t, catalogue, tool)
	}
}
