// Package services holds the JSON-over-HTTP clients for the external
// record services (customers, inventory, billing) the chatbot can query.
package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a record service reports no record for
// the requested id.
var ErrNotFound = errors.New("record not found")

// Customer is a record from the customer service.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// String renders the customer for model and user facing text.
func (c Customer) String() string {
	return fmt.Sprintf("Customer #%d: %s <%s>, phone %s, %s", c.ID, c.Name, c.Email, c.Phone, c.Address)
}

// Product is a record from the inventory service.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// String renders the product for model and user facing text.
func (p Product) String() string {
	return fmt.Sprintf("Product #%d: %s (%s), price %.2f, %d in stock", p.ID, p.Name, p.Description, p.Price, p.Quantity)
}

// Bill is a record from the billing service. CreatedAt is kept as the
// raw timestamp string the service emits.
type Bill struct {
	ID          int64   `json:"id"`
	CustomerID  int64   `json:"customerId"`
	ProductID   int64   `json:"productId"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"totalAmount"`
	CreatedAt   string  `json:"createdAt"`
}

// String renders the bill for model and user facing text.
func (b Bill) String() string {
	date := b.CreatedAt
	if i := strings.IndexByte(date, 'T'); i > 0 {
		date = date[:i]
	}
	return fmt.Sprintf("Bill #%d: customer %d, product %d x%d, total %.2f (%s)",
		b.ID, b.CustomerID, b.ProductID, b.Quantity, b.TotalAmount, date)
}
