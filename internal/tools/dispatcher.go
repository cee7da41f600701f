// Package tools routes named tool invocations to the external record
// services with uniform failure handling: every outcome, including
// unavailable services and malformed parameters, becomes readable text.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/medAmineRg/chatbot-service/internal/services"
)

// maxListItems caps how many records a list tool renders before
// truncating with an "and N more" suffix.
const maxListItems = 5

// CustomerService is the customer record collaborator.
type CustomerService interface {
	List(ctx context.Context) ([]services.Customer, error)
	Get(ctx context.Context, id int64) (*services.Customer, error)
}

// ProductService is the inventory record collaborator.
type ProductService interface {
	List(ctx context.Context) ([]services.Product, error)
	Get(ctx context.Context, id int64) (*services.Product, error)
}

// BillService is the billing record collaborator.
type BillService interface {
	List(ctx context.Context) ([]services.Bill, error)
	Get(ctx context.Context, id int64) (*services.Bill, error)
}

// Dispatcher maps tool names onto record service calls. Invocations are
// stateless and never return an error to the model-facing layer.
type Dispatcher struct {
	customers CustomerService
	products  ProductService
	bills     BillService
	log       *slog.Logger
}

// NewDispatcher creates a dispatcher over the three record services.
func NewDispatcher(customers CustomerService, products ProductService, bills BillService, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		customers: customers,
		products:  products,
		bills:     bills,
		log:       log,
	}
}

// Catalogue describes the available tools for the system prompt.
func (d *Dispatcher) Catalogue() string {
	return `AVAILABLE TOOLS:
You have access to the following microservices data:

1. CUSTOMERS: Query customer information
   - list_customers: list all customers
   - get_customer: get a customer by id

2. PRODUCTS/INVENTORY: Query the product catalog
   - list_products: list all products
   - get_product: get a product by id

3. BILLS: Query billing information
   - list_bills: list all bills
   - get_bill: get a bill by id

When the user asks about customers, products, or bills, you can describe
what data is available but mention they should use the web interface for
detailed queries.`
}

// Invoke executes the named tool with the given parameters and returns a
// human-readable result. Unknown tool names, malformed parameters and
// unavailable services all produce descriptive text rather than errors.
func (d *Dispatcher) Invoke(ctx context.Context, toolName string, params map[string]string) string {
	d.log.Info("executing tool", "tool", toolName, "params", params)

	switch strings.ToLower(toolName) {
	case "list_customers":
		return d.listCustomers(ctx)
	case "get_customer":
		return d.getCustomer(ctx, params)
	case "list_products":
		return d.listProducts(ctx)
	case "get_product":
		return d.getProduct(ctx, params)
	case "list_bills":
		return d.listBills(ctx)
	case "get_bill":
		return d.getBill(ctx, params)
	default:
		return "Unknown tool: " + toolName
	}
}

func (d *Dispatcher) listCustomers(ctx context.Context) string {
	customers, err := d.customers.List(ctx)
	if err != nil {
		return fmt.Sprintf("Unable to fetch customers: %v", err)
	}
	lines := make([]string, len(customers))
	for i, customer := range customers {
		lines[i] = customer.String()
	}
	return fmt.Sprintf("Found %d customers:\n%s", len(customers), formatList(lines))
}

func (d *Dispatcher) getCustomer(ctx context.Context, params map[string]string) string {
	id, err := parseID(params)
	if err != nil {
		return fmt.Sprintf("Invalid customer id: %v", err)
	}
	customer, err := d.customers.Get(ctx, id)
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Sprintf("Customer %d not found.", id)
	}
	if err != nil {
		return fmt.Sprintf("Unable to fetch customer %d: %v", id, err)
	}
	return customer.String()
}

func (d *Dispatcher) listProducts(ctx context.Context) string {
	products, err := d.products.List(ctx)
	if err != nil {
		return fmt.Sprintf("Unable to fetch products: %v", err)
	}
	lines := make([]string, len(products))
	for i, product := range products {
		lines[i] = product.String()
	}
	return fmt.Sprintf("Found %d products:\n%s", len(products), formatList(lines))
}

func (d *Dispatcher) getProduct(ctx context.Context, params map[string]string) string {
	id, err := parseID(params)
	if err != nil {
		return fmt.Sprintf("Invalid product id: %v", err)
	}
	product, err := d.products.Get(ctx, id)
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Sprintf("Product %d not found.", id)
	}
	if err != nil {
		return fmt.Sprintf("Unable to fetch product %d: %v", id, err)
	}
	return product.String()
}

func (d *Dispatcher) listBills(ctx context.Context) string {
	bills, err := d.bills.List(ctx)
	if err != nil {
		return fmt.Sprintf("Unable to fetch bills: %v", err)
	}
	lines := make([]string, len(bills))
	for i, bill := range bills {
		lines[i] = bill.String()
	}
	return fmt.Sprintf("Found %d bills:\n%s", len(bills), formatList(lines))
}

func (d *Dispatcher) getBill(ctx context.Context, params map[string]string) string {
	id, err := parseID(params)
	if err != nil {
		return fmt.Sprintf("Invalid bill id: %v", err)
	}
	bill, err := d.bills.Get(ctx, id)
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Sprintf("Bill %d not found.", id)
	}
	if err != nil {
		return fmt.Sprintf("Unable to fetch bill %d: %v", id, err)
	}
	return bill.String()
}

// parseID reads the "id" parameter, rejecting missing or non-numeric
// values.
func parseID(params map[string]string) (int64, error) {
	raw, ok := params["id"]
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing id parameter")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return id, nil
}

// formatList renders up to maxListItems bullet lines, with an explicit
// message for empty results and a truncation suffix for long ones.
func formatList(lines []string) string {
	if len(lines) == 0 {
		return "No items found."
	}

	var sb strings.Builder
	for i, line := range lines {
		if i >= maxListItems {
			fmt.Fprintf(&sb, "... and %d more\n", len(lines)-maxListItems)
			break
		}
		sb.WriteString("• ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
