package api

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Order is the one typed entity: its total is never stored by the service,
// the client derives it from the items on every render.
type Order struct {
	ID        int         `json:"id"`
	Status    string      `json:"status"`
	Customer  *Person     `json:"customer"`
	User      *Person     `json:"user"`
	Items     []OrderItem `json:"items"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
}

// Person is the flattened shape orders embed for customer and user.
type Person struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DisplayName renders "First Last", falling back to the email.
func (p *Person) DisplayName() string {
	if p == nil {
		return "-"
	}
	if p.FirstName == "" && p.LastName == "" {
		return p.Email
	}
	return p.FirstName + " " + p.LastName
}

// OrderItem is one line of an order. PriceAtTimeOfOrder is frozen at order
// time and does not follow later offer price changes.
type OrderItem struct {
	OfferID            int             `json:"offerId"`
	OfferName          string          `json:"offerName"`
	Quantity           int             `json:"quantity"`
	PriceAtTimeOfOrder decimal.Decimal `json:"priceAtTimeOfOrder"`
}

// Subtotal is the line amount, frozen price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtTimeOfOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total recomputes the order amount from its current items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// GetOrder fetches one order with its items.
func (c *Client) GetOrder(ctx context.Context, id int) (*Order, error) {
	var order Order
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder posts a new order for a customer/user pair with initial items.
func (c *Client) CreateOrder(ctx context.Context, body map[string]any) (*Order, error) {
	var order Order
	if err := c.post(ctx, "/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// The order mutations live on dedicated endpoints; each returns the full
// updated order.

func (c *Client) ChangeOrderCustomer(ctx context.Context, id, customerID int) (*Order, error) {
	return c.orderMutation(ctx, "change-customer", id, map[string]any{"customerId": customerID})
}

func (c *Client) ChangeOrderStatus(ctx context.Context, id int, status string) (*Order, error) {
	return c.orderMutation(ctx, "change-status", id, map[string]any{"status": status})
}

func (c *Client) AddOrderItem(ctx context.Context, id, offerID, quantity int) (*Order, error) {
	return c.orderMutation(ctx, "add-item", id, map[string]any{"offerId": offerID, "quantity": quantity})
}

func (c *Client) RemoveOrderItem(ctx context.Context, id, offerID int) (*Order, error) {
	return c.orderMutation(ctx, "remove-item", id, map[string]any{"offerId": offerID})
}

func (c *Client) UpdateOrderItemQuantity(ctx context.Context, id, offerID, quantity int) (*Order, error) {
	return c.orderMutation(ctx, "update-item-quantity", id, map[string]any{"offerId": offerID, "quantity": quantity})
}

func (c *Client) orderMutation(ctx context.Context, action string, id int, body map[string]any) (*Order, error) {
	var order Order
	if err := c.put(ctx, fmt.Sprintf("/orders/%s/%d", action, id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
