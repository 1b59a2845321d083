package api

import (
	"context"
	"fmt"

	"backoffice/internal/table"
)

// The service exposes one uniform CRUD surface per entity. Records stay
// opaque field maps; only orders get a typed model (see order.go) because
// their item math is computed client-side.

// Entity names the six record collections, matching their URL segment.
type Entity string

const (
	Categories Entity = "categories"
	Customers  Entity = "customers"
	Offers     Entity = "offers"
	Orders     Entity = "orders"
	Suppliers  Entity = "suppliers"
	Users      Entity = "users"
)

// List fetches one page of an entity's records.
func (c *Client) List(ctx context.Context, e Entity, q table.Query) (table.Page, error) {
	return c.list(ctx, "/"+string(e), q)
}

// Create posts a new record and returns the created one.
func (c *Client) Create(ctx context.Context, e Entity, fields map[string]any) (table.Record, error) {
	var rec table.Record
	if err := c.post(ctx, "/"+string(e), fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get fetches one record by id.
func (c *Client) Get(ctx context.Context, e Entity, id int) (table.Record, error) {
	var rec table.Record
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", e, id), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update puts a partial record and returns the updated one.
func (c *Client) Update(ctx context.Context, e Entity, id int, fields map[string]any) (table.Record, error) {
	var rec table.Record
	if err := c.put(ctx, fmt.Sprintf("/%s/%d", e, id), fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes one record. Nothing is removed locally until the server
// confirms and the list is refetched.
func (c *Client) Delete(ctx context.Context, e Entity, id int) error {
	return c.delete(ctx, fmt.Sprintf("/%s/%d", e, id))
}
