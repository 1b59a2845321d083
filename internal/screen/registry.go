package screen

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"backoffice/internal/api"
	"backoffice/internal/table"
	"backoffice/internal/ui"
)

// Definitions returns the six entity screens of the back office, in sidebar
// order.
func Definitions() []Definition {
	return []Definition{
		categories(),
		customers(),
		orders(),
		offers(),
		suppliers(),
		users(),
	}
}

func categories() Definition {
	return Definition{
		Entity:      api.Categories,
		Title:       "Categories",
		Singular:    "category",
		SearchField: "name",
		Columns: []table.Column{
			{Key: "id", Label: "ID", Type: table.TypeNumber},
			{Key: "name", Label: "Name", Type: table.TypeText},
			{Key: "description", Label: "Description", Type: table.TypeText},
			{Key: "createdAt", Label: "Created At", Type: table.TypeDate},
			{Key: "updatedAt", Label: "Updated At", Type: table.TypeDate},
		},
		DefaultVisible: []string{"id", "name", "description", "createdAt"},
		FormFields: []ui.FormField{
			{Key: "name", Label: "Name", Kind: ui.FieldText, Required: true},
			{Key: "description", Label: "Description", Kind: ui.FieldText},
		},
	}
}

func customers() Definition {
	return Definition{
		Entity:      api.Customers,
		Title:       "Customers",
		Singular:    "customer",
		SearchField: "firstName",
		Columns: []table.Column{
			{Key: "id", Label: "ID", Type: table.TypeNumber},
			{Key: "firstName", Label: "First Name", Type: table.TypeText},
			{Key: "lastName", Label: "Last Name", Type: table.TypeText},
			{Key: "email", Label: "Email", Type: table.TypeText},
			{Key: "phone", Label: "Phone", Type: table.TypeText},
			{Key: "address", Label: "Address", Type: table.TypeText},
			{Key: "createdAt", Label: "Created At", Type: table.TypeDate},
			{Key: "updatedAt", Label: "Updated At", Type: table.TypeDate},
		},
		DefaultVisible: []string{"id", "firstName", "lastName", "email", "phone"},
		FormFields: []ui.FormField{
			{Key: "firstName", Label: "First Name", Kind: ui.FieldText, Required: true},
			{Key: "lastName", Label: "Last Name", Kind: ui.FieldText, Required: true},
			{Key: "email", Label: "Email", Kind: ui.FieldText, Required: true},
			{Key: "phone", Label: "Phone", Kind: ui.FieldText},
			{Key: "address", Label: "Address", Kind: ui.FieldText},
		},
	}
}

func offers() Definition {
	return Definition{
		Entity:      api.Offers,
		Title:       "Offers",
		Singular:    "offer",
		SearchField: "name",
		Columns: []table.Column{
			{Key: "id", Label: "ID", Type: table.TypeNumber},
			{Key: "name", Label: "Name", Type: table.TypeText},
			{Key: "price", Label: "Price", Type: table.TypeCurrency},
			{Key: "type", Label: "Type", Type: table.TypeText},
			{Key: "category", Label: "Category", Type: table.TypeText},
			{Key: "supplier", Label: "Supplier", Type: table.TypeText},
			{Key: "description", Label: "Description", Type: table.TypeText},
			{Key: "createdAt", Label: "Created At", Type: table.TypeDate},
			{Key: "updatedAt", Label: "Updated At", Type: table.TypeDate},
		},
		DefaultVisible: []string{"id", "name", "price", "type", "category", "supplier"},
		Formatter:      offerFormatter,
		FormFields: []ui.FormField{
			{Key: "name", Label: "Name", Kind: ui.FieldText, Required: true},
			{Key: "price", Label: "Price", Kind: ui.FieldNumber, Required: true},
			{Key: "type", Label: "Type", Kind: ui.FieldSelect, Required: true, Options: []ui.Option{
				{Value: "PRODUCT", Label: "Product"},
				{Value: "SERVICE", Label: "Service"},
			}},
			{Key: "categoryId", Label: "Category", Kind: ui.FieldSelect, Required: true},
			{Key: "supplierId", Label: "Supplier", Kind: ui.FieldSelect, Required: true},
			{Key: "description", Label: "Description", Kind: ui.FieldText},
		},
		OptionLoader: func(ctx context.Context, client *api.Client) (map[string][]ui.Option, error) {
			return loadOptionLists(ctx, client, map[string]optionSource{
				"categoryId": {entity: api.Categories, label: nameLabel},
				"supplierId": {entity: api.Suppliers, label: nameLabel},
			})
		},
	}
}

func orders() Definition {
	return Definition{
		Entity:   api.Orders,
		Title:    "Orders",
		Singular: "order",
		// Orders have no text search; the box filters by customer id, and
		// changing it resets pagination the same way search does.
		SearchField: "customerId",
		SearchLabel: " Customer ID: ",
		Columns: []table.Column{
			{Key: "id", Label: "ID", Type: table.TypeNumber},
			{Key: "customer", Label: "Customer", Type: table.TypeText},
			{Key: "user", Label: "User", Type: table.TypeText},
			{Key: "status", Label: "Status", Type: table.TypeText},
			{Key: "itemsCount", Label: "Items Count", Type: table.TypeNumber},
			{Key: "totalAmount", Label: "Total Amount", Type: table.TypeCurrency},
			{Key: "createdAt", Label: "Created At", Type: table.TypeDate},
			{Key: "updatedAt", Label: "Updated At", Type: table.TypeDate},
		},
		DefaultVisible: []string{"id", "customer", "user", "status", "itemsCount", "totalAmount"},
		Formatter:      orderFormatter,
		// An order is never created empty; the form always carries one
		// initial item.
		FormFields: []ui.FormField{
			{Key: "customerId", Label: "Customer", Kind: ui.FieldSelect, Required: true},
			{Key: "userId", Label: "User", Kind: ui.FieldSelect, Required: true},
			{Key: "offerId", Label: "Offer", Kind: ui.FieldSelect, Required: true},
			{Key: "quantity", Label: "Quantity", Kind: ui.FieldNumber, Required: true},
		},
		OptionLoader: func(ctx context.Context, client *api.Client) (map[string][]ui.Option, error) {
			return loadOptionLists(ctx, client, map[string]optionSource{
				"customerId": {entity: api.Customers, label: personLabel},
				"userId":     {entity: api.Users, label: personLabel},
				"offerId":    {entity: api.Offers, label: nameLabel},
			})
		},
		OnCreate: createOrder,
		Actions: []Action{
			{Label: "View Details", Run: func(s *Screen, rec table.Record) {
				s.openOrderDetail(rec.ID())
			}},
		},
		OnUpdate: func(s *Screen, id int) bool {
			s.openOrderDetail(id)
			return true
		},
	}
}

func suppliers() Definition {
	return Definition{
		Entity:      api.Suppliers,
		Title:       "Suppliers",
		Singular:    "supplier",
		SearchField: "name",
		Columns: []table.Column{
			{Key: "id", Label: "ID", Type: table.TypeNumber},
			{Key: "name", Label: "Name", Type: table.TypeText},
			{Key: "email", Label: "Email", Type: table.TypeText},
			{Key: "phone", Label: "Phone", Type: table.TypeText},
			{Key: "address", Label: "Address", Type: table.TypeText},
			{Key: "description", Label: "Description", Type: table.TypeText},
			{Key: "createdAt", Label: "Created At", Type: table.TypeDate},
			{Key: "updatedAt", Label: "Updated At", Type: table.TypeDate},
		},
		DefaultVisible: []string{"id", "name", "email", "phone"},
		FormFields: []ui.FormField{
			{Key: "name", Label: "Name", Kind: ui.FieldText, Required: true},
			{Key: "email", Label: "Email", Kind: ui.FieldText},
			{Key: "phone", Label: "Phone", Kind: ui.FieldText},
			{Key: "address", Label: "Address", Kind: ui.FieldText},
			{Key: "description", Label: "Description", Kind: ui.FieldText},
		},
	}
}

func users() Definition {
	return Definition{
		Entity:      api.Users,
		Title:       "Users",
		Singular:    "user",
		SearchField: "firstName",
		Columns: []table.Column{
			{Key: "id", Label: "ID", Type: table.TypeNumber},
			{Key: "firstName", Label: "First Name", Type: table.TypeText},
			{Key: "lastName", Label: "Last Name", Type: table.TypeText},
			{Key: "email", Label: "Email", Type: table.TypeText},
			{Key: "role", Label: "Role", Type: table.TypeText},
			{Key: "phone", Label: "Phone", Type: table.TypeText},
			{Key: "createdAt", Label: "Created At", Type: table.TypeDate},
			{Key: "updatedAt", Label: "Updated At", Type: table.TypeDate},
		},
		DefaultVisible: []string{"id", "firstName", "lastName", "email", "role"},
		FormFields: []ui.FormField{
			{Key: "firstName", Label: "First Name", Kind: ui.FieldText, Required: true},
			{Key: "lastName", Label: "Last Name", Kind: ui.FieldText, Required: true},
			{Key: "email", Label: "Email", Kind: ui.FieldText, Required: true},
			{Key: "password", Label: "Password", Kind: ui.FieldPassword, Required: true},
			{Key: "role", Label: "Role", Kind: ui.FieldText, Required: true},
			{Key: "phone", Label: "Phone", Kind: ui.FieldText, Required: true},
		},
	}
}

// createOrder reshapes the flat form values into the nested create body:
// the initial item moves under items.
func createOrder(ctx context.Context, client *api.Client, values map[string]any) error {
	quantity := 1
	if q, ok := values["quantity"].(float64); ok {
		quantity = int(q)
	}
	body := ui.Sanitize(map[string]any{
		"customerId": values["customerId"],
		"userId":     values["userId"],
		"items": []map[string]any{
			{"offerId": values["offerId"], "quantity": quantity},
		},
	})
	_, err := client.CreateOrder(ctx, body)
	return err
}

// offerFormatter flattens the nested category/supplier references.
func offerFormatter(rec table.Record, key string) (string, bool) {
	switch key {
	case "category", "supplier":
		return nestedName(rec[key]), true
	}
	return "", false
}

// orderFormatter derives the computed columns: the embedded names, the item
// count and the total. The total is recomputed from the items on every call,
// never cached.
func orderFormatter(rec table.Record, key string) (string, bool) {
	switch key {
	case "customer", "user":
		return nestedPerson(rec[key]), true
	case "itemsCount":
		items, _ := rec["items"].([]any)
		return fmt.Sprintf("%d", len(items)), true
	case "totalAmount":
		return table.FormatCurrency(orderRecordTotal(rec)), true
	}
	return "", false
}

// orderRecordTotal sums priceAtTimeOfOrder × quantity across the raw item
// maps of a list-page order record.
func orderRecordTotal(rec table.Record) decimal.Decimal {
	total := decimal.Zero
	items, _ := rec["items"].([]any)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		price := decimal.Zero
		if p, ok := item["priceAtTimeOfOrder"].(float64); ok {
			price = decimal.NewFromFloat(p)
		}
		qty := int64(0)
		if q, ok := item["quantity"].(float64); ok {
			qty = int64(q)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(qty)))
	}
	return total
}

func nestedName(v any) string {
	if m, ok := v.(map[string]any); ok {
		if name, ok := m["name"].(string); ok && name != "" {
			return name
		}
	}
	return "-"
}

func nestedPerson(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return "-"
	}
	first, _ := m["firstName"].(string)
	last, _ := m["lastName"].(string)
	if first == "" && last == "" {
		if email, ok := m["email"].(string); ok && email != "" {
			return email
		}
		return "-"
	}
	return first + " " + last
}

func nameLabel(rec table.Record) string {
	if name, ok := rec["name"].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("#%d", rec.ID())
}

func personLabel(rec table.Record) string {
	return nestedPerson(map[string]any(rec))
}

type optionSource struct {
	entity api.Entity
	label  func(rec table.Record) string
}

// optionPageSize is deliberately oversized; foreign-key pickers load the
// whole collection in one page.
const optionPageSize = 1000

// loadOptionLists fetches every referenced collection concurrently and
// joins all-or-nothing: a single failed list fails the lot.
func loadOptionLists(ctx context.Context, client *api.Client, sources map[string]optionSource) (map[string][]ui.Option, error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	out := make(map[string][]ui.Option, len(sources))
	var joinErr error

	for key, src := range sources {
		wg.Add(1)
		go func(key string, src optionSource) {
			defer wg.Done()
			page, err := client.List(ctx, src.entity, table.Query{Page: 0, Size: optionPageSize})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if joinErr == nil {
					joinErr = err
				}
				return
			}
			options := make([]ui.Option, 0, len(page.Items))
			for _, rec := range page.Items {
				options = append(options, ui.Option{Value: rec.ID(), Label: src.label(rec)})
			}
			out[key] = options
		}(key, src)
	}

	wg.Wait()
	if joinErr != nil {
		return nil, joinErr
	}
	return out, nil
}
