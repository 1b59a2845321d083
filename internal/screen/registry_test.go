package screen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/api"
	"backoffice/internal/table"
)

func TestDefinitionsCoverAllEntities(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 6)

	titles := make([]string, len(defs))
	for i, def := range defs {
		titles[i] = def.Title
		assert.NotEmpty(t, def.Columns, def.Title)
		assert.NotEmpty(t, def.DefaultVisible, def.Title)

		keys := table.Keys(def.Columns)
		for _, key := range def.DefaultVisible {
			assert.Contains(t, keys, key, "%s default column %s not declared", def.Title, key)
		}
	}
	assert.ElementsMatch(t, titles,
		[]string{"Categories", "Customers", "Offers", "Orders", "Suppliers", "Users"})
}

func TestOrdersFilterByCustomerID(t *testing.T) {
	for _, def := range Definitions() {
		if def.Title == "Orders" {
			assert.Equal(t, "customerId", def.SearchField)
			assert.NotEmpty(t, def.SearchLabel)
			return
		}
	}
	t.Fatal("orders definition missing")
}

func TestOrderCreatePostsInitialItem(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "status": "IN_PROGRESS"})
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Config{BaseURL: srv.URL})

	err := createOrder(context.Background(), client, map[string]any{
		"customerId": 3,
		"userId":     1,
		"offerId":    4,
		"quantity":   float64(2),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 3, got["customerId"])
	assert.EqualValues(t, 1, got["userId"])
	items, ok := got["items"].([]any)
	require.True(t, ok, "create body must nest items")
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.EqualValues(t, 4, item["offerId"])
	assert.EqualValues(t, 2, item["quantity"])
}

func TestOrderCreateFormCarriesInitialItem(t *testing.T) {
	for _, def := range Definitions() {
		if def.Title != "Orders" {
			continue
		}
		require.NotNil(t, def.OnCreate)
		keys := make([]string, 0, len(def.FormFields))
		for _, f := range def.FormFields {
			keys = append(keys, f.Key)
		}
		assert.Subset(t, keys, []string{"customerId", "userId", "offerId", "quantity"})
		return
	}
	t.Fatal("orders definition missing")
}

func TestOfferFormatterNestedNames(t *testing.T) {
	rec := table.Record{
		"category": map[string]any{"id": float64(2), "name": "Books"},
		"supplier": map[string]any{"id": float64(7), "name": "Acme"},
	}

	text, ok := offerFormatter(rec, "category")
	require.True(t, ok)
	assert.Equal(t, "Books", text)

	text, ok = offerFormatter(rec, "supplier")
	require.True(t, ok)
	assert.Equal(t, "Acme", text)

	// Plain columns fall through to the default formatting.
	_, ok = offerFormatter(rec, "name")
	assert.False(t, ok)
}

func TestOfferFormatterMissingReference(t *testing.T) {
	text, ok := offerFormatter(table.Record{}, "category")
	require.True(t, ok)
	assert.Equal(t, "-", text)
}

func TestOrderFormatterDerivedColumns(t *testing.T) {
	rec := table.Record{
		"customer": map[string]any{"firstName": "Jane", "lastName": "Doe"},
		"user":     map[string]any{"email": "admin@example.com"},
		"items": []any{
			map[string]any{"priceAtTimeOfOrder": 9.95, "quantity": float64(2)},
			map[string]any{"priceAtTimeOfOrder": 5.10, "quantity": float64(1)},
		},
	}

	text, ok := orderFormatter(rec, "customer")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", text)

	// A person without names falls back to the email.
	text, ok = orderFormatter(rec, "user")
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", text)

	text, ok = orderFormatter(rec, "itemsCount")
	require.True(t, ok)
	assert.Equal(t, "2", text)

	text, ok = orderFormatter(rec, "totalAmount")
	require.True(t, ok)
	assert.Equal(t, "$25.00", text)
}

func TestOrderFormatterEmptyOrder(t *testing.T) {
	rec := table.Record{}

	text, _ := orderFormatter(rec, "customer")
	assert.Equal(t, "-", text)

	text, _ = orderFormatter(rec, "itemsCount")
	assert.Equal(t, "0", text)

	text, _ = orderFormatter(rec, "totalAmount")
	assert.Equal(t, "$0.00", text)
}

func TestOrderFormatterSkipsMalformedItems(t *testing.T) {
	rec := table.Record{
		"items": []any{
			"not a map",
			map[string]any{"priceAtTimeOfOrder": 10.0, "quantity": float64(3)},
		},
	}
	text, _ := orderFormatter(rec, "totalAmount")
	assert.Equal(t, "$30.00", text)
}
