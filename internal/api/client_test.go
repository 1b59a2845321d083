package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/table"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL: srv.URL,
		Token:   func() string { return "tok-123" },
	})
}

func TestListSendsPaginationAndBearer(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"content":       []map[string]any{{"id": 1, "name": "A"}},
			"totalPages":    1,
			"totalElements": 1,
		})
	})

	page, err := client.List(context.Background(), Categories, table.Query{
		Page: 2, Size: 25, Filters: map[string]string{"name": "wid", "description": ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/categories", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"25"}, gotQuery["size"])
	assert.Equal(t, []string{"wid"}, gotQuery["name"])
	assert.NotContains(t, gotQuery, "description", "empty filters are dropped")

	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.TotalElements)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "A", page.Items[0]["name"])
}

func TestCreateUpdateDeletePaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 5})
	})

	ctx := context.Background()
	rec, err := client.Create(ctx, Suppliers, map[string]any{"name": "Acme"})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.ID())

	_, err = client.Update(ctx, Suppliers, 5, map[string]any{"name": "Acme Ltd"})
	require.NoError(t, err)

	require.NoError(t, client.Delete(ctx, Suppliers, 5))

	assert.Equal(t, []call{
		{"POST", "/api/v1/suppliers"},
		{"PUT", "/api/v1/suppliers/5"},
		{"DELETE", "/api/v1/suppliers/5"},
	}, calls)
}

func TestErrorResponseBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":422,"message":"name: must not be blank","timestamp":"2024-01-01T00:00:00Z"}`))
	})

	_, err := client.Create(context.Background(), Categories, map[string]any{})
	require.Error(t, err)

	apiErr := AsAPIError(err)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "name: must not be blank", apiErr.Message)
}

func TestNetworkFailureIsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.List(context.Background(), Users, table.Query{Size: 10})
	require.Error(t, err)
	assert.True(t, AsAPIError(err).IsNetwork())
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@shop.test", req.Email)
		json.NewEncoder(w).Encode(LoginResponse{
			Token: "jwt", UserEmail: req.Email, UserRole: "ADMIN",
			TokenType: "Bearer", ExpiresIn: 3600,
		})
	})

	resp, err := client.Login(context.Background(), "admin@shop.test", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, "ADMIN", resp.UserRole)
	assert.EqualValues(t, 3600, resp.ExpiresIn)
}

func TestOrderMutationsHitDedicatedEndpoints(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(Order{ID: 9, Status: "IN_PROGRESS"})
	})

	ctx := context.Background()
	_, err := client.ChangeOrderCustomer(ctx, 9, 3)
	require.NoError(t, err)
	_, err = client.ChangeOrderStatus(ctx, 9, "COMPLETED")
	require.NoError(t, err)
	_, err = client.AddOrderItem(ctx, 9, 4, 2)
	require.NoError(t, err)
	_, err = client.RemoveOrderItem(ctx, 9, 4)
	require.NoError(t, err)
	_, err = client.UpdateOrderItemQuantity(ctx, 9, 4, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PUT /api/v1/orders/change-customer/9",
		"PUT /api/v1/orders/change-status/9",
		"PUT /api/v1/orders/add-item/9",
		"PUT /api/v1/orders/remove-item/9",
		"PUT /api/v1/orders/update-item-quantity/9",
	}, paths)
}

func TestGetAndCreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/orders/9":
			json.NewEncoder(w).Encode(Order{
				ID: 9, Status: "IN_PROGRESS",
				Customer: &Person{FirstName: "Jane", LastName: "Doe"},
				Items: []OrderItem{
					{OfferID: 4, OfferName: "Widget", Quantity: 2, PriceAtTimeOfOrder: decimal.RequireFromString("9.95")},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/orders":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.EqualValues(t, 3, body["customerId"])
			json.NewEncoder(w).Encode(Order{ID: 10, Status: "IN_PROGRESS"})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	order, err := client.GetOrder(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", order.Customer.DisplayName())
	assert.Equal(t, "$19.90", table.FormatCurrency(order.Items[0].Subtotal()))

	created, err := client.CreateOrder(ctx, map[string]any{"customerId": 3, "userId": 1})
	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
}

func TestOrderTotalIsDerived(t *testing.T) {
	order := Order{Items: []OrderItem{
		{PriceAtTimeOfOrder: decimal.NewFromInt(10), Quantity: 2},
		{PriceAtTimeOfOrder: decimal.NewFromInt(5), Quantity: 1},
	}}
	assert.Equal(t, "$25.00", table.FormatCurrency(order.Total()))

	order.Items = append(order.Items, OrderItem{PriceAtTimeOfOrder: decimal.RequireFromString("2.50"), Quantity: 2})
	assert.Equal(t, "$30.00", table.FormatCurrency(order.Total()), "recomputed after item change")
}

func TestPersonDisplayName(t *testing.T) {
	assert.Equal(t, "-", (*Person)(nil).DisplayName())
	assert.Equal(t, "Ann Lee", (&Person{FirstName: "Ann", LastName: "Lee"}).DisplayName())
	assert.Equal(t, "x@y.z", (&Person{Email: "x@y.z"}).DisplayName())
}
