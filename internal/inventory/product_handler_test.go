package inventory_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore-backend/internal/models"
	"gymcore-backend/internal/testutil"
)

func TestProductLifecycle(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPost, "/api/products", token, map[string]any{
		"name":           "Protein Bar",
		"price":          50,
		"stock_quantity": 24,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := testutil.Decode(t, resp)
	productID := created["id"].(string)
	assert.EqualValues(t, 24, created["stock_quantity"])

	// Updating stock here overwrites it outright.
	resp = env.Request(t, http.MethodPut, "/api/products/"+productID, token, map[string]any{
		"price":          55,
		"stock_quantity": 40,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := testutil.Decode(t, resp)
	assert.EqualValues(t, 55, updated["price"])
	assert.EqualValues(t, 40, updated["stock_quantity"])

	resp = env.Request(t, http.MethodGet, "/api/products", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testutil.DecodeList(t, resp), 1)

	resp = env.Request(t, http.MethodDelete, "/api/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	env.DB.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateProductValidation(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"price": 50}},
		{"missing price", map[string]any{"name": "Protein Bar"}},
		{"negative price", map[string]any{"name": "Protein Bar", "price": -1}},
		{"negative stock", map[string]any{"name": "Protein Bar", "price": 50, "stock_quantity": -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.Request(t, http.MethodPost, "/api/products", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestUpdateProductUnknown(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPut, "/api/products/"+uuid.NewString(), token, map[string]any{
		"price": 10,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
