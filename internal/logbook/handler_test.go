package logbook_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore-backend/internal/models"
	"gymcore-backend/internal/testutil"
)

func TestCreateRegularEntryDropsCharge(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	// Members pay nothing per visit; any amount sent along is discarded.
	resp := env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"name":           "Ana Reyes",
		"type":           "regular",
		"amount":         50,
		"payment_method": "Cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.Decode(t, resp)

	assert.Nil(t, body["amount"])
	assert.Nil(t, body["payment_method"])
}

func TestCreateWalkInRequiresAmount(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"name": "Carlo",
		"type": "walk-in",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"name":   "Carlo",
		"type":   "walk-in",
		"amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"name":           "Carlo",
		"type":           "walk-in",
		"amount":         60,
		"payment_method": "Cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.Decode(t, resp)
	assert.EqualValues(t, 60, body["amount"])
}

func TestCreateEntryValidation(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"type": "regular",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"name": "Ana",
		"type": "guest",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateEntryToRegularClearsCharge(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"name":           "Dina",
		"type":           "student",
		"amount":         40,
		"payment_method": "Cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entryID := testutil.Decode(t, resp)["id"].(string)

	resp = env.Request(t, http.MethodPut, "/api/logbook/"+entryID, token, map[string]any{
		"type": "regular",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)

	assert.Nil(t, body["amount"])
	assert.Nil(t, body["payment_method"])
}

func TestDeleteEntry(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPost, "/api/logbook", token, map[string]any{
		"name": "Ana",
		"type": "regular",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entryID := testutil.Decode(t, resp)["id"].(string)

	resp = env.Request(t, http.MethodDelete, "/api/logbook/"+entryID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	env.DB.Model(&models.LogEntry{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
