package locker_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore-backend/internal/dateutil"
	"gymcore-backend/internal/models"
	"gymcore-backend/internal/testutil"
)

func TestCreateLockerDatesRegistration(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPost, "/api/lockers", token, map[string]any{
		"name":           "Ana Reyes",
		"locker_number":  "A-12",
		"payment_method": "Cash",
		"amount":         100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.Decode(t, resp)

	assert.Equal(t, dateutil.FormatDay(dateutil.Today()), body["registered_date"])
	assert.Equal(t, dateutil.FormatDay(dateutil.OneMonthFrom(dateutil.Today())), body["expiration_date"])
}

func TestCreateLockerValidation(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing locker number", map[string]any{"name": "Ana", "payment_method": "Cash", "amount": 100}},
		{"missing amount", map[string]any{"name": "Ana", "locker_number": "A-12", "payment_method": "Cash"}},
		{"zero amount", map[string]any{"name": "Ana", "locker_number": "A-12", "payment_method": "Cash", "amount": 0}},
		{"bad payment method", map[string]any{"name": "Ana", "locker_number": "A-12", "payment_method": "Check", "amount": 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.Request(t, http.MethodPost, "/api/lockers", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRenewLockerRedates(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	yesterday := dateutil.Today().AddDate(0, 0, -40)
	locker := &models.Locker{
		Name:           "Ana Reyes",
		LockerNumber:   "A-12",
		PaymentMethod:  models.PaymentCash,
		Amount:         decimal.NewFromInt(100),
		RegisteredDate: yesterday,
		ExpirationDate: yesterday.AddDate(0, 1, 0),
	}
	require.NoError(t, env.DB.Create(locker).Error)

	resp := env.Request(t, http.MethodPut, "/api/lockers/"+locker.ID.String()+"/renew", token, map[string]any{
		"payment_method": "Gcash",
		"amount":         120,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)

	assert.Equal(t, dateutil.FormatDay(dateutil.Today()), body["registered_date"])
	assert.Equal(t, dateutil.FormatDay(dateutil.OneMonthFrom(dateutil.Today())), body["expiration_date"])
	assert.Equal(t, "Gcash", body["payment_method"])
	assert.EqualValues(t, 120, body["amount"])
}

func TestListLockersOrdersByNumber(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	for _, num := range []string{"B-02", "A-01", "A-10"} {
		resp := env.Request(t, http.MethodPost, "/api/lockers", token, map[string]any{
			"name":           "Ana",
			"locker_number":  num,
			"payment_method": "Cash",
			"amount":         100,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := env.Request(t, http.MethodGet, "/api/lockers", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := testutil.DecodeList(t, resp)
	require.Len(t, rows, 3)

	assert.Equal(t, "A-01", rows[0]["locker_number"])
	assert.Equal(t, "A-10", rows[1]["locker_number"])
	assert.Equal(t, "B-02", rows[2]["locker_number"])
}

func TestDeleteLocker(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodPost, "/api/lockers", token, map[string]any{
		"name":           "Ana",
		"locker_number":  "A-12",
		"payment_method": "Cash",
		"amount":         100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	lockerID := testutil.Decode(t, resp)["id"].(string)

	resp = env.Request(t, http.MethodDelete, "/api/lockers/"+lockerID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	env.DB.Model(&models.Locker{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
