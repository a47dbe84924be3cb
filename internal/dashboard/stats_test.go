package dashboard_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore-backend/internal/dateutil"
	"gymcore-backend/internal/models"
	"gymcore-backend/internal/testutil"
)

func TestTodayStats(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	product := &models.Product{Name: "Water", Price: decimal.NewFromInt(25), StockQuantity: 100}
	require.NoError(t, env.DB.Create(product).Error)

	// Two sales today, one from yesterday that must not count.
	require.NoError(t, env.DB.Create(&models.Sale{
		ProductID:   product.ID,
		Quantity:    2,
		TotalAmount: decimal.NewFromInt(50),
	}).Error)
	require.NoError(t, env.DB.Create(&models.Sale{
		ProductID:   product.ID,
		Quantity:    1,
		TotalAmount: decimal.NewFromInt(25),
	}).Error)
	require.NoError(t, env.DB.Create(&models.Sale{
		ProductID:   product.ID,
		Quantity:    4,
		TotalAmount: decimal.NewFromInt(100),
		CreatedAt:   time.Now().AddDate(0, 0, -1),
	}).Error)

	today := dateutil.Today()
	partial := decimal.NewFromInt(400)
	require.NoError(t, env.DB.Create(&models.Customer{
		Name:             "Ana Reyes",
		ContactNo:        "09170000001",
		PaymentMethod:    models.PaymentPartial,
		Amount:           decimal.NewFromInt(1000),
		PartialAmount:    &partial,
		RemainingAmount:  decimal.NewFromInt(600),
		RegistrationType: models.RegistrationMonthly,
		StartDate:        today,
		ExpirationDate:   dateutil.OneMonthFrom(today),
	}).Error)

	walkInAmount := decimal.NewFromInt(60)
	require.NoError(t, env.DB.Create(&models.LogEntry{
		Name:   "Carlo",
		Type:   models.LogTypeWalkIn,
		Amount: &walkInAmount,
	}).Error)
	require.NoError(t, env.DB.Create(&models.LogEntry{
		Name: "Dina",
		Type: models.LogTypeRegular,
	}).Error)

	resp := env.Request(t, http.MethodGet, "/api/stats/sales", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)

	// 50 + 25 sales, 400 partial upfront, 60 walk-in.
	assert.EqualValues(t, 535, body["todayRevenue"])
	assert.EqualValues(t, 2, body["todaySalesCount"])
}

func TestTodayStatsEmptyDay(t *testing.T) {
	env := testutil.Setup(t)
	token := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	resp := env.Request(t, http.MethodGet, "/api/stats/sales", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.Decode(t, resp)

	assert.EqualValues(t, 0, body["todayRevenue"])
	assert.EqualValues(t, 0, body["todaySalesCount"])
}
