package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"gymcore-backend/internal/database"
	"gymcore-backend/internal/dateutil"
	"gymcore-backend/internal/models"
	"gymcore-backend/internal/sales"
)

type TodayStatsResponse struct {
	TodayRevenue    decimal.Decimal `json:"todayRevenue"`
	TodaySalesCount int             `json:"todaySalesCount"`
}

// GET /api/stats/sales
// Today's revenue across sales, registrations, and logbook charges.
func TodayStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		today := dateutil.Today()
		tomorrow := today.Add(24 * time.Hour)

		var todaySales []models.Sale
		if err := database.DB.
			Where("created_at >= ? AND created_at < ?", today, tomorrow).
			Find(&todaySales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch statistics")
		}

		var todayCustomers []models.Customer
		if err := database.DB.
			Where("created_at >= ? AND created_at < ?", today, tomorrow).
			Find(&todayCustomers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch statistics")
		}

		var todayLogbook []models.LogEntry
		if err := database.DB.
			Where("created_at >= ? AND created_at < ?", today, tomorrow).
			Find(&todayLogbook).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch statistics")
		}

		revenue := decimal.Zero
		for i := range todaySales {
			revenue = revenue.Add(todaySales[i].TotalAmount)
		}
		for i := range todayCustomers {
			revenue = revenue.Add(sales.RevenueForCustomer(&todayCustomers[i]))
		}
		for i := range todayLogbook {
			revenue = revenue.Add(sales.RevenueForLogEntry(&todayLogbook[i]))
		}

		return c.JSON(TodayStatsResponse{
			TodayRevenue:    revenue,
			TodaySalesCount: len(todaySales),
		})
	}
}
