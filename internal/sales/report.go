package sales

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"gymcore-backend/internal/database"
	"gymcore-backend/internal/dateutil"
	"gymcore-backend/internal/logbook"
	"gymcore-backend/internal/membership"
	"gymcore-backend/internal/models"
)

type DailyStats struct {
	Revenue        decimal.Decimal `json:"revenue"`
	SalesCount     int             `json:"salesCount"`
	CustomersCount int             `json:"customersCount"`
	LogbookCount   int             `json:"logbookCount"`
	Count          int             `json:"count"`
}

type DailyReportResponse struct {
	Sales     []SaleResponse                `json:"sales"`
	Customers []membership.CustomerResponse `json:"customers"`
	Logbook   []logbook.EntryResponse       `json:"logbook"`
	Stats     DailyStats                    `json:"stats"`
}

// RevenueForCustomer is what a registration contributed on its day: the
// upfront partial amount for Partial payments, the full amount otherwise.
func RevenueForCustomer(c *models.Customer) decimal.Decimal {
	if c.PaymentMethod == models.PaymentPartial {
		if c.PartialAmount == nil {
			return decimal.Zero
		}
		return *c.PartialAmount
	}
	return c.Amount
}

// RevenueForLogEntry treats a null amount (regular visits) as zero.
func RevenueForLogEntry(e *models.LogEntry) decimal.Decimal {
	if e.Amount == nil {
		return decimal.Zero
	}
	return *e.Amount
}

// GET /api/sales/date?date=YYYY-MM-DD
//
// Read-side aggregation over the local calendar day, recomputed on every
// call. Nothing is cached or persisted.
func DailyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateStr := c.Query("date")
		if dateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Date parameter is required")
		}

		start, end, err := dateutil.DayRange(dateStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
		}

		var daySales []models.Sale
		if err := database.DB.
			Preload("Product").
			Preload("Staff").
			Where("created_at >= ? AND created_at <= ?", start, end).
			Order("created_at desc").
			Find(&daySales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch sales for date")
		}

		var dayCustomers []models.Customer
		if err := database.DB.
			Preload("Staff").
			Where("created_at >= ? AND created_at <= ?", start, end).
			Order("created_at desc").
			Find(&dayCustomers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch customers for date")
		}

		var dayLogbook []models.LogEntry
		if err := database.DB.
			Preload("Staff").
			Where("created_at >= ? AND created_at <= ?", start, end).
			Order("created_at desc").
			Find(&dayLogbook).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not fetch logbook for date")
		}

		salesRevenue := decimal.Zero
		salesRes := make([]SaleResponse, 0, len(daySales))
		for i := range daySales {
			salesRevenue = salesRevenue.Add(daySales[i].TotalAmount)
			salesRes = append(salesRes, toSaleResponse(&daySales[i]))
		}

		customerRevenue := decimal.Zero
		customersRes := make([]membership.CustomerResponse, 0, len(dayCustomers))
		for i := range dayCustomers {
			customerRevenue = customerRevenue.Add(RevenueForCustomer(&dayCustomers[i]))
			customersRes = append(customersRes, membership.ToCustomerResponse(&dayCustomers[i]))
		}

		logbookRevenue := decimal.Zero
		logbookRes := make([]logbook.EntryResponse, 0, len(dayLogbook))
		for i := range dayLogbook {
			logbookRevenue = logbookRevenue.Add(RevenueForLogEntry(&dayLogbook[i]))
			logbookRes = append(logbookRes, logbook.ToEntryResponse(&dayLogbook[i]))
		}

		totalRevenue := salesRevenue.Add(customerRevenue).Add(logbookRevenue)

		return c.JSON(DailyReportResponse{
			Sales:     salesRes,
			Customers: customersRes,
			Logbook:   logbookRes,
			Stats: DailyStats{
				Revenue:        totalRevenue,
				SalesCount:     len(daySales),
				CustomersCount: len(dayCustomers),
				LogbookCount:   len(dayLogbook),
				Count:          len(daySales) + len(dayCustomers) + len(dayLogbook),
			},
		})
	}
}
