package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"gymcore-backend/internal/audit"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/dateutil"
	"gymcore-backend/internal/models"
)

type CreateExpenseRequest struct {
	Name   string           `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"` // "YYYY-MM-DD", defaults to today
}

type UpdateExpenseRequest struct {
	Name   *string          `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"`
}

type ExpenseResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID.String(),
		Name:      e.Name,
		Amount:    e.Amount,
		Date:      dateutil.FormatDay(e.Date),
		CreatedAt: e.CreatedAt,
	}
}

// GET /api/expenses?date=YYYY-MM-DD (admin)
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{})

		if dateStr := c.Query("date"); dateStr != "" {
			d, err := dateutil.ParseDay(dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			dbq = dbq.Where("date = ?", d)
		}

		var rows []models.Expense
		if err := dbq.Order("date desc, created_at desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}

		res := make([]ExpenseResponse, 0, len(rows))
		for i := range rows {
			res = append(res, toExpenseResponse(&rows[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/expenses (admin)
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Amount == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Name and amount are required")
		}
		if !body.Amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
		}

		date := dateutil.Today()
		if body.Date != nil && *body.Date != "" {
			d, err := dateutil.ParseDay(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			date = d
		}

		exp := models.Expense{
			Name:   body.Name,
			Amount: *body.Amount,
			Date:   date,
		}

		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save expense")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Expense added: %s - %s", exp.Name, exp.Amount.StringFixed(2)),
			After:       toExpenseResponse(&exp),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(&exp))
	}
}

// PUT /api/expenses/:id (admin)
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		before := toExpenseResponse(&exp)

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			exp.Name = name
		}
		if body.Amount != nil {
			if !body.Amount.IsPositive() {
				return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
			}
			exp.Amount = *body.Amount
		}
		if body.Date != nil {
			d, err := dateutil.ParseDay(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			exp.Date = d
		}

		if err := database.DB.Save(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update expense")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Expense updated: %s", exp.Name),
			Before:      before,
			After:       toExpenseResponse(&exp),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(toExpenseResponse(&exp))
	}
}

// DELETE /api/expenses/:id (admin)
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		if err := database.DB.Delete(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Expense deleted: %s", exp.Name),
			Before:      toExpenseResponse(&exp),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
