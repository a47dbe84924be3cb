package locker

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gymcore-backend/internal/database"
	"gymcore-backend/internal/dateutil"
	"gymcore-backend/internal/models"
)

type CreateLockerRequest struct {
	Name          string           `json:"name"`
	LockerNumber  string           `json:"locker_number"`
	PaymentMethod string           `json:"payment_method"`
	Amount        *decimal.Decimal `json:"amount"`
	StaffID       *string          `json:"staff_id"`
}

type UpdateLockerRequest struct {
	Name           *string          `json:"name"`
	LockerNumber   *string          `json:"locker_number"`
	PaymentMethod  *string          `json:"payment_method"`
	Amount         *decimal.Decimal `json:"amount"`
	RegisteredDate *string          `json:"registered_date"`
	ExpirationDate *string          `json:"expiration_date"`
}

type RenewLockerRequest struct {
	PaymentMethod string           `json:"payment_method"`
	Amount        *decimal.Decimal `json:"amount"`
	StaffID       *string          `json:"staff_id"`
}

type LockerResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	LockerNumber   string               `json:"locker_number"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
	Amount         decimal.Decimal      `json:"amount"`
	RegisteredDate string               `json:"registered_date"`
	ExpirationDate string               `json:"expiration_date"`
	CreatedAt      time.Time            `json:"created_at"`
}

func toLockerResponse(l *models.Locker) LockerResponse {
	return LockerResponse{
		ID:             l.ID.String(),
		Name:           l.Name,
		LockerNumber:   l.LockerNumber,
		PaymentMethod:  l.PaymentMethod,
		Amount:         l.Amount,
		RegisteredDate: dateutil.FormatDay(l.RegisteredDate),
		ExpirationDate: dateutil.FormatDay(l.ExpirationDate),
		CreatedAt:      l.CreatedAt,
	}
}

func validPaymentMethod(m string) bool {
	switch models.PaymentMethod(m) {
	case models.PaymentCash, models.PaymentGcash, models.PaymentPartial:
		return true
	}
	return false
}

// GET /api/lockers
func ListLockersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Locker
		if err := database.DB.Order("locker_number asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list lockers")
		}

		res := make([]LockerResponse, 0, len(rows))
		for i := range rows {
			res = append(res, toLockerResponse(&rows[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/lockers
// A new registration runs from today to one month out.
func CreateLockerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLockerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.LockerNumber = strings.TrimSpace(body.LockerNumber)
		if body.Name == "" || body.LockerNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and locker number are required")
		}
		if !validPaymentMethod(body.PaymentMethod) {
			return fiber.NewError(fiber.StatusBadRequest, "Payment method must be Cash, Gcash, or Partial")
		}
		if body.Amount == nil || !body.Amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
		}

		var staffID *uuid.UUID
		if body.StaffID != nil && *body.StaffID != "" {
			id, err := uuid.Parse(*body.StaffID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Staff ID is not a valid UUID")
			}
			staffID = &id
		}

		today := dateutil.Today()
		locker := models.Locker{
			Name:           body.Name,
			LockerNumber:   body.LockerNumber,
			PaymentMethod:  models.PaymentMethod(body.PaymentMethod),
			Amount:         *body.Amount,
			RegisteredDate: today,
			ExpirationDate: dateutil.OneMonthFrom(today),
			StaffID:        staffID,
		}

		if err := database.DB.Create(&locker).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not register locker")
		}

		return c.Status(fiber.StatusCreated).JSON(toLockerResponse(&locker))
	}
}

// PUT /api/lockers/:id
func UpdateLockerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var locker models.Locker
		if err := database.DB.First(&locker, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Locker not found")
		}

		var body UpdateLockerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			locker.Name = name
		}
		if body.LockerNumber != nil {
			num := strings.TrimSpace(*body.LockerNumber)
			if num == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Locker number cannot be empty")
			}
			locker.LockerNumber = num
		}
		if body.PaymentMethod != nil {
			if !validPaymentMethod(*body.PaymentMethod) {
				return fiber.NewError(fiber.StatusBadRequest, "Payment method must be Cash, Gcash, or Partial")
			}
			locker.PaymentMethod = models.PaymentMethod(*body.PaymentMethod)
		}
		if body.Amount != nil {
			if !body.Amount.IsPositive() {
				return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
			}
			locker.Amount = *body.Amount
		}
		if body.RegisteredDate != nil {
			d, err := dateutil.ParseDay(*body.RegisteredDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "registered_date must be 'YYYY-MM-DD'")
			}
			locker.RegisteredDate = d
		}
		if body.ExpirationDate != nil {
			d, err := dateutil.ParseDay(*body.ExpirationDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expiration_date must be 'YYYY-MM-DD'")
			}
			locker.ExpirationDate = d
		}

		if err := database.DB.Save(&locker).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update locker")
		}

		return c.JSON(toLockerResponse(&locker))
	}
}

// PUT /api/lockers/:id/renew
// Re-dates the registration to today and pushes expiration one month out.
func RenewLockerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var locker models.Locker
		if err := database.DB.First(&locker, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Locker not found")
		}

		var body RenewLockerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if !validPaymentMethod(body.PaymentMethod) {
			return fiber.NewError(fiber.StatusBadRequest, "Payment method must be Cash, Gcash, or Partial")
		}
		if body.Amount == nil || !body.Amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
		}

		if body.StaffID != nil && *body.StaffID != "" {
			staffID, err := uuid.Parse(*body.StaffID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Staff ID is not a valid UUID")
			}
			locker.StaffID = &staffID
		}

		today := dateutil.Today()
		locker.PaymentMethod = models.PaymentMethod(body.PaymentMethod)
		locker.Amount = *body.Amount
		locker.RegisteredDate = today
		locker.ExpirationDate = dateutil.OneMonthFrom(today)

		if err := database.DB.Save(&locker).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not renew locker")
		}

		return c.JSON(toLockerResponse(&locker))
	}
}

// DELETE /api/lockers/:id
func DeleteLockerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Locker{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete locker")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
