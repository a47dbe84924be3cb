package logbook

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gymcore-backend/internal/database"
	"gymcore-backend/internal/models"
)

type CreateEntryRequest struct {
	Name          string           `json:"name"`
	Address       *string          `json:"address"`
	Type          string           `json:"type"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"payment_method"`
	StaffID       *string          `json:"staff_id"`
}

type StaffInfo struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type EntryResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Address       *string             `json:"address"`
	Type          models.LogEntryType `json:"type"`
	Amount        *decimal.Decimal    `json:"amount"`
	PaymentMethod *string             `json:"payment_method"`
	Staff         *StaffInfo          `json:"staff,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

func ToEntryResponse(e *models.LogEntry) EntryResponse {
	res := EntryResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		Address:       e.Address,
		Type:          e.Type,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt,
	}
	if e.Staff != nil {
		res.Staff = &StaffInfo{
			Name:     e.Staff.Name,
			Username: e.Staff.Username,
			Email:    e.Staff.Email,
		}
	}
	return res
}

func validEntryType(t string) bool {
	switch models.LogEntryType(t) {
	case models.LogTypeRegular, models.LogTypeStudent, models.LogTypeWalkIn:
		return true
	}
	return false
}

// normalizeCharge enforces the logbook charge rule: regular visits carry no
// amount and no payment method; paying types need a positive amount.
func normalizeCharge(entryType models.LogEntryType, amount *decimal.Decimal, paymentMethod *string) (*decimal.Decimal, *string, error) {
	if entryType == models.LogTypeRegular {
		return nil, nil, nil
	}
	if amount == nil || !amount.IsPositive() {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Amount is required for student and walk-in entries")
	}
	return amount, paymentMethod, nil
}

// GET /api/logbook
func ListEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.LogEntry
		if err := database.DB.
			Preload("Staff").
			Order("created_at desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list logbook entries")
		}

		res := make([]EntryResponse, 0, len(rows))
		for i := range rows {
			res = append(res, ToEntryResponse(&rows[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/logbook
func CreateEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and type are required")
		}
		if !validEntryType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "Type must be regular, student, or walk-in")
		}

		entryType := models.LogEntryType(body.Type)
		amount, paymentMethod, err := normalizeCharge(entryType, body.Amount, body.PaymentMethod)
		if err != nil {
			return err
		}

		var staffID *uuid.UUID
		if body.StaffID != nil && *body.StaffID != "" {
			id, err := uuid.Parse(*body.StaffID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Staff ID is not a valid UUID")
			}
			staffID = &id
		}

		entry := models.LogEntry{
			Name:          body.Name,
			Address:       body.Address,
			Type:          entryType,
			Amount:        amount,
			PaymentMethod: paymentMethod,
			StaffID:       staffID,
		}

		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create logbook entry")
		}

		return c.Status(fiber.StatusCreated).JSON(ToEntryResponse(&entry))
	}
}

// PUT /api/logbook/:id
func UpdateEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.LogEntry
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Logbook entry not found")
		}

		var body CreateEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != "" {
			entry.Name = strings.TrimSpace(body.Name)
		}
		if body.Address != nil {
			entry.Address = body.Address
		}
		if body.Type != "" {
			if !validEntryType(body.Type) {
				return fiber.NewError(fiber.StatusBadRequest, "Type must be regular, student, or walk-in")
			}
			entry.Type = models.LogEntryType(body.Type)
		}

		amount, paymentMethod, err := normalizeCharge(entry.Type, body.Amount, body.PaymentMethod)
		if err != nil {
			return err
		}
		entry.Amount = amount
		entry.PaymentMethod = paymentMethod

		if err := database.DB.Save(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update logbook entry")
		}

		return c.JSON(ToEntryResponse(&entry))
	}
}

// DELETE /api/logbook/:id
func DeleteEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.LogEntry{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete logbook entry")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
