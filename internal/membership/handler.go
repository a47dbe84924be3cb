package membership

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gymcore-backend/internal/audit"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/dateutil"
	"gymcore-backend/internal/models"
)

type CreateCustomerRequest struct {
	Name             string           `json:"name"`
	Address          *string          `json:"address"`
	ContactNo        string           `json:"contact_no"`
	PaymentMethod    string           `json:"payment_method"`
	Amount           *decimal.Decimal `json:"amount"`
	PartialAmount    *decimal.Decimal `json:"partial_amount"`
	RemainingAmount  *decimal.Decimal `json:"remaining_amount"`
	RegistrationType string           `json:"registration_type"`
	StartDate        *string          `json:"start_date"`
	ExpirationDate   *string          `json:"expiration_date"`
	StaffID          *string          `json:"staff_id"`
}

type RenewCustomerRequest struct {
	CustomerID      string           `json:"customer_id"`
	Name            *string          `json:"name"`
	Address         *string          `json:"address"`
	PaymentMethod   string           `json:"payment_method"`
	Amount          *decimal.Decimal `json:"amount"`
	PartialAmount   *decimal.Decimal `json:"partial_amount"`
	RemainingAmount *decimal.Decimal `json:"remaining_amount"`
	StaffID         *string          `json:"staff_id"`
}

type UpdateCustomerRequest struct {
	Name             *string          `json:"name"`
	Address          *string          `json:"address"`
	ContactNo        *string          `json:"contact_no"`
	PaymentMethod    *string          `json:"payment_method"`
	Amount           *decimal.Decimal `json:"amount"`
	PartialAmount    *decimal.Decimal `json:"partial_amount"`
	RemainingAmount  *decimal.Decimal `json:"remaining_amount"`
	RegistrationType *string          `json:"registration_type"`
	StartDate        *string          `json:"start_date"`
	ExpirationDate   *string          `json:"expiration_date"`
}

type StaffInfo struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CustomerResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Address          *string                 `json:"address"`
	ContactNo        string                  `json:"contact_no"`
	PaymentMethod    models.PaymentMethod    `json:"payment_method"`
	Amount           decimal.Decimal         `json:"amount"`
	PartialAmount    *decimal.Decimal        `json:"partial_amount"`
	RemainingAmount  decimal.Decimal         `json:"remaining_amount"`
	RegistrationType models.RegistrationType `json:"registration_type"`
	StartDate        string                  `json:"start_date"`
	ExpirationDate   string                  `json:"expiration_date"`
	Staff            *StaffInfo              `json:"staff,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

func ToCustomerResponse(c *models.Customer) CustomerResponse {
	res := CustomerResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Address:          c.Address,
		ContactNo:        c.ContactNo,
		PaymentMethod:    c.PaymentMethod,
		Amount:           c.Amount,
		PartialAmount:    c.PartialAmount,
		RemainingAmount:  c.RemainingAmount,
		RegistrationType: c.RegistrationType,
		StartDate:        dateutil.FormatDay(c.StartDate),
		ExpirationDate:   dateutil.FormatDay(c.ExpirationDate),
		CreatedAt:        c.CreatedAt,
	}
	if c.Staff != nil {
		res.Staff = &StaffInfo{
			Name:     c.Staff.Name,
			Username: c.Staff.Username,
			Email:    c.Staff.Email,
		}
	}
	return res
}

// IsActive reports whether the subscription has not yet expired as of the
// local date. Never stored; recomputed on every read.
func IsActive(c *models.Customer, today time.Time) bool {
	return !c.ExpirationDate.Before(dateutil.StartOfDay(today))
}

func validPaymentMethod(m string) bool {
	switch models.PaymentMethod(m) {
	case models.PaymentCash, models.PaymentGcash, models.PaymentPartial:
		return true
	}
	return false
}

func parseStaffID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// latestByContactNo returns the most recently created row holding the number.
func latestByContactNo(contactNo string) (*models.Customer, error) {
	var customer models.Customer
	err := database.DB.
		Where("contact_no = ?", contactNo).
		Order("created_at desc").
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GET /api/customers (alias /api/customers/all)
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Customer
		if err := database.DB.
			Preload("Staff").
			Order("created_at desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customers")
		}

		res := make([]CustomerResponse, 0, len(rows))
		for i := range rows {
			res = append(res, ToCustomerResponse(&rows[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/customers/check?contact_no=
func CheckCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contactNo := strings.TrimSpace(c.Query("contact_no"))
		if contactNo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "contact_no is required")
		}

		customer, err := latestByContactNo(contactNo)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(fiber.Map{"exists": false})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check customer")
		}

		return c.JSON(fiber.Map{
			"exists":         true,
			"customer":       ToCustomerResponse(customer),
			"isActive":       IsActive(customer, time.Now()),
			"expirationDate": dateutil.FormatDay(customer.ExpirationDate),
		})
	}
}

// POST /api/customers
// The dedup check is server-side: an active record on the same contact number
// rejects the registration with a conflict.
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.ContactNo = strings.TrimSpace(body.ContactNo)
		if body.Name == "" || body.ContactNo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and contact number are required")
		}
		if !validPaymentMethod(body.PaymentMethod) {
			return fiber.NewError(fiber.StatusBadRequest, "Payment method must be Cash, Gcash, or Partial")
		}

		registrationType := models.RegistrationType(body.RegistrationType)
		switch registrationType {
		case models.RegistrationMonthly, models.RegistrationMembership:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Registration type must be Monthly or Membership")
		}

		staffID, err := parseStaffID(body.StaffID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Staff ID is not a valid UUID")
		}

		if existing, err := latestByContactNo(body.ContactNo); err == nil && IsActive(existing, time.Now()) {
			return fiber.NewError(fiber.StatusConflict, "This contact number already has an active registration")
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check existing customers")
		}

		startDate := dateutil.Today()
		if body.StartDate != nil && *body.StartDate != "" {
			d, err := dateutil.ParseDay(*body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be 'YYYY-MM-DD'")
			}
			startDate = d
		}

		expirationDate := dateutil.OneMonthFrom(dateutil.Today())
		if body.ExpirationDate != nil && *body.ExpirationDate != "" {
			d, err := dateutil.ParseDay(*body.ExpirationDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expiration_date must be 'YYYY-MM-DD'")
			}
			expirationDate = d
		}

		amount := decimal.Zero
		if body.Amount != nil {
			amount = *body.Amount
		}
		remaining := decimal.Zero
		if body.RemainingAmount != nil {
			remaining = *body.RemainingAmount
		}

		customer := models.Customer{
			Name:             body.Name,
			Address:          body.Address,
			ContactNo:        body.ContactNo,
			PaymentMethod:    models.PaymentMethod(body.PaymentMethod),
			Amount:           amount,
			PartialAmount:    body.PartialAmount,
			RemainingAmount:  remaining,
			RegistrationType: registrationType,
			StartDate:        startDate,
			ExpirationDate:   expirationDate,
			StaffID:          staffID,
		}

		if err := database.DB.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create customer")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "customer",
			EntityID:    customer.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Customer registered: %s", customer.Name),
			After:       ToCustomerResponse(&customer),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.Status(fiber.StatusCreated).JSON(ToCustomerResponse(&customer))
	}
}

// POST /api/customers/renew
// Renewal updates the expired row in place instead of inserting a second one.
// Only Monthly registrations renew.
func RenewCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RenewCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CustomerID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Customer ID is required")
		}
		if !validPaymentMethod(body.PaymentMethod) {
			return fiber.NewError(fiber.StatusBadRequest, "Payment method must be Cash, Gcash, or Partial")
		}

		staffID, err := parseStaffID(body.StaffID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Staff ID is not a valid UUID")
		}

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", body.CustomerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		before := ToCustomerResponse(&customer)

		if customer.RegistrationType != models.RegistrationMonthly {
			return fiber.NewError(fiber.StatusBadRequest, "Only Monthly registrations can be renewed")
		}

		today := dateutil.Today()

		if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
			customer.Name = strings.TrimSpace(*body.Name)
		}
		if body.Address != nil {
			customer.Address = body.Address
		}
		customer.PaymentMethod = models.PaymentMethod(body.PaymentMethod)
		if body.Amount != nil {
			customer.Amount = *body.Amount
		} else {
			customer.Amount = decimal.Zero
		}
		customer.PartialAmount = body.PartialAmount
		if body.RemainingAmount != nil {
			customer.RemainingAmount = *body.RemainingAmount
		} else {
			customer.RemainingAmount = decimal.Zero
		}
		customer.StartDate = today
		customer.ExpirationDate = dateutil.OneMonthFrom(today)
		customer.StaffID = staffID

		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not renew customer")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "customer",
			EntityID:    customer.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Customer renewed: %s", customer.Name),
			Before:      before,
			After:       ToCustomerResponse(&customer),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(ToCustomerResponse(&customer))
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		before := ToCustomerResponse(&customer)

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			customer.Name = name
		}
		if body.Address != nil {
			customer.Address = body.Address
		}
		if body.ContactNo != nil {
			contactNo := strings.TrimSpace(*body.ContactNo)
			if contactNo == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Contact number cannot be empty")
			}
			customer.ContactNo = contactNo
		}
		if body.PaymentMethod != nil {
			if !validPaymentMethod(*body.PaymentMethod) {
				return fiber.NewError(fiber.StatusBadRequest, "Payment method must be Cash, Gcash, or Partial")
			}
			customer.PaymentMethod = models.PaymentMethod(*body.PaymentMethod)
		}
		if body.Amount != nil {
			customer.Amount = *body.Amount
		}
		if body.PartialAmount != nil {
			customer.PartialAmount = body.PartialAmount
		}
		if body.RemainingAmount != nil {
			customer.RemainingAmount = *body.RemainingAmount
		}
		if body.RegistrationType != nil {
			rt := models.RegistrationType(*body.RegistrationType)
			switch rt {
			case models.RegistrationMonthly, models.RegistrationMembership:
				customer.RegistrationType = rt
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Registration type must be Monthly or Membership")
			}
		}
		if body.StartDate != nil {
			d, err := dateutil.ParseDay(*body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be 'YYYY-MM-DD'")
			}
			customer.StartDate = d
		}
		if body.ExpirationDate != nil {
			d, err := dateutil.ParseDay(*body.ExpirationDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expiration_date must be 'YYYY-MM-DD'")
			}
			customer.ExpirationDate = d
		}

		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update customer")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "customer",
			EntityID:    customer.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Customer updated: %s", customer.Name),
			Before:      before,
			After:       ToCustomerResponse(&customer),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(ToCustomerResponse(&customer))
	}
}

// PUT /api/customers/:id/paid
// Settles a partial registration: the remaining balance drops to zero.
func MarkCustomerPaidHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		customer.RemainingAmount = decimal.Zero
		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update customer")
		}

		return c.JSON(ToCustomerResponse(&customer))
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		if err := database.DB.Delete(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete customer")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "customer",
			EntityID:    customer.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Customer deleted: %s", customer.Name),
			Before:      ToCustomerResponse(&customer),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
