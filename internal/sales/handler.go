package sales

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"gymcore-backend/internal/audit"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/models"
)

type CreateSaleRequest struct {
	ProductID     string           `json:"product_id"`
	Quantity      int              `json:"quantity"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
	PaymentMethod *string          `json:"payment_method"`
	StaffID       *string          `json:"staff_id"`
}

type UpdateSaleRequest struct {
	ProductID   string           `json:"product_id"`
	Quantity    int              `json:"quantity"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

type ProductInfo struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

type StaffInfo struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Product       *ProductInfo    `json:"product,omitempty"`
	Quantity      int             `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod *string         `json:"payment_method"`
	StaffID       *string         `json:"staff_id"`
	Staff         *StaffInfo      `json:"staff,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toSaleResponse(s *models.Sale) SaleResponse {
	res := SaleResponse{
		ID:            s.ID.String(),
		ProductID:     s.ProductID.String(),
		Quantity:      s.Quantity,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
	}
	if s.StaffID != nil {
		id := s.StaffID.String()
		res.StaffID = &id
	}
	if s.Product.ID != uuid.Nil {
		res.Product = &ProductInfo{
			ID:            s.Product.ID.String(),
			Name:          s.Product.Name,
			Price:         s.Product.Price,
			StockQuantity: s.Product.StockQuantity,
		}
	}
	if s.Staff != nil {
		res.Staff = &StaffInfo{
			Name:     s.Staff.Name,
			Username: s.Staff.Username,
			Email:    s.Staff.Email,
		}
	}
	return res
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

// GET /api/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Sale
		if err := database.DB.
			Preload("Product").
			Preload("Staff").
			Order("created_at desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales")
		}

		res := make([]SaleResponse, 0, len(rows))
		for i := range rows {
			res = append(res, toSaleResponse(&rows[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/sales
//
// Stock is decremented before the sale row is inserted and is NOT rolled back
// if the insert fails; a failed create can leave stock reduced with no sale
// recorded. Kept as specified.
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductID == "" || body.Quantity <= 0 || body.TotalAmount == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Product ID, quantity, and total amount are required")
		}

		productID, err := uuid.Parse(body.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Product ID is not a valid UUID")
		}

		staffID, err := parseStaffID(body.StaffID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Staff ID is not a valid UUID")
		}

		if err := debitStock(database.DB, productID, body.Quantity); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		sale := models.Sale{
			ProductID:     productID,
			Quantity:      body.Quantity,
			TotalAmount:   *body.TotalAmount,
			PaymentMethod: body.PaymentMethod,
			StaffID:       staffID,
		}

		if err := database.DB.Create(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create sale")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sale recorded: qty %d", sale.Quantity),
			After:       toSaleResponse(&sale),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(&sale))
	}
}

// PUT /api/sales/:id
//
// The old product is credited before the new one is debited, so updating the
// quantity in place on the same product nets old_stock + old_qty - new_qty.
func UpdateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductID == "" || body.Quantity <= 0 || body.TotalAmount == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Product ID, quantity, and total amount are required")
		}

		newProductID, err := uuid.Parse(body.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Product ID is not a valid UUID")
		}

		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}
		before := toSaleResponse(&sale)

		if err := creditStock(database.DB, sale.ProductID, sale.Quantity); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not restore stock")
		}

		if err := debitStock(database.DB, newProductID, body.Quantity); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		sale.ProductID = newProductID
		sale.Quantity = body.Quantity
		sale.TotalAmount = *body.TotalAmount

		if err := database.DB.Save(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update sale")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Sale updated: qty %d", sale.Quantity),
			Before:      before,
			After:       toSaleResponse(&sale),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(toSaleResponse(&sale))
	}
}

// DELETE /api/sales/:id
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sale not found")
		}

		if err := creditStock(database.DB, sale.ProductID, sale.Quantity); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not restore stock")
		}

		if err := database.DB.Delete(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete sale")
		}

		userID, userName := audit.Actor(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Sale deleted: qty %d", sale.Quantity),
			Before:      toSaleResponse(&sale),
		}); logErr != nil {
			log.Warn().Err(logErr).Msg("audit log write failed")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
