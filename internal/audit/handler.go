package audit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymcore-backend/internal/auth"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/models"
)

// Actor resolves the acting user for audit entries from the request context.
func Actor(c *fiber.Ctx) (uuid.UUID, string) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ""
	}

	var user models.User
	if err := database.DB.Select("name").First(&user, "id = ?", userID).Error; err != nil {
		return userID, ""
	}
	return userID, user.Name
}

// GET /api/audit-logs?entity_type=sale&limit=100 (admin)
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if et := c.Query("entity_type"); et != "" {
			dbq = dbq.Where("entity_type = ?", et)
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		return c.JSON(logs)
	}
}
