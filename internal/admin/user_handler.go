package admin

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"gymcore-backend/internal/auth"
	"gymcore-backend/internal/config"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/models"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	UserID   string  `json:"user_id"`
	Name     *string `json:"name"`
	Username *string `json:"username"`
}

type UserResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         models.UserRole `json:"role"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		LastSignInAt: u.LastSignInAt,
		CreatedAt:    u.CreatedAt,
	}
}

// POST /api/users/create (admin)
// Accounts are created confirmed so staff can log in immediately.
func CreateUserHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		if body.Name == "" || body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, username, and password are required")
		}

		email := auth.SyntheticEmail(body.Username, cfg.AuthEmailDomain)

		var count int64
		database.DB.Model(&models.User{}).
			Where("username = ? OR email = ?", body.Username, email).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Username is already taken")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:           body.Name,
			Username:       body.Username,
			Email:          email,
			PasswordHash:   string(hash),
			Role:           models.RoleStaff,
			EmailConfirmed: true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"user":    toUserResponse(&user),
			"message": "Staff member created successfully and can login immediately",
		})
	}
}

// POST /api/users/update (admin)
func UpdateUserHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "User ID is required")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			user.Name = name
		}

		if body.Username != nil {
			username := strings.TrimSpace(strings.ToLower(*body.Username))
			if username == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Username cannot be empty")
			}
			// Renaming re-derives the login email.
			user.Username = username
			user.Email = auth.SyntheticEmail(username, cfg.AuthEmailDomain)
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}

		return c.JSON(toUserResponse(&user))
	}
}

// GET /api/users (admin)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		res := make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, toUserResponse(&users[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/users/:id/confirm (admin)
// Recovers accounts created before auto-confirm existed.
func ConfirmUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		user.EmailConfirmed = true
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not confirm user")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "User email confirmed successfully",
			"user":    toUserResponse(&user),
		})
	}
}

// DELETE /api/users/:id (admin)
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}

		return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
	}
}

// GET /api/user/role/:id (any authenticated user)
func UserRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.Select("role").First(&user, "id = ?", id).Error; err != nil {
			// Missing rows default to staff, matching the front desk client.
			return c.JSON(fiber.Map{"role": models.RoleStaff})
		}

		return c.JSON(fiber.Map{"role": user.Role})
	}
}
