package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"gymcore-backend/internal/config"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/models"
)

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SyntheticEmail formats a bare username into the email the auth layer keys
// on. Usernames that already look like an email pass through unchanged.
func SyntheticEmail(username, domain string) string {
	username = strings.TrimSpace(strings.ToLower(username))
	if strings.Contains(username, "@") {
		return username
	}
	return username + "@" + domain
}

// POST /api/auth/register-admin
// Bootstraps the first admin account. There is no client-side admin bypass;
// role checks happen against this row only.
func RegisterAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		if body.Name == "" || body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, username, and password are required")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "An admin account already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:           body.Name,
			Username:       body.Username,
			Email:          SyntheticEmail(body.Username, cfg.AuthEmailDomain),
			PasswordHash:   string(hash),
			Role:           models.RoleAdmin,
			EmailConfirmed: true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create admin account")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
		}

		if !cfg.AuthPasswordEnabled {
			return fiber.NewError(fiber.StatusForbidden, "Password authentication is disabled. Please contact an administrator.")
		}

		email := SyntheticEmail(body.Username, cfg.AuthEmailDomain)

		var user models.User
		if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}

		if !user.EmailConfirmed {
			return fiber.NewError(fiber.StatusUnauthorized, "Email not confirmed. Please contact an administrator.")
		}

		token, expiresAt, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		now := time.Now()
		database.DB.Model(&user).Update("last_sign_in_at", &now)

		return c.JSON(fiber.Map{
			"user": fiber.Map{
				"id":       user.ID,
				"name":     user.Name,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
			},
			"session": fiber.Map{
				"access_token": token,
				"token_type":   "bearer",
				"expires_at":   expiresAt.Unix(),
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)

		var user models.User
		if err := database.DB.First(&user, "id = ?", userIDVal).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		return c.JSON(fiber.Map{
			"user_id":  user.ID,
			"name":     user.Name,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
}
