// Package testutil wires an in-memory SQLite database and the real route
// table together for handler-level tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymcore-backend/internal/app"
	"gymcore-backend/internal/auth"
	"gymcore-backend/internal/config"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/models"
)

const TestPassword = "front-desk-pass"

type Env struct {
	Cfg *config.Config
	App *fiber.App
	DB  *gorm.DB
}

// Setup opens a fresh named in-memory database, migrates the schema, points
// the global database.DB at it, and builds the app.
func Setup(t *testing.T) *Env {
	t.Helper()

	decimal.MarshalJSONWithoutQuotes = true

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db

	cfg := &config.Config{
		HTTPPort:            "0",
		JWTSecret:           strings.Repeat("front-desk-test-secret-", 2),
		CORSOrigins:         "http://localhost:5173",
		AuthEmailDomain:     "gymcore.com",
		AuthPasswordEnabled: true,
	}

	return &Env{Cfg: cfg, App: app.New(cfg), DB: db}
}

// CreateUser inserts a confirmed account with TestPassword.
func (e *Env) CreateUser(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Name:           username,
		Username:       username,
		Email:          auth.SyntheticEmail(username, e.Cfg.AuthEmailDomain),
		PasswordHash:   string(hash),
		Role:           role,
		EmailConfirmed: true,
	}
	if err := e.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *Env) Token(t *testing.T, user *models.User) string {
	t.Helper()

	token, _, err := auth.GenerateToken(e.Cfg.JWTSecret, user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// Request runs one JSON request through the real router.
func (e *Env) Request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.App.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// Decode reads the response body into a map for loose assertions.
func Decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

// DecodeList reads a JSON array response.
func DecodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()

	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
