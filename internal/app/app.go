package app

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"

	"gymcore-backend/internal/admin"
	"gymcore-backend/internal/audit"
	"gymcore-backend/internal/auth"
	"gymcore-backend/internal/config"
	"gymcore-backend/internal/dashboard"
	"gymcore-backend/internal/database"
	"gymcore-backend/internal/expense"
	"gymcore-backend/internal/inventory"
	"gymcore-backend/internal/locker"
	"gymcore-backend/internal/logbook"
	"gymcore-backend/internal/membership"
	"gymcore-backend/internal/models"
	"gymcore-backend/internal/note"
	"gymcore-backend/internal/sales"
)

// New builds the Fiber app with the full route table. main and the tests both
// go through here.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Msg("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/user/role/:id", admin.UserRoleHandler())

	protected.Get("/test-db", func(c *fiber.Ctx) error {
		var one int
		if err := database.DB.Raw("SELECT 1").Scan(&one).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Database connection failed")
		}
		return c.JSON(fiber.Map{"status": "connected", "message": "Database connection successful"})
	})

	// Admin-only routes. The guard is attached per-route: a Group("")/Use
	// combination shares the /api prefix and would apply the role check to
	// every protected route below as well.
	requireAdmin := auth.RequireRole(models.RoleAdmin)

	// Staff accounts
	protected.Post("/users/create", requireAdmin, admin.CreateUserHandler(cfg))
	protected.Post("/users/update", requireAdmin, admin.UpdateUserHandler(cfg))
	protected.Get("/users", requireAdmin, admin.ListUsersHandler())
	protected.Post("/users/:id/confirm", requireAdmin, admin.ConfirmUserHandler())
	protected.Delete("/users/:id", requireAdmin, admin.DeleteUserHandler())

	// Expenses
	protected.Get("/expenses", requireAdmin, expense.ListExpensesHandler())
	protected.Post("/expenses", requireAdmin, expense.CreateExpenseHandler())
	protected.Put("/expenses/:id", requireAdmin, expense.UpdateExpenseHandler())
	protected.Delete("/expenses/:id", requireAdmin, expense.DeleteExpenseHandler())

	// Audit trail
	protected.Get("/audit-logs", requireAdmin, audit.ListAuditLogsHandler())

	// Products
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Post("/products", inventory.CreateProductHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler())
	protected.Delete("/products/:id", inventory.DeleteProductHandler())

	// Point of sale
	protected.Get("/sales", sales.ListSalesHandler())
	protected.Get("/sales/date", sales.DailyReportHandler())
	protected.Post("/sales", sales.CreateSaleHandler())
	protected.Put("/sales/:id", sales.UpdateSaleHandler())
	protected.Delete("/sales/:id", sales.DeleteSaleHandler())

	// Dashboard
	protected.Get("/stats/sales", dashboard.TodayStatsHandler())

	// Customers
	protected.Get("/customers", membership.ListCustomersHandler())
	protected.Get("/customers/all", membership.ListCustomersHandler())
	protected.Get("/customers/check", membership.CheckCustomerHandler())
	protected.Post("/customers", membership.CreateCustomerHandler())
	protected.Post("/customers/renew", membership.RenewCustomerHandler())
	protected.Put("/customers/:id/paid", membership.MarkCustomerPaidHandler())
	protected.Put("/customers/:id", membership.UpdateCustomerHandler())
	protected.Delete("/customers/:id", membership.DeleteCustomerHandler())

	// Logbook
	protected.Get("/logbook", logbook.ListEntriesHandler())
	protected.Post("/logbook", logbook.CreateEntryHandler())
	protected.Put("/logbook/:id", logbook.UpdateEntryHandler())
	protected.Delete("/logbook/:id", logbook.DeleteEntryHandler())

	// Lockers
	protected.Get("/lockers", locker.ListLockersHandler())
	protected.Post("/lockers", locker.CreateLockerHandler())
	protected.Put("/lockers/:id/renew", locker.RenewLockerHandler())
	protected.Put("/lockers/:id", locker.UpdateLockerHandler())
	protected.Delete("/lockers/:id", locker.DeleteLockerHandler())

	// Notes
	protected.Get("/notes", note.ListNotesHandler())
	protected.Post("/notes", note.CreateNoteHandler())
	protected.Put("/notes/:id", note.UpdateNoteHandler())
	protected.Delete("/notes/:id", note.DeleteNoteHandler())

	return app
}
