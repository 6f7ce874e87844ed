package routes

import (
	"posinsights/handlers"
	"posinsights/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)
	auth.Post("/users", handlers.HandleCreateUser)

	// --- Owner Routes (insights & management) ---
	insights := api.Group("/insights", middleware.Authenticate, middleware.CheckRole("owner"))

	insights.Get("/forecast", handlers.HandleGetForecastReport)
	insights.Post("/forecast/snapshots", handlers.HandleSaveForecastSnapshot)
	insights.Get("/forecast/snapshots", handlers.HandleListForecastSnapshots)
	insights.Get("/forecast/snapshots/:snapshotId", handlers.HandleGetForecastSnapshot)
	insights.Post("/forecast/narrative", handlers.HandleForecastNarrative)

	insights.Get("/profit", handlers.HandleGetProfitReport)
	insights.Post("/stock-take/variance", handlers.HandleStockTakeVariance)
	insights.Get("/stock-takes", handlers.HandleListStockTakes)
	insights.Get("/price-comparison", handlers.HandleGetPriceComparison)

	// Supplier directory (owner only)
	api.Get("/suppliers", middleware.Authenticate, middleware.CheckRole("owner"), handlers.HandleListSuppliers)

	// --- Shared Routes (owner and cashier) ---
	api.Get("/rates", middleware.Authenticate, handlers.HandleGetExchangeRates)
	api.Get("/license", middleware.Authenticate, handlers.HandleGetLicenseStatus)

	// --- Drawer Routes ---
	drawer := api.Group("/drawer", middleware.Authenticate)
	drawer.Post("/open", handlers.HandleOpenDrawer)
	drawer.Post("/:sessionId/movements", handlers.HandleAddDrawerMovement)
	drawer.Post("/:sessionId/close", handlers.HandleCloseDrawer)
	drawer.Get("/sessions", handlers.HandleListDrawerSessions)
}
