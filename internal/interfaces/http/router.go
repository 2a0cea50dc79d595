package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Toner-api/internal/application/analytics"
	"github.com/jhoicas/Toner-api/internal/application/auth"
	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/application/requests"
	"github.com/jhoicas/Toner-api/internal/application/usecase"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Ledger        *inventory.StockLedger
	Transfers     *inventory.TransferCoordinator
	Replenishment *inventory.ReplenishmentUseCase
	Workflow      *requests.Workflow
	UnitUC        *usecase.UnitUseCase
	ItemUC        *usecase.SupplyItemUseCase
	SectorUC      *usecase.SectorUseCase
	UserUC        *usecase.UserUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ReportUC      *appanalytics.ReportUseCase
	// MetricsHandler expone /metrics; nil no registra la ruta.
	MetricsHandler fiber.Handler
	// HealthChecks dependencias verificadas por /health (ej. "postgres", "redis").
	HealthChecks map[string]func(ctx context.Context) error
	AppName        string
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.AppName, deps.HealthChecks))
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	api := app.Group("/api")
	managers := RequireRole(entity.ManagerRoles...)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Stock
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Transfers, deps.Replenishment)
	stock := protected.Group("/stock")
	stock.Get("/", inventoryHandler.ListStock)
	stock.Get("/low", inventoryHandler.ListLowStock)
	stock.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	stock.Post("/adjust", managers, inventoryHandler.Adjust)
	stock.Put("/min-alert", managers, inventoryHandler.UpdateMinAlert)
	stock.Post("/transfers", managers, inventoryHandler.Transfer)
	protected.Get("/transactions", inventoryHandler.ListTransactions)

	// Solicitudes
	requestHandler := NewRequestHandler(deps.Workflow)
	reqs := protected.Group("/requests")
	reqs.Get("/", requestHandler.List)
	reqs.Get("/pending-count", requestHandler.PendingCount)
	reqs.Get("/:id", requestHandler.GetByID)
	reqs.Post("/", RequireRole(entity.RequesterRoles...), requestHandler.Submit)
	reqs.Post("/:id/decision", managers, requestHandler.Decide)

	// Catálogo
	unitHandler := NewUnitHandler(deps.UnitUC)
	units := protected.Group("/units")
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Post("/", managers, unitHandler.Create)
	units.Put("/:id", managers, unitHandler.Update)
	units.Delete("/:id", managers, unitHandler.Delete)

	itemHandler := NewSupplyItemHandler(deps.ItemUC)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", managers, itemHandler.Create)
	items.Put("/:id", managers, itemHandler.Update)
	items.Delete("/:id", managers, itemHandler.Delete)

	sectorHandler := NewSectorHandler(deps.SectorUC)
	sectors := protected.Group("/sectors")
	sectors.Get("/", sectorHandler.List)
	sectors.Get("/:id", sectorHandler.GetByID)
	sectors.Post("/", managers, sectorHandler.Create)
	sectors.Put("/:id", managers, sectorHandler.Update)
	sectors.Delete("/:id", managers, sectorHandler.Delete)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/reports/stock.pdf", dashboardHandler.StockReportPDF)
}

// healthHandler responde 503 si alguna dependencia no contesta.
func healthHandler(appName string, checks map[string]func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		failed := fiber.Map{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded", "service": appName, "failed": failed,
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	}
}
