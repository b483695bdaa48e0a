package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmorales/batch-records-api/internal/application/analytics"
	"github.com/dmorales/batch-records-api/internal/application/auth"
	"github.com/dmorales/batch-records-api/internal/application/catalog"
	"github.com/dmorales/batch-records-api/internal/application/notifications"
	"github.com/dmorales/batch-records-api/internal/application/records"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CatalogUC      *catalog.UseCase
	RecordUC       *records.UseCase
	DashboardUC    *analytics.DashboardUseCase
	NotificationUC *notifications.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público solo el login; no hay auto-registro)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)

	// Gestión de usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)

	// Catálogo: productos, formulaciones, materias primas, empaque
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Post("/", RequireRole(entity.RoleAdmin), catalogHandler.CreateProduct)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Get("/:id/formulation", catalogHandler.GetFormulation)

	rawMaterials := protected.Group("/raw-materials")
	rawMaterials.Get("/", catalogHandler.ListRawMaterials)
	rawMaterials.Post("/", RequireRole(entity.RoleAdmin), catalogHandler.CreateRawMaterial)

	protected.Get("/packaging-materials", catalogHandler.ListPackagingMaterials)

	// Cálculos de lote
	batchHandler := NewBatchHandler(deps.CatalogUC)
	batch := protected.Group("/batch")
	batch.Post("/calculate",
		RequireRole(entity.RoleOperator, entity.RoleAdmin),
		batchHandler.Calculate)
	batch.Post("/calculate-packaging",
		RequireRole(entity.RoleOperator, entity.RoleAdmin),
		batchHandler.CalculatePackaging)
	batch.Post("/calculate-time", batchHandler.CalculateTime)

	// Registros de lote y ciclo de firma
	recordHandler := NewRecordHandler(deps.RecordUC)
	recs := protected.Group("/records")
	recs.Post("/", RequireRole(entity.RoleOperator), recordHandler.Create)
	recs.Post("/complete", RequireRole(entity.RoleOperator), recordHandler.CreateComplete)
	recs.Get("/", recordHandler.List)
	recs.Get("/:id/complete", recordHandler.GetComplete)
	recs.Get("/:id/pdf", recordHandler.DownloadPDF)
	recs.Post("/:id/sign", RequireRole(entity.RoleOperator), recordHandler.Sign)
	recs.Post("/:id/verify", RequireRole(entity.RoleVerificador), recordHandler.Verify)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.Stats)

	// Alertas de stock (los verificadores no gestionan inventario)
	protected.Get("/alerts/low-stock",
		RequireRole(entity.RoleAdmin, entity.RoleOperator),
		dashboardHandler.LowStockAlerts)

	// Notificaciones
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifs := protected.Group("/notifications")
	notifs.Get("/", notificationHandler.List)
	notifs.Put("/:id/read", notificationHandler.MarkRead)
}
