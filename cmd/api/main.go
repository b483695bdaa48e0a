package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmorales/batch-records-api/internal/application/analytics"
	"github.com/dmorales/batch-records-api/internal/application/audit"
	"github.com/dmorales/batch-records-api/internal/application/auth"
	"github.com/dmorales/batch-records-api/internal/application/catalog"
	"github.com/dmorales/batch-records-api/internal/application/notifications"
	"github.com/dmorales/batch-records-api/internal/application/records"
	infrapdf "github.com/dmorales/batch-records-api/internal/infrastructure/pdf"
	"github.com/dmorales/batch-records-api/internal/infrastructure/signature"
	"github.com/dmorales/batch-records-api/internal/infrastructure/sqlite"
	httpRouter "github.com/dmorales/batch-records-api/internal/interfaces/http"
	"github.com/dmorales/batch-records-api/pkg/config"
	"github.com/dmorales/batch-records-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("apertura de la base de datos")
	}
	defer db.Close()

	if err := sqlite.InitSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("inicialización del esquema")
	}

	userRepo := sqlite.NewUserRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	formulaRepo := sqlite.NewFormulationRepository(db)
	materialRepo := sqlite.NewRawMaterialRepository(db)
	packagingRepo := sqlite.NewPackagingRepository(db)
	settingRepo := sqlite.NewSettingRepository(db)
	recordRepo := sqlite.NewRecordRepository(db)
	lineRepo := sqlite.NewBatchFormulationRepository(db)
	sigRepo := sqlite.NewSignatureRepository(db)
	notifRepo := sqlite.NewNotificationRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	auditSvc := audit.NewService(auditRepo, log)
	sigSvc := signature.NewService(cfg.Batch.SigningMasterSecret)
	pdfGenerator := infrapdf.NewMarotoRecordGenerator()

	authUC := auth.NewAuthUseCase(userRepo, sessionRepo, sigRepo, sigSvc, auditSvc, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Batch.BcryptCost)
	catalogUC := catalog.NewUseCase(productRepo, formulaRepo, materialRepo, packagingRepo, settingRepo, auditSvc)
	recordUC := records.NewUseCase(recordRepo, lineRepo, sigRepo, txRunner, sigSvc, pdfGenerator, auditSvc)
	dashboardUC := analytics.NewDashboardUseCase(recordRepo, materialRepo)
	notificationUC := notifications.NewUseCase(notifRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Batch Records API",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CatalogUC:      catalogUC,
		RecordUC:       recordUC,
		DashboardUC:    dashboardUC,
		NotificationUC: notificationUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
