package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/astillero-mes/yacht-mes/internal/application/analytics"
	"github.com/astillero-mes/yacht-mes/internal/application/audit"
	"github.com/astillero-mes/yacht-mes/internal/application/auth"
	"github.com/astillero-mes/yacht-mes/internal/application/inventory"
	"github.com/astillero-mes/yacht-mes/internal/application/notification"
	"github.com/astillero-mes/yacht-mes/internal/application/usecase"
	"github.com/astillero-mes/yacht-mes/internal/infrastructure/excel"
	"github.com/astillero-mes/yacht-mes/internal/infrastructure/postgres"
	"github.com/astillero-mes/yacht-mes/internal/infrastructure/rediscache"
	httpRouter "github.com/astillero-mes/yacht-mes/internal/interfaces/http"
	"github.com/astillero-mes/yacht-mes/pkg/config"
	"github.com/astillero-mes/yacht-mes/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin cache el contador de no leídas se sirve desde SQL.
	var unreadCache notification.UnreadCache
	redisClient, err := rediscache.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, contador de notificaciones sin cache")
	} else {
		defer redisClient.Close()
		unreadCache = rediscache.NewUnreadCache(redisClient)
	}

	userRepo := postgres.NewUserRepository(pool)
	deptRepo := postgres.NewDepartmentRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	procurementRepo := postgres.NewProcurementRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditSvc := audit.NewService(auditRepo, log.Zerolog())
	notifySvc := notification.NewService(notificationRepo, userRepo, unreadCache, log.Zerolog())

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auditSvc, log.Zerolog())
	userUC := usecase.NewUserUseCase(userRepo)
	orgUC := usecase.NewOrgUseCase(deptRepo, teamRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, taskRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo, projectRepo, notifySvc, log.Zerolog())
	materialUC := usecase.NewMaterialUseCase(materialRepo, stockRepo)
	inventoryUC := inventory.NewUseCase(txRunner, materialRepo, stockRepo, ledgerRepo, notifySvc, log.Zerolog())
	procurementUC := usecase.NewProcurementUseCase(procurementRepo, materialRepo, notifySvc, log.Zerolog())
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, stockRepo)
	importer := excel.NewImporter(deptRepo, teamRepo, userRepo, projectRepo, taskRepo, materialRepo, procurementRepo, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // libros Excel de importación
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		OrgUC:         orgUC,
		ProjectUC:     projectUC,
		TaskUC:        taskUC,
		MaterialUC:    materialUC,
		InventoryUC:   inventoryUC,
		ProcurementUC: procurementUC,
		NotifySvc:     notifySvc,
		AuditSvc:      auditSvc,
		DashboardUC:   dashboardUC,
		Importer:      importer,
		JWTSecret:     cfg.JWT.Secret,
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
