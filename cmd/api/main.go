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
	"github.com/tu-usuario/empaque-pro/internal/application/auth"
	"github.com/tu-usuario/empaque-pro/internal/application/stock"
	"github.com/tu-usuario/empaque-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/empaque-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/empaque-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/empaque-pro/internal/interfaces/http"
	"github.com/tu-usuario/empaque-pro/pkg/config"
	"github.com/tu-usuario/empaque-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	componentRepo := postgres.NewProductComponentRepository(pool)
	recordRepo := postgres.NewPackagingRecordRepository(pool)

	// Motor de stock: agregación, validación, mutación y composición de paquetes.
	aggregator := stock.NewAggregator(productRepo)
	validator := stock.NewValidator(aggregator, productRepo)
	mutator := stock.NewMutator(aggregator, productRepo)
	resolver := stock.NewResolver(productRepo, componentRepo)

	productUC := usecase.NewProductUseCase(productRepo, resolver)
	componentUC := usecase.NewComponentUseCase(componentRepo, productRepo, resolver)
	packagingUC := usecase.NewPackagingUseCase(
		aggregator, validator, mutator, resolver, productRepo, recordRepo,
	)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := usecase.NewReportUseCase(recordRepo, productRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Empaque Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:            productUC,
		ComponentUC:          componentUC,
		PackagingUC:          packagingUC,
		ReportUC:             reportUC,
		AuthUC:               authUC,
		JWTSecret:            cfg.JWT.Secret,
		ComponentDeleteDelay: cfg.Packaging.ComponentDeleteDelayMs,
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
