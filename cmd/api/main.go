package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalysis "github.com/alexpint/impacto-vendas/internal/application/analysis"
	"github.com/alexpint/impacto-vendas/internal/application/auth"
	"github.com/alexpint/impacto-vendas/internal/application/usecase"
	"github.com/alexpint/impacto-vendas/internal/domain/repository"
	"github.com/alexpint/impacto-vendas/internal/infrastructure/jsonstore"
	infrapdf "github.com/alexpint/impacto-vendas/internal/infrastructure/pdf"
	"github.com/alexpint/impacto-vendas/internal/infrastructure/postgres"
	"github.com/alexpint/impacto-vendas/internal/infrastructure/salesfile"
	httpRouter "github.com/alexpint/impacto-vendas/internal/interfaces/http"
	"github.com/alexpint/impacto-vendas/pkg/config"
	"github.com/alexpint/impacto-vendas/pkg/logger"
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		costRepo repository.CostEntryRepository
		userRepo repository.UserRepository
	)
	switch cfg.Storage.Driver {
	case "file":
		// Slot JSON local: el registro entero se reescribe en cada mutación.
		costRepo, err = jsonstore.NewCostEntryRepository(cfg.Storage.FilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir slot de la base de custos")
		}
		usersPath := filepath.Join(filepath.Dir(cfg.Storage.FilePath), "users.json")
		userRepo, err = jsonstore.NewUserRepository(usersPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir slot de usuarios")
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		costRepo = postgres.NewCostEntryRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
	}

	parser := salesfile.NewParser(cfg.Sales)
	session := appanalysis.NewSession(costRepo, parser, log)

	registryUC := usecase.NewRegistryUseCase(costRepo)
	// La sesión re-analiza cuando el registro cambia; el resultado cacheado
	// nunca queda detrás de la mutación local más reciente.
	registryUC.AddWatcher(session)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGen := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // exports de ventas grandes
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Impacto Vendas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		RegistryUC: registryUC,
		Session:    session,
		PDFGen:     pdfGen,
		JWTSecret:  cfg.JWT.Secret,
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
