package http

import (
	"github.com/gofiber/fiber/v2"

	appanalysis "github.com/alexpint/impacto-vendas/internal/application/analysis"
	"github.com/alexpint/impacto-vendas/internal/application/auth"
	"github.com/alexpint/impacto-vendas/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	RegistryUC *usecase.RegistryUseCase
	Session    *appanalysis.Session
	PDFGen     appanalysis.ReportPDFGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Base de custos (protegido)
	registry := protected.Group("/registry")
	registryHandler := NewRegistryHandler(deps.RegistryUC)
	registry.Post("/", registryHandler.Create)
	registry.Get("/", registryHandler.List)
	registry.Get("/:sku", registryHandler.GetBySKU)
	registry.Put("/:sku", registryHandler.Update)
	registry.Delete("/:sku", registryHandler.Delete)

	// Ventas: carga y análisis (protegido)
	sales := protected.Group("/sales")
	analysisHandler := NewAnalysisHandler(deps.Session, deps.PDFGen)
	sales.Post("/upload", analysisHandler.Upload)
	sales.Get("/analysis", analysisHandler.Analyze)
	sales.Get("/analysis/report.pdf", analysisHandler.ReportPDF)
}
