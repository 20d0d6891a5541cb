package http

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	appanalysis "github.com/alexpint/impacto-vendas/internal/application/analysis"
	"github.com/alexpint/impacto-vendas/internal/application/dto"
	"github.com/alexpint/impacto-vendas/internal/domain"
	domainanalysis "github.com/alexpint/impacto-vendas/internal/domain/analysis"
)

// AnalysisHandler maneja la carga de planillas y el análisis de ventas (protegido).
type AnalysisHandler struct {
	session *appanalysis.Session
	pdfGen  appanalysis.ReportPDFGenerator
}

// NewAnalysisHandler construye el handler.
func NewAnalysisHandler(session *appanalysis.Session, pdfGen appanalysis.ReportPDFGenerator) *AnalysisHandler {
	return &AnalysisHandler{session: session, pdfGen: pdfGen}
}

// Upload godoc
// @Summary      Cargar planilla de ventas
// @Tags         sales
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Export de ventas (;-delimitado)"
// @Success      200   {object}  dto.UploadResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/upload [post]
func (h *AnalysisHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNREADABLE_FILE", Message: err.Error()})
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNREADABLE_FILE", Message: err.Error()})
	}

	out, err := h.session.LoadFile(fileHeader.Filename, raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedFile):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_FILE", Message: err.Error()})
		case errors.Is(err, domain.ErrEmptySalesFile):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_FILE", Message: "el archivo de ventas está vacío o en formato incorrecto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Analyze godoc
// @Summary      Conciliar ventas filtradas contra la base de custos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start_date           query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        end_date             query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        sku                  query  string  false  "Substring de SKU (case-insensitive)"
// @Param        store                query  string  false  "Loja oficial (igualdad exacta)"
// @Param        status               query  string  false  "Estado (igualdad exacta)"
// @Param        keep_unparsed_dates  query  bool    false  "Mantener filas con fecha ilegible ante rango activo"
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sales/analysis [get]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	filters, err := h.parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTERS", Message: err.Error()})
	}
	out, err := h.session.Analyze(filters)
	if err != nil {
		return h.mapAnalysisError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF del análisis
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sales/analysis/report.pdf [get]
func (h *AnalysisHandler) ReportPDF(c *fiber.Ctx) error {
	filters, err := h.parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTERS", Message: err.Error()})
	}
	raw, err := h.session.GeneratePDF(c.Context(), h.pdfGen, filters)
	if err != nil {
		return h.mapAnalysisError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="analise-vendas.pdf"`)
	return c.Send(raw)
}

func (h *AnalysisHandler) parseFilters(c *fiber.Ctx) (domainanalysis.Filters, error) {
	var in dto.AnalysisFiltersRequest
	if err := c.QueryParser(&in); err != nil {
		return domainanalysis.Filters{}, fmt.Errorf("%w: query params", domain.ErrInvalidInput)
	}
	return appanalysis.FiltersFromRequest(in)
}

func (h *AnalysisHandler) mapAnalysisError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoSalesLoaded):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_SALES", Message: "cargue una planilla de ventas primero"})
	case errors.Is(err, domain.ErrRegistryUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REGISTRY_UNAVAILABLE", Message: "la base de custos no responde; el análisis no puede continuar"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTERS", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
