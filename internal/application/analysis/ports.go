package analysis

import (
	"context"

	domainanalysis "github.com/alexpint/impacto-vendas/internal/domain/analysis"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
)

// SalesFileParser puerto del colaborador tabular: convierte el texto crudo del
// export en la secuencia ordenada de filas tipadas. Cualquier error de
// tokenización rechaza el lote completo (sin import parcial).
type SalesFileParser interface {
	Parse(raw []byte) ([]entity.SalesRecord, error)
}

// ReportPDFGenerator puerto de generación del reporte PDF del análisis.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, fileName string, res domainanalysis.Result) ([]byte, error)
}
