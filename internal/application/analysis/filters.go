package analysis

import (
	"fmt"
	"time"

	"github.com/alexpint/impacto-vendas/internal/application/dto"
	"github.com/alexpint/impacto-vendas/internal/domain"
	domainanalysis "github.com/alexpint/impacto-vendas/internal/domain/analysis"
)

// fechas de filtro en formato ISO corto, interpretadas en huso local
// (los límites comparan contra medianoche local, igual que la UI original).
const filterDateLayout = "2006-01-02"

// FiltersFromRequest convierte los query params en los filtros del dominio.
func FiltersFromRequest(in dto.AnalysisFiltersRequest) (domainanalysis.Filters, error) {
	f := domainanalysis.Filters{
		SKUContains:       in.SKUContains,
		Store:             in.Store,
		Status:            in.Status,
		KeepUnparsedDates: in.KeepUnparsedDates,
	}
	if in.StartDate != "" {
		t, err := time.ParseInLocation(filterDateLayout, in.StartDate, time.Local)
		if err != nil {
			return f, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, in.StartDate)
		}
		f.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := time.ParseInLocation(filterDateLayout, in.EndDate, time.Local)
		if err != nil {
			return f, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, in.EndDate)
		}
		f.EndDate = &t
	}
	return f, nil
}
