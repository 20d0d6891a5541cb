package analysis

import (
	"strings"
	"time"

	"github.com/alexpint/impacto-vendas/internal/domain/dates"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
)

// Filters conjunción de predicados opcionales sobre la planilla de ventas.
// Un campo sin setear siempre matchea (no se filtra esa dimensión).
type Filters struct {
	StartDate   *time.Time // inclusive, granularidad de día, medianoche local
	EndDate     *time.Time // inclusive
	SKUContains string     // substring case-insensitive sobre el SKU de venta
	Store       string     // igualdad exacta contra "Loja Oficial"
	Status      string     // igualdad exacta contra "Estado Atual"

	// KeepUnparsedDates política para fechas ilegibles con rango de fechas
	// activo: false (default) las excluye del conjunto filtrado; true las deja
	// pasar (y por lo tanto cuentan en el total filtrado río abajo).
	KeepUnparsedDates bool
}

// HasDateBound indica si hay algún límite de fecha activo.
func (f Filters) HasDateBound() bool {
	return f.StartDate != nil || f.EndDate != nil
}

// IsZero indica si ningún predicado está activo (Apply devuelve la entrada tal cual).
func (f Filters) IsZero() bool {
	return !f.HasDateBound() && f.SKUContains == "" && f.Store == "" && f.Status == ""
}

// Apply aplica la conjunción de predicados sobre el set completo sin filtrar.
// Función pura: no muta la entrada y se re-ejecuta completa en cada cambio.
// La fecha se evalúa primero para cortar temprano en planillas grandes.
func Apply(records []entity.SalesRecord, f Filters) []entity.SalesRecord {
	if f.IsZero() {
		return records
	}

	skuNeedle := strings.ToUpper(strings.TrimSpace(f.SKUContains))

	out := make([]entity.SalesRecord, 0, len(records))
	for _, r := range records {
		if !matchDate(r, f) {
			continue
		}
		if skuNeedle != "" && !strings.Contains(strings.ToUpper(r.SKU), skuNeedle) {
			continue
		}
		if f.Store != "" && r.Store != f.Store {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchDate evalúa el rango de fechas. Sin límites activos la fecha no se
// consulta (una fecha ilegible pasa); con un límite activo una fecha ilegible
// queda excluida salvo que la política KeepUnparsedDates diga lo contrario.
func matchDate(r entity.SalesRecord, f Filters) bool {
	if !f.HasDateBound() {
		return true
	}
	parsed, ok := dates.ParseSaleDate(r.DateRaw)
	if !ok {
		return f.KeepUnparsedDates
	}
	day := dates.DayOf(parsed)
	if f.StartDate != nil && day.Before(dates.DayOf(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && day.After(dates.DayOf(*f.EndDate)) {
		return false
	}
	return true
}
