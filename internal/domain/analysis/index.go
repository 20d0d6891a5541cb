// Package analysis implementa el núcleo de conciliación de ventas: índice de
// costos, pipeline de filtros, motor de conciliación y modelo de reporte.
// Todo es puro: funciones sobre entradas explícitas, sin estado compartido,
// seguras de re-ejecutar en cada cambio de filtro o nueva planilla.
package analysis

import (
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/internal/domain/sku"
)

// Index mapa en memoria de clave base normalizada -> entrada de costos.
// Se reconstruye en cada pasada de análisis desde una lectura fresca del
// registro (los costos pueden haber cambiado entre planillas).
type Index struct {
	entries map[string]*entity.CostEntry
}

// BuildIndex construye el índice. Ante claves duplicadas gana la última
// (el registro garantiza unicidad, pero el índice no debe fallar si no).
func BuildIndex(entries []*entity.CostEntry) *Index {
	m := make(map[string]*entity.CostEntry, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		m[sku.Normalize(e.SKU)] = e
	}
	return &Index{entries: m}
}

// Lookup busca la entrada para una clave base. O(1) esperado.
func (ix *Index) Lookup(baseKey string) (*entity.CostEntry, bool) {
	e, ok := ix.entries[sku.Normalize(baseKey)]
	return e, ok
}

// Len cantidad de entradas indexadas.
func (ix *Index) Len() int {
	return len(ix.entries)
}
