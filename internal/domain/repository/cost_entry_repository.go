package repository

import "github.com/alexpint/impacto-vendas/internal/domain/entity"

// CostEntryRepository define el puerto de persistencia de la base de custos (DIP).
// El análisis la consume como fuente de datos externa: List devuelve el registro
// completo para reconstruir el índice en cada pasada.
type CostEntryRepository interface {
	Create(entry *entity.CostEntry) error
	GetBySKU(skuCode string) (*entity.CostEntry, error)
	List() ([]*entity.CostEntry, error)
	Update(entry *entity.CostEntry) error
	Delete(skuCode string) error
}
