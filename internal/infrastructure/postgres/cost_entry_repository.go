package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alexpint/impacto-vendas/internal/domain"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/internal/domain/repository"
)

var _ repository.CostEntryRepository = (*CostEntryRepo)(nil)

// CostEntryRepo implementación del puerto CostEntryRepository sobre PostgreSQL
// (el linaje "hosted" del registro; el slot JSON local es el fallback).
type CostEntryRepo struct {
	q Querier
}

// NewCostEntryRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewCostEntryRepository(q Querier) *CostEntryRepo {
	return &CostEntryRepo{q: q}
}

// Create persiste una entrada nueva de la base de custos.
func (r *CostEntryRepo) Create(e *entity.CostEntry) error {
	query := `
		INSERT INTO cost_entries (id, sku, distributor, product_cost, packaging_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.SKU, e.Distributor, e.ProductCost, e.PackagingCost, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("insert cost entry: %w", err)
	}
	return nil
}

// GetBySKU obtiene una entrada por su clave normalizada.
func (r *CostEntryRepo) GetBySKU(skuCode string) (*entity.CostEntry, error) {
	query := `
		SELECT id, sku, distributor, product_cost, packaging_cost, created_at, updated_at
		FROM cost_entries WHERE sku = $1`
	var e entity.CostEntry
	err := r.q.QueryRow(context.Background(), query, skuCode).Scan(
		&e.ID, &e.SKU, &e.Distributor, &e.ProductCost, &e.PackagingCost, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost entry: %w", err)
	}
	return &e, nil
}

// List devuelve el registro completo (el análisis lo consume entero por pasada).
func (r *CostEntryRepo) List() ([]*entity.CostEntry, error) {
	query := `
		SELECT id, sku, distributor, product_cost, packaging_cost, created_at, updated_at
		FROM cost_entries ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cost entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostEntry
	for rows.Next() {
		var e entity.CostEntry
		if err := rows.Scan(&e.ID, &e.SKU, &e.Distributor, &e.ProductCost, &e.PackagingCost, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cost entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza fornecedor y costos (el SKU es inmutable post-creación).
func (r *CostEntryRepo) Update(e *entity.CostEntry) error {
	query := `
		UPDATE cost_entries SET distributor = $2, product_cost = $3, packaging_cost = $4, updated_at = $5
		WHERE sku = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.SKU, e.Distributor, e.ProductCost, e.PackagingCost, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cost entry: %w", err)
	}
	return nil
}

// Delete elimina una entrada por su clave.
func (r *CostEntryRepo) Delete(skuCode string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cost_entries WHERE sku = $1`, skuCode)
	if err != nil {
		return fmt.Errorf("delete cost entry: %w", err)
	}
	return nil
}
