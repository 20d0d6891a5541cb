// Package jsonstore implementa la base de custos sobre un único slot JSON en
// disco: el linaje "local" de la herramienta (la versión original guardaba el
// registro entero serializado bajo una sola clave de localStorage). Se lee y
// escribe completo en cada mutación; sin updates parciales ni versionado.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexpint/impacto-vendas/internal/domain"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/internal/domain/repository"
)

var _ repository.CostEntryRepository = (*CostEntryRepo)(nil)

// storedEntry forma persistida de una entrada (espejo del item original).
type storedEntry struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Distributor   string          `json:"distributor"`
	ProductCost   decimal.Decimal `json:"productCost"`
	PackagingCost decimal.Decimal `json:"packagingCost"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CostEntryRepo base de custos sobre un archivo JSON.
type CostEntryRepo struct {
	mu   sync.Mutex
	path string
}

// NewCostEntryRepository construye el repositorio; crea el directorio del slot si falta.
func NewCostEntryRepository(path string) (*CostEntryRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio del slot: %w", err)
	}
	return &CostEntryRepo{path: path}, nil
}

func (r *CostEntryRepo) load() ([]storedEntry, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer slot: %w", err)
	}
	var db []storedEntry
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("decodificar slot: %w", err)
	}
	return db, nil
}

func (r *CostEntryRepo) save(db []storedEntry) error {
	raw, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar slot: %w", err)
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return fmt.Errorf("escribir slot: %w", err)
	}
	return nil
}

// Create agrega una entrada y reescribe el slot completo.
func (r *CostEntryRepo) Create(e *entity.CostEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.load()
	if err != nil {
		return err
	}
	for _, it := range db {
		if it.SKU == e.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	db = append(db, toStored(e))
	return r.save(db)
}

// GetBySKU busca por clave; nil si no existe.
func (r *CostEntryRepo) GetBySKU(skuCode string) (*entity.CostEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, it := range db {
		if it.SKU == skuCode {
			e := toEntity(it)
			return &e, nil
		}
	}
	return nil, nil
}

// List devuelve el registro completo ordenado por SKU.
func (r *CostEntryRepo) List() ([]*entity.CostEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(db, func(i, j int) bool { return db[i].SKU < db[j].SKU })
	out := make([]*entity.CostEntry, 0, len(db))
	for _, it := range db {
		e := toEntity(it)
		out = append(out, &e)
	}
	return out, nil
}

// Update reemplaza la entrada con el mismo SKU y reescribe el slot completo.
func (r *CostEntryRepo) Update(e *entity.CostEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.load()
	if err != nil {
		return err
	}
	for i, it := range db {
		if it.SKU == e.SKU {
			db[i] = toStored(e)
			return r.save(db)
		}
	}
	return domain.ErrNotFound
}

// Delete filtra la entrada y reescribe el slot completo.
func (r *CostEntryRepo) Delete(skuCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.load()
	if err != nil {
		return err
	}
	out := db[:0]
	for _, it := range db {
		if it.SKU != skuCode {
			out = append(out, it)
		}
	}
	return r.save(out)
}

func toStored(e *entity.CostEntry) storedEntry {
	return storedEntry{
		ID:            e.ID,
		SKU:           e.SKU,
		Distributor:   e.Distributor,
		ProductCost:   e.ProductCost,
		PackagingCost: e.PackagingCost,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toEntity(it storedEntry) entity.CostEntry {
	return entity.CostEntry{
		ID:            it.ID,
		SKU:           it.SKU,
		Distributor:   it.Distributor,
		ProductCost:   it.ProductCost,
		PackagingCost: it.PackagingCost,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
