package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexpint/impacto-vendas/internal/application/dto"
	"github.com/alexpint/impacto-vendas/internal/domain"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/internal/domain/repository"
	"github.com/alexpint/impacto-vendas/internal/domain/sku"
)

// RegistryWatcher recibe una notificación después de cada mutación exitosa del
// registro (la sesión de análisis se suscribe para refrescar su snapshot).
type RegistryWatcher interface {
	RegistryChanged()
}

// RegistryUseCase casos de uso CRUD para la base de custos.
type RegistryUseCase struct {
	repo     repository.CostEntryRepository
	watchers []RegistryWatcher
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(repo repository.CostEntryRepository) *RegistryUseCase {
	return &RegistryUseCase{repo: repo}
}

// AddWatcher suscribe un observador de cambios del registro.
func (uc *RegistryUseCase) AddWatcher(w RegistryWatcher) {
	uc.watchers = append(uc.watchers, w)
}

func (uc *RegistryUseCase) notifyChanged() {
	for _, w := range uc.watchers {
		w.RegistryChanged()
	}
}

// Create registra un producto nuevo. La clave se codifica desde nombre/color con
// la cantidad normalizada a 1: el registro guarda costo por unidad, no por pack.
// Devuelve domain.ErrDuplicateSKU si la clave normalizada ya existe.
func (uc *RegistryUseCase) Create(in dto.CreateCostEntryRequest) (*dto.CostEntryResponse, error) {
	if in.Name == "" || in.Color == "" || in.Distributor == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductCost.IsNegative() || in.PackagingCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	key := sku.Encode(1, in.Name, in.Color)
	existing, err := uc.repo.GetBySKU(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now()
	e := &entity.CostEntry{
		ID:            uuid.New().String(),
		SKU:           key,
		Distributor:   in.Distributor,
		ProductCost:   in.ProductCost,
		PackagingCost: in.PackagingCost,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	uc.notifyChanged()
	return toCostEntryResponse(e), nil
}

// Update edita fornecedor y costos de una entrada existente. Los componentes
// del SKU son inmutables post-creación (como en el formulario original).
func (uc *RegistryUseCase) Update(skuCode string, in dto.UpdateCostEntryRequest) (*dto.CostEntryResponse, error) {
	if _, err := sku.DecodeRegistryKey(sku.Normalize(skuCode)); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetBySKU(sku.Normalize(skuCode))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	if in.Distributor != nil {
		if *in.Distributor == "" {
			return nil, domain.ErrInvalidInput
		}
		e.Distributor = *in.Distributor
	}
	if in.ProductCost != nil {
		if in.ProductCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		e.ProductCost = *in.ProductCost
	}
	if in.PackagingCost != nil {
		if in.PackagingCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		e.PackagingCost = *in.PackagingCost
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(e); err != nil {
		return nil, err
	}
	uc.notifyChanged()
	return toCostEntryResponse(e), nil
}

// List devuelve la base de custos completa.
func (uc *RegistryUseCase) List() (*dto.CostEntryListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CostEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toCostEntryResponse(e))
	}
	return &dto.CostEntryListResponse{Items: items, Total: len(items)}, nil
}

// GetBySKU obtiene una entrada por su clave.
func (uc *RegistryUseCase) GetBySKU(skuCode string) (*dto.CostEntryResponse, error) {
	e, err := uc.repo.GetBySKU(sku.Normalize(skuCode))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return toCostEntryResponse(e), nil
}

// Delete elimina una entrada por su clave. Borrado duro, sin soft-delete.
func (uc *RegistryUseCase) Delete(skuCode string) error {
	e, err := uc.repo.GetBySKU(sku.Normalize(skuCode))
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(e.SKU); err != nil {
		return err
	}
	uc.notifyChanged()
	return nil
}

func toCostEntryResponse(e *entity.CostEntry) *dto.CostEntryResponse {
	if e == nil {
		return nil
	}
	return &dto.CostEntryResponse{
		ID:            e.ID,
		SKU:           e.SKU,
		Distributor:   e.Distributor,
		ProductCost:   e.ProductCost,
		PackagingCost: e.PackagingCost,
		UnitCost:      e.UnitCost(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
