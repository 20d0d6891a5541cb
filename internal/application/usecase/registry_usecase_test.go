package usecase_test

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexpint/impacto-vendas/internal/application/dto"
	"github.com/alexpint/impacto-vendas/internal/application/usecase"
	"github.com/alexpint/impacto-vendas/internal/domain"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeCostRepo repositorio en memoria para ejercitar el caso de uso sin DB.
type fakeCostRepo struct {
	entries map[string]*entity.CostEntry
}

func newFakeCostRepo() *fakeCostRepo {
	return &fakeCostRepo{entries: make(map[string]*entity.CostEntry)}
}

func (r *fakeCostRepo) Create(e *entity.CostEntry) error {
	if _, ok := r.entries[e.SKU]; ok {
		return domain.ErrDuplicateSKU
	}
	cp := *e
	r.entries[e.SKU] = &cp
	return nil
}

func (r *fakeCostRepo) GetBySKU(skuCode string) (*entity.CostEntry, error) {
	e, ok := r.entries[skuCode]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeCostRepo) List() ([]*entity.CostEntry, error) {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*entity.CostEntry, 0, len(keys))
	for _, k := range keys {
		cp := *r.entries[k]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCostRepo) Update(e *entity.CostEntry) error {
	if _, ok := r.entries[e.SKU]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.entries[e.SKU] = &cp
	return nil
}

func (r *fakeCostRepo) Delete(skuCode string) error {
	delete(r.entries, skuCode)
	return nil
}

// countingWatcher cuenta notificaciones de mutación.
type countingWatcher struct{ n int }

func (w *countingWatcher) RegistryChanged() { w.n++ }

func createReq(name, color, dist string, product, packaging float64) dto.CreateCostEntryRequest {
	return dto.CreateCostEntryRequest{
		Name:          name,
		Color:         color,
		Distributor:   dist,
		ProductCost:   decimal.NewFromFloat(product),
		PackagingCost: decimal.NewFromFloat(packaging),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_Create_NormalizaCantidadA1(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())

	in := createReq("camiseta", "azul", "ACME", 10, 2)
	in.Quantity = 6 // la cantidad pedida se ignora: el registro guarda costo unitario

	out, err := uc.Create(in)
	require.NoError(t, err)

	assert.Equal(t, "1-CAMISETA-AZUL", out.SKU, "la clave se normaliza a cantidad 1 y mayúsculas")
	assert.True(t, out.UnitCost.Equal(decimal.NewFromInt(12)), "unit_cost = producto + embalaje")
}

func TestRegistry_Create_DuplicadoRechazado(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())

	_, err := uc.Create(createReq("Camiseta", "Azul", "ACME", 10, 2))
	require.NoError(t, err)

	// Mismo nombre/color con otra capitalización: misma clave normalizada.
	_, err = uc.Create(createReq("camiseta", "AZUL", "GLOBEX", 99, 0))
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestRegistry_Create_ValidaCampos(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())

	_, err := uc.Create(createReq("", "azul", "ACME", 1, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	_, err = uc.Create(createReq("camiseta", "azul", "", 1, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fornecedor vacío")

	_, err = uc.Create(createReq("camiseta", "azul", "ACME", -1, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_Update_EditaCostosManteniendoSKU(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())
	created, err := uc.Create(createReq("camiseta", "azul", "ACME", 10, 2))
	require.NoError(t, err)

	newCost := decimal.NewFromInt(15)
	out, err := uc.Update(created.SKU, dto.UpdateCostEntryRequest{ProductCost: &newCost})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, created.SKU, out.SKU, "el SKU no cambia en la edición")
	assert.Equal(t, "ACME", out.Distributor, "campos no enviados quedan intactos")
	assert.True(t, out.UnitCost.Equal(decimal.NewFromInt(17)))
}

func TestRegistry_Update_NoEncontradoDevuelveNil(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())

	dist := "GLOBEX"
	out, err := uc.Update("1-NADA-GRIS", dto.UpdateCostEntryRequest{Distributor: &dist})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRegistry_Update_SKUMalformadoRechazado(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())

	dist := "ACME"
	_, err := uc.Update("SIN-CANTIDAD", dto.UpdateCostEntryRequest{Distributor: &dist})
	assert.ErrorIs(t, err, domain.ErrMalformedSKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / List / Watchers
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_Delete_InexistenteDevuelveNotFound(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())
	assert.ErrorIs(t, uc.Delete("1-NADA-GRIS"), domain.ErrNotFound)
}

func TestRegistry_List_DevuelveTodoOrdenado(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())
	_, err := uc.Create(createReq("zapato", "negro", "ACME", 5, 1))
	require.NoError(t, err)
	_, err = uc.Create(createReq("camiseta", "azul", "GLOBEX", 10, 2))
	require.NoError(t, err)

	out, err := uc.List()
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "1-CAMISETA-AZUL", out.Items[0].SKU)
	assert.Equal(t, "1-ZAPATO-NEGRO", out.Items[1].SKU)
}

func TestRegistry_Watcher_NotificadoSoloEnMutacionesExitosas(t *testing.T) {
	uc := usecase.NewRegistryUseCase(newFakeCostRepo())
	w := &countingWatcher{}
	uc.AddWatcher(w)

	_, err := uc.Create(createReq("camiseta", "azul", "ACME", 10, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, w.n)

	// Creación duplicada no notifica.
	_, err = uc.Create(createReq("camiseta", "azul", "ACME", 10, 2))
	require.Error(t, err)
	assert.Equal(t, 1, w.n)

	// Lectura no notifica.
	_, err = uc.List()
	require.NoError(t, err)
	assert.Equal(t, 1, w.n)

	require.NoError(t, uc.Delete("1-CAMISETA-AZUL"))
	assert.Equal(t, 2, w.n)
}
