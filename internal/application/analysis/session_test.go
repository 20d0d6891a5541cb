package analysis_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/alexpint/impacto-vendas/internal/application/analysis"
	"github.com/alexpint/impacto-vendas/internal/domain"
	domainanalysis "github.com/alexpint/impacto-vendas/internal/domain/analysis"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeCostRepo repositorio en memoria; failList simula un registro caído.
type fakeCostRepo struct {
	entries  []*entity.CostEntry
	failList bool
}

func (r *fakeCostRepo) Create(e *entity.CostEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeCostRepo) GetBySKU(skuCode string) (*entity.CostEntry, error) {
	for _, e := range r.entries {
		if e.SKU == skuCode {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeCostRepo) List() ([]*entity.CostEntry, error) {
	if r.failList {
		return nil, errors.New("connection refused")
	}
	return r.entries, nil
}

func (r *fakeCostRepo) Update(e *entity.CostEntry) error {
	for i, it := range r.entries {
		if it.SKU == e.SKU {
			r.entries[i] = e
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeCostRepo) Delete(skuCode string) error { return nil }

// fakeParser devuelve filas precargadas, ignorando los bytes.
type fakeParser struct {
	records []entity.SalesRecord
	err     error
}

func (p *fakeParser) Parse(_ []byte) ([]entity.SalesRecord, error) {
	return p.records, p.err
}

func costEntry(skuCode, dist string, product, packaging int64) *entity.CostEntry {
	return &entity.CostEntry{
		SKU:           skuCode,
		Distributor:   dist,
		ProductCost:   decimal.NewFromInt(product),
		PackagingCost: decimal.NewFromInt(packaging),
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newSession(repo *fakeCostRepo, records []entity.SalesRecord) *appanalysis.Session {
	return appanalysis.NewSession(repo, &fakeParser{records: records}, testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// LoadFile / Analyze
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_AnalyzeSinPlanilla(t *testing.T) {
	s := newSession(&fakeCostRepo{}, nil)
	_, err := s.Analyze(domainanalysis.Filters{})
	assert.ErrorIs(t, err, domain.ErrNoSalesLoaded)
}

func TestSession_LoadFileVacioRechazado(t *testing.T) {
	s := newSession(&fakeCostRepo{}, nil) // parser sin filas
	_, err := s.LoadFile("vacio.csv", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrEmptySalesFile)
}

func TestSession_LoadFileReportaDimensiones(t *testing.T) {
	records := []entity.SalesRecord{
		{SKU: "6-CAMISETA-AZUL", PackCount: 1, HasPack: true, Store: "Loja B", Status: "Entregue"},
		{SKU: "1-ZAPATO-NEGRO", PackCount: 2, HasPack: true, Store: "Loja A", Status: "Cancelado"},
		{SKU: "1-ZAPATO-NEGRO", PackCount: 1, HasPack: true, Store: "Loja A", Status: "Entregue"},
	}
	s := newSession(&fakeCostRepo{}, records)

	out, err := s.LoadFile("vendas.csv", []byte("raw"))
	require.NoError(t, err)

	assert.Equal(t, "vendas.csv", out.FileName)
	assert.Equal(t, 3, out.Rows)
	assert.Equal(t, []string{"Loja A", "Loja B"}, out.Stores)
	assert.Equal(t, []string{"Cancelado", "Entregue"}, out.Statuses)
}

func TestSession_AnalyzeConciliaContraRegistro(t *testing.T) {
	repo := &fakeCostRepo{entries: []*entity.CostEntry{
		costEntry("1-CAMISETA-AZUL", "ACME", 10, 2),
	}}
	records := []entity.SalesRecord{
		// 3 packs de 6 unidades: 18 unidades a 12 c/u = 216
		{SKU: "6-CAMISETA-AZUL", PackCount: 3, HasPack: true, DateRaw: "2 de março de 2024"},
		{SKU: "1-DESCONOCIDO-GRIS", PackCount: 1, HasPack: true},
	}
	s := newSession(repo, records)
	_, err := s.LoadFile("vendas.csv", []byte("raw"))
	require.NoError(t, err)

	out, err := s.Analyze(domainanalysis.Filters{})
	require.NoError(t, err)

	assert.Equal(t, int64(18), out.TotalUnitsSold)
	assert.True(t, out.TotalCostToPay.Equal(decimal.NewFromInt(216)), "custo total %s", out.TotalCostToPay)
	assert.Equal(t, 1, out.MatchedCount, "la venta sin entrada en el registro no matchea")
	assert.Equal(t, 2, out.TotalFilteredCount)

	// El resultado queda cacheado para la UI.
	require.NotNil(t, s.LastResult())
	assert.True(t, s.LastResult().TotalCostToPay.Equal(decimal.NewFromInt(216)))
}

func TestSession_RegistroCaidoAbortaLaPasada(t *testing.T) {
	repo := &fakeCostRepo{failList: true}
	records := []entity.SalesRecord{{SKU: "1-CAMISETA-AZUL", PackCount: 1, HasPack: true}}
	s := newSession(repo, records)
	_, err := s.LoadFile("vendas.csv", []byte("raw"))
	require.NoError(t, err)

	_, err = s.Analyze(domainanalysis.Filters{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable,
		"un registro caído nunca degrada a costo cero")
	assert.Nil(t, s.LastResult(), "la pasada fallida no publica resultado")
}

func TestSession_LoadFileDescartaResultadoAnterior(t *testing.T) {
	repo := &fakeCostRepo{entries: []*entity.CostEntry{costEntry("1-CAMISETA-AZUL", "ACME", 1, 0)}}
	records := []entity.SalesRecord{{SKU: "1-CAMISETA-AZUL", PackCount: 1, HasPack: true}}
	s := newSession(repo, records)

	_, err := s.LoadFile("a.csv", []byte("raw"))
	require.NoError(t, err)
	_, err = s.Analyze(domainanalysis.Filters{})
	require.NoError(t, err)
	require.NotNil(t, s.LastResult())

	_, err = s.LoadFile("b.csv", []byte("raw"))
	require.NoError(t, err)
	assert.Nil(t, s.LastResult(), "cargar planilla nueva invalida el resultado cacheado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Watch del registro
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_RegistryChangedRecalculaConDebounce(t *testing.T) {
	repo := &fakeCostRepo{entries: []*entity.CostEntry{costEntry("1-CAMISETA-AZUL", "ACME", 10, 0)}}
	records := []entity.SalesRecord{{SKU: "1-CAMISETA-AZUL", PackCount: 1, HasPack: true}}
	s := newSession(repo, records)
	s.SetDebounce(5 * time.Millisecond)

	_, err := s.LoadFile("vendas.csv", []byte("raw"))
	require.NoError(t, err)
	_, err = s.Analyze(domainanalysis.Filters{})
	require.NoError(t, err)
	require.True(t, s.LastResult().TotalCostToPay.Equal(decimal.NewFromInt(10)))

	// El costo cambia en el registro; la sesión debe refrescar sola.
	repo.entries[0] = costEntry("1-CAMISETA-AZUL", "ACME", 25, 0)
	s.RegistryChanged()

	require.Eventually(t, func() bool {
		last := s.LastResult()
		return last != nil && last.TotalCostToPay.Equal(decimal.NewFromInt(25))
	}, time.Second, 10*time.Millisecond, "el resultado cacheado debe reflejar el costo nuevo")
}

func TestSession_RegistryChangedSinPlanillaNoHaceNada(t *testing.T) {
	s := newSession(&fakeCostRepo{}, nil)
	s.SetDebounce(time.Millisecond)
	s.RegistryChanged()

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, s.LastResult())
}
