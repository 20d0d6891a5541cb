package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexpint/impacto-vendas/internal/domain/analysis"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
)

func record(skuCode, dateRaw, store, status string) entity.SalesRecord {
	return entity.SalesRecord{
		SKU:     skuCode,
		PackCount: 1,
		HasPack: true,
		DateRaw: dateRaw,
		Store:   store,
		Status:  status,
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func sampleRecords() []entity.SalesRecord {
	return []entity.SalesRecord{
		record("6-CAMISETA-AZUL", "15 de março de 2024 13:45", "Loja A", "Entregue"),
		record("1-CANECA-BRANCA", "20 de abril de 2024", "Loja B", "Cancelado"),
		record("2-BONE-PRETO", "fecha ilegible", "Loja A", "Entregue"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ley de identidad y conjunción
// ──────────────────────────────────────────────────────────────────────────────

// Sin ningún predicado activo el pipeline devuelve la entrada sin cambios.
func TestApply_SinFiltrosEsIdentidad(t *testing.T) {
	in := sampleRecords()
	out := analysis.Apply(in, analysis.Filters{})
	assert.Equal(t, in, out)
}

// La conjunción es la intersección de los conjuntos por dimensión.
func TestApply_ConjuncionDeDimensiones(t *testing.T) {
	in := sampleRecords()

	byStore := analysis.Apply(in, analysis.Filters{Store: "Loja A"})
	require.Len(t, byStore, 2)

	byStoreAndSKU := analysis.Apply(in, analysis.Filters{Store: "Loja A", SKUContains: "camiseta"})
	require.Len(t, byStoreAndSKU, 1)
	assert.Equal(t, "6-CAMISETA-AZUL", byStoreAndSKU[0].SKU)

	// Mismo resultado aplicando las dimensiones en cadena (independencia del orden).
	chained := analysis.Apply(analysis.Apply(in, analysis.Filters{SKUContains: "camiseta"}), analysis.Filters{Store: "Loja A"})
	assert.Equal(t, byStoreAndSKU, chained)
}

func TestApply_SubstringSKUCaseInsensitive(t *testing.T) {
	out := analysis.Apply(sampleRecords(), analysis.Filters{SKUContains: "caneca"})
	require.Len(t, out, 1)
	assert.Equal(t, "1-CANECA-BRANCA", out[0].SKU)
}

func TestApply_StatusIgualdadExacta(t *testing.T) {
	out := analysis.Apply(sampleRecords(), analysis.Filters{Status: "Entregue"})
	assert.Len(t, out, 2)

	out = analysis.Apply(sampleRecords(), analysis.Filters{Status: "entregue"})
	assert.Empty(t, out, "el status compara igualdad exacta, no case-insensitive")
}

// ──────────────────────────────────────────────────────────────────────────────
// Rango de fechas y política de fechas ilegibles
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_RangoDeFechasInclusivo(t *testing.T) {
	f := analysis.Filters{
		StartDate: datePtr(2024, time.March, 15),
		EndDate:   datePtr(2024, time.March, 15),
	}
	out := analysis.Apply(sampleRecords(), f)
	require.Len(t, out, 1, "los límites son inclusivos a granularidad de día")
	assert.Equal(t, "6-CAMISETA-AZUL", out[0].SKU)
}

func TestApply_SoloLimiteInferior(t *testing.T) {
	out := analysis.Apply(sampleRecords(), analysis.Filters{StartDate: datePtr(2024, time.April, 1)})
	require.Len(t, out, 1)
	assert.Equal(t, "1-CANECA-BRANCA", out[0].SKU)
}

// Con límite de fecha activo una fecha ilegible queda excluida de forma probada,
// no incluida en silencio.
func TestApply_FechaIlegibleConLimiteActivoSeExcluye(t *testing.T) {
	out := analysis.Apply(sampleRecords(), analysis.Filters{StartDate: datePtr(2020, time.January, 1)})
	for _, r := range out {
		assert.NotEqual(t, "fecha ilegible", r.DateRaw)
	}
	assert.Len(t, out, 2)
}

// Sin límites activos la fecha no se consulta: la fila con fecha ilegible pasa.
func TestApply_FechaIlegibleSinLimitePasa(t *testing.T) {
	out := analysis.Apply(sampleRecords(), analysis.Filters{Store: "Loja A"})
	assert.Len(t, out, 2)
}

// Política configurable: KeepUnparsedDates deja pasar la fila aun con rango activo.
func TestApply_PoliticaKeepUnparsedDates(t *testing.T) {
	f := analysis.Filters{
		StartDate:         datePtr(2020, time.January, 1),
		KeepUnparsedDates: true,
	}
	out := analysis.Apply(sampleRecords(), f)
	assert.Len(t, out, 3)
}
