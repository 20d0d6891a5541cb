package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/internal/domain/sku"
)

// ReconciledLine una venta matcheada contra la base de custos.
type ReconciledLine struct {
	SKU         string          // SKU original de la venta (con pack)
	Date        string          // fecha cruda de la planilla
	Status      string
	Distributor string          // fornecedor según el registro, no según el SKU
	Units       int64           // packSize × packs vendidos
	Cost        decimal.Decimal // costo unitario del registro × Units
}

// Result agregado de una pasada de conciliación.
// Invariante: TotalCostToPay y TotalUnitsSold suman exactamente sobre Lines;
// las ventas filtradas sin match cuentan en TotalFilteredCount y aportan cero.
type Result struct {
	Lines              []ReconciledLine
	TotalCostToPay     decimal.Decimal
	TotalUnitsSold     int64
	MatchedCount       int
	TotalFilteredCount int
}

// Reconcile une las ventas ya filtradas contra el índice de costos y acumula
// totales. Mejor esfuerzo por fila: una venta sin SKU, sin cantidad numérica,
// con SKU indescomponible o sin entrada en el registro se salta y se cuenta,
// nunca aborta la pasada. El orden de salida sigue el orden de entrada.
func Reconcile(filtered []entity.SalesRecord, ix *Index) Result {
	res := Result{
		Lines:              make([]ReconciledLine, 0, len(filtered)),
		TotalCostToPay:     decimal.Zero,
		TotalFilteredCount: len(filtered),
	}

	for _, sale := range filtered {
		if !sale.HasSKU() || !sale.HasPack {
			continue
		}
		packSize, baseKey, err := sku.DecomposeSales(sale.SKU)
		if err != nil {
			continue
		}
		entry, found := ix.Lookup(baseKey)
		if !found {
			continue
		}

		units := int64(packSize) * int64(sale.PackCount)
		cost := entry.UnitCost().Mul(decimal.NewFromInt(units))

		res.Lines = append(res.Lines, ReconciledLine{
			SKU:         sale.SKU,
			Date:        sale.DateRaw,
			Status:      sale.Status,
			Distributor: entry.Distributor,
			Units:       units,
			Cost:        cost,
		})
		res.TotalCostToPay = res.TotalCostToPay.Add(cost)
		res.TotalUnitsSold += units
		res.MatchedCount++
	}
	return res
}
