package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SKUUnits unidades vendidas por SKU de venta distinto.
type SKUUnits struct {
	SKU   string
	Units int64
}

// DistributorCost costo a pagar por fornecedor distinto. La clave sale del
// campo Distributor de la entrada matcheada del registro; derivarla del último
// segmento del SKU atribuye mal el costo cuando ese segmento no coincide con
// el fornecedor real.
type DistributorCost struct {
	Distributor string
	Cost        decimal.Decimal
}

// UnitsBySKU agrupa unidades por SKU de venta, ordenado alfabéticamente
// (orden de presentación para la tabla de desglose).
func (r Result) UnitsBySKU() []SKUUnits {
	bySKU := make(map[string]int64)
	for _, line := range r.Lines {
		bySKU[line.SKU] += line.Units
	}
	out := make([]SKUUnits, 0, len(bySKU))
	for s, u := range bySKU {
		out = append(out, SKUUnits{SKU: s, Units: u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// CostByDistributor agrupa el costo a pagar por fornecedor, ordenado alfabéticamente.
func (r Result) CostByDistributor() []DistributorCost {
	byDist := make(map[string]decimal.Decimal)
	for _, line := range r.Lines {
		acc, ok := byDist[line.Distributor]
		if !ok {
			acc = decimal.Zero
		}
		byDist[line.Distributor] = acc.Add(line.Cost)
	}
	out := make([]DistributorCost, 0, len(byDist))
	for d, c := range byDist {
		out = append(out, DistributorCost{Distributor: d, Cost: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distributor < out[j].Distributor })
	return out
}
