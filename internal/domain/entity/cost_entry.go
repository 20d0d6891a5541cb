package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostEntry representa una variante de producto registrada en la base de custos.
// SKU es la clave compuesta "1-<NOMBRE>-<COLOR>": el registro guarda siempre costo
// por unidad, por eso el componente cantidad está normalizado a 1.
type CostEntry struct {
	ID            string
	SKU           string // clave única normalizada
	Distributor   string // fornecedor/distribuidor al que se le paga
	ProductCost   decimal.Decimal // costo del producto por unidad
	PackagingCost decimal.Decimal // costo de empaque por unidad
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UnitCost costo total por unidad: producto + empaque.
func (e *CostEntry) UnitCost() decimal.Decimal {
	return e.ProductCost.Add(e.PackagingCost)
}
