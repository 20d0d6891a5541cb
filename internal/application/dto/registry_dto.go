package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCostEntryRequest entrada para registrar un producto en la base de custos.
// El SKU se genera a partir de cantidad/nombre/color; la cantidad del registro
// se normaliza siempre a 1 (costo por unidad).
type CreateCostEntryRequest struct {
	Quantity      int             `json:"quantity"`
	Name          string          `json:"name" validate:"required,min=1,max=100"`
	Color         string          `json:"color" validate:"required,min=1,max=100"`
	Distributor   string          `json:"distributor" validate:"required,min=1,max=200"`
	ProductCost   decimal.Decimal `json:"product_cost"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
}

// UpdateCostEntryRequest entrada para editar un producto. Los componentes del
// SKU son inmutables después de crear: solo fornecedor y costos.
type UpdateCostEntryRequest struct {
	Distributor   *string          `json:"distributor"`
	ProductCost   *decimal.Decimal `json:"product_cost"`
	PackagingCost *decimal.Decimal `json:"packaging_cost"`
}

// CostEntryResponse salida de una entrada de la base de custos.
type CostEntryResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Distributor   string          `json:"distributor"`
	ProductCost   decimal.Decimal `json:"product_cost"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CostEntryListResponse listado completo de la base de custos.
type CostEntryListResponse struct {
	Items []CostEntryResponse `json:"items"`
	Total int                 `json:"total"`
}
