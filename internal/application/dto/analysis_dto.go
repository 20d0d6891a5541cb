package dto

import "github.com/shopspring/decimal"

// UploadResponse resultado de cargar una planilla de ventas en la sesión.
// Stores y Statuses son los valores distintos del set cargado, para poblar
// los selectores de filtro de la UI.
type UploadResponse struct {
	FileName string   `json:"file_name"`
	Rows     int      `json:"rows"`
	Stores   []string `json:"stores"`
	Statuses []string `json:"statuses"`
}

// AnalysisFiltersRequest filtros de análisis (query params). Fechas en YYYY-MM-DD.
type AnalysisFiltersRequest struct {
	StartDate         string `query:"start_date"`
	EndDate           string `query:"end_date"`
	SKUContains       string `query:"sku"`
	Store             string `query:"store"`
	Status            string `query:"status"`
	KeepUnparsedDates bool   `query:"keep_unparsed_dates"`
}

// ReconciledLineResponse una venta matcheada contra la base de custos.
type ReconciledLineResponse struct {
	SKU         string          `json:"sku"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	Distributor string          `json:"distributor"`
	Units       int64           `json:"units"`
	Cost        decimal.Decimal `json:"cost"`
}

// SKUUnitsResponse desglose de unidades por SKU de venta.
type SKUUnitsResponse struct {
	SKU   string `json:"sku"`
	Units int64  `json:"units"`
}

// DistributorCostResponse desglose de costo por fornecedor.
type DistributorCostResponse struct {
	Distributor string          `json:"distributor"`
	Cost        decimal.Decimal `json:"cost"`
}

// AnalysisResponse agregado de una pasada de conciliación.
type AnalysisResponse struct {
	FileName           string                    `json:"file_name"`
	Lines              []ReconciledLineResponse  `json:"lines"`
	TotalCostToPay     decimal.Decimal           `json:"total_cost_to_pay"`
	TotalUnitsSold     int64                     `json:"total_units_sold"`
	MatchedCount       int                       `json:"matched_count"`
	TotalFilteredCount int                       `json:"total_filtered_count"`
	UnitsBySKU         []SKUUnitsResponse        `json:"units_by_sku"`
	CostByDistributor  []DistributorCostResponse `json:"cost_by_distributor"`
}
