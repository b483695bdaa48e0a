package dto

import "github.com/shopspring/decimal"

// CalculateRequest entrada del cálculo de formulación.
type CalculateRequest struct {
	ProductID int64           `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CalculationLine renglón calculado de la formulación.
type CalculationLine struct {
	ItemNumber          int             `json:"item_number"`
	RawMaterialID       int64           `json:"raw_material_id"`
	RawMaterialName     string          `json:"raw_material_name"`
	Percentage          decimal.Decimal `json:"percentage"`
	Unit                string          `json:"unit"`
	TheoreticalQuantity decimal.Decimal `json:"theoretical_quantity"`
	CurrentStock        decimal.Decimal `json:"current_stock"`
	StockSufficient     bool            `json:"stock_sufficient"`
}

// CalculationTotals agregados del cálculo.
type CalculationTotals struct {
	Percentage          decimal.Decimal `json:"percentage"`
	TheoreticalQuantity decimal.Decimal `json:"theoretical_quantity"`
	PercentageValid     bool            `json:"percentage_valid"`
}

// CalculateResponse salida del cálculo de formulación.
type CalculateResponse struct {
	ProductID         int64             `json:"product_id"`
	QuantityToProduce decimal.Decimal   `json:"quantity_to_produce"`
	Formulation       []CalculationLine `json:"formulation"`
	Totals            CalculationTotals `json:"totals"`
}

// CalculatePackagingRequest entrada del cálculo de empaque.
type CalculatePackagingRequest struct {
	Units int64 `json:"units"`
}

// PackagingComponentResponse componente de empaque calculado.
type PackagingComponentResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// CalculatePackagingResponse salida del cálculo de empaque.
type CalculatePackagingResponse struct {
	Units      int64                                 `json:"units"`
	Materials  map[string]PackagingComponentResponse `json:"materials"`
	TotalItems decimal.Decimal                       `json:"total_items"`
}

// CalculateTimeRequest entrada del cálculo de tiempo de producción.
type CalculateTimeRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CalculateTimeResponse salida del cálculo de tiempo.
type CalculateTimeResponse struct {
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	HoursWorked   float64 `json:"hours_worked"`
	MinutesWorked int     `json:"minutes_worked"`
}
