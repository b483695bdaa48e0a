package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateRecordRequest alta de un registro de lote simple.
type CreateRecordRequest struct {
	BatchNumber    string          `json:"batchNumber"`
	ProductName    string          `json:"productName"`
	Quantity       decimal.Decimal `json:"quantity"`
	ProductionDate string          `json:"productionDate"`
	FormData       json.RawMessage `json:"formData"`
}

// RecordResponse proyección de un registro de lote.
type RecordResponse struct {
	ID              int64           `json:"id"`
	BatchNumber     string          `json:"batch_number"`
	OperatorID      int64           `json:"operator_id"`
	OperatorName    string          `json:"operator_name,omitempty"`
	VerificadorName string          `json:"verificador_name,omitempty"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	ProductionDate  string          `json:"production_date"`
	FormData        json.RawMessage `json:"form_data,omitempty"`
	Status          string          `json:"status"`
	SignedAt        *time.Time      `json:"signed_at,omitempty"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// VerifyRequest decisión del verificador.
type VerifyRequest struct {
	Approved bool `json:"approved"`
}

// FormulationLineRequest renglón dispensado que llega en el alta completa.
type FormulationLineRequest struct {
	RawMaterialID       int64            `json:"raw_material_id"`
	ItemNumber          int              `json:"item_number"`
	Percentage          decimal.Decimal  `json:"percentage"`
	TheoreticalQuantity decimal.Decimal  `json:"theoretical_quantity"`
	ActualQuantity      *decimal.Decimal `json:"actual_quantity"`
	LotNumber           string           `json:"lot_number"`
	DispensedBy         string           `json:"dispensed_by"`
}

// CreateCompleteRecordRequest alta de registro con formulación,
// empaque, control de calidad y tiempos. Todo se persiste en una sola
// transacción; las líneas con actual_quantity descuentan stock y
// generan movimientos OUT.
type CreateCompleteRecordRequest struct {
	BatchNumber    string                   `json:"batchNumber"`
	ProductID      int64                    `json:"productId"`
	ProductName    string                   `json:"productName"`
	Quantity       decimal.Decimal          `json:"quantity"`
	ProductionDate string                   `json:"productionDate"`
	Formulation    []FormulationLineRequest `json:"formulation"`
	Packaging      json.RawMessage          `json:"packaging,omitempty"`
	QualityControl json.RawMessage          `json:"qualityControl,omitempty"`
	ProductionTime json.RawMessage          `json:"productionTime,omitempty"`
}

// FormulationLineResponse renglón del snapshot persistido.
type FormulationLineResponse struct {
	ID                  int64            `json:"id"`
	RawMaterialID       int64            `json:"raw_material_id"`
	RawMaterialName     string           `json:"raw_material_name"`
	Unit                string           `json:"unit"`
	ItemNumber          int              `json:"item_number"`
	Percentage          decimal.Decimal  `json:"percentage"`
	TheoreticalQuantity decimal.Decimal  `json:"theoretical_quantity"`
	ActualQuantity      *decimal.Decimal `json:"actual_quantity"`
	LotNumber           string           `json:"lot_number,omitempty"`
	DispensedBy         string           `json:"dispensed_by,omitempty"`
}

// CompleteRecordResponse registro más su snapshot de formulación.
type CompleteRecordResponse struct {
	RecordResponse
	Formulation []FormulationLineResponse `json:"formulation"`
}

// DashboardStatsResponse contadores del tablero.
type DashboardStatsResponse struct {
	TotalRecords        int `json:"totalRecords"`
	PendingVerification int `json:"pendingVerification"`
	ApprovedRecords     int `json:"approvedRecords"`
}
