package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del registro de lote. Máquina lineal:
// draft -> signed -> {approved | rejected}. approved y rejected son
// terminales; no existe reingreso de estado.
const (
	StatusDraft    = "draft"
	StatusSigned   = "signed"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// BatchRecord registro de producción de un lote. Propiedad exclusiva del
// operador creador hasta la firma; después solo el verificador puede
// aprobar o rechazar.
type BatchRecord struct {
	ID             int64
	BatchNumber    string // único
	OperatorID     int64
	ProductName    string
	Quantity       decimal.Decimal
	ProductionDate string
	FormData       json.RawMessage // blob opaco del formulario
	DataHash       string          // SHA-256 hex de FormData
	Status         string
	VerificadorID  *int64
	SignedAt       *time.Time
	VerifiedAt     *time.Time
	CreatedAt      time.Time

	// Denormalizados al leer con JOIN a users.
	OperatorName    string
	VerificadorName string
}

// BatchFormulationLine snapshot de un renglón de formulación al momento
// de crear el registro, más los datos reales de dispensación. Inmutable
// cuando el registro sale de draft.
type BatchFormulationLine struct {
	ID                  int64
	RecordID            int64
	RawMaterialID       int64
	ItemNumber          int
	Percentage          decimal.Decimal
	TheoreticalQuantity decimal.Decimal
	ActualQuantity      *decimal.Decimal
	LotNumber           string
	DispensedBy         string

	RawMaterialName string
	Unit            string
}

// RecordSignature firma digital aplicada a un registro.
type RecordSignature struct {
	ID            int64
	RecordID      int64
	UserID        int64
	SignatureData string // base64
	SignatureType string // operator_sign
	CreatedAt     time.Time
}
