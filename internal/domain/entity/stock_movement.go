package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento y de referencia del libro de inventario.
const (
	MovementTypeIN  = "IN"
	MovementTypeOUT = "OUT"

	MaterialTypeRaw       = "RAW_MATERIAL"
	MaterialTypePackaging = "PACKAGING"

	ReferenceTypeBatchRecord = "BATCH_RECORD"
	ReferenceTypeAdjustment  = "ADJUSTMENT"
)

// StockMovement asiento del libro de inventario. Append-only: nunca se
// actualiza ni se borra. Se escribe en la misma transacción que el
// cambio de stock que lo origina.
type StockMovement struct {
	ID            int64
	MaterialType  string
	MaterialID    int64
	MovementType  string // IN | OUT
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   int64
	CreatedBy     int64
	CreatedAt     time.Time
}

// AuditEntry asiento del audit trail. Append-only y best-effort: los
// fallos de escritura se registran en el log pero jamás bloquean ni
// revierten la operación que los originó.
type AuditEntry struct {
	ID        int64
	UserID    *int64
	RecordID  *int64
	Action    string
	Details   json.RawMessage
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Notification aviso para un usuario (UserID nulo = broadcast).
type Notification struct {
	ID        int64
	UserID    *int64
	Title     string
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}

// SystemSetting par clave/valor de configuración persistida
// (por ejemplo packaging_box_factor).
type SystemSetting struct {
	Key   string
	Value string
}
