package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto terminado con su formulación porcentual asociada.
// Nunca se elimina: se desactiva con IsActive.
type Product struct {
	ID           int64
	Code         string // único
	Name         string
	Presentation string
	Description  string
	Unit         string
	IsActive     bool
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RawMaterial materia prima referenciada por las formulaciones.
// Stock se muta únicamente a través de operaciones que generan
// StockMovement; escribir el campo directo es una violación de consistencia.
type RawMaterial struct {
	ID        int64
	Code      string // único; los sincronizados llevan prefijo EXT-
	Name      string
	Unit      string
	Stock     decimal.Decimal
	MinStock  decimal.Decimal
	MaxStock  decimal.Decimal
	UnitPrice decimal.Decimal
	Supplier  string
	IsActive  bool
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormulationItem renglón de la receta de un producto. ItemNumber es
// 1-based y define el orden de la formulación. La suma de porcentajes
// de un producto debería ser 100; se verifica pero no se impone.
type FormulationItem struct {
	ID            int64
	ProductID     int64
	RawMaterialID int64
	ItemNumber    int
	Percentage    decimal.Decimal // 0-100

	// Campos denormalizados al leer con JOIN a raw_materials.
	RawMaterialCode  string
	RawMaterialName  string
	RawMaterialUnit  string
	RawMaterialStock decimal.Decimal
}

// PackagingMaterial material de empaque (frascos, tapas, etiquetas...).
// A diferencia de las materias primas, el cálculo de empaque no
// verifica suficiencia de stock.
type PackagingMaterial struct {
	ID       int64
	Code     string
	Name     string
	Type     string
	Unit     string
	Stock    decimal.Decimal
	IsActive bool
}
