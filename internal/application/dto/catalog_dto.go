package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto (solo admin).
type CreateProductRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Presentation string `json:"presentation"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
}

// ProductResponse proyección de un producto.
type ProductResponse struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Presentation  string    `json:"presentation,omitempty"`
	Description   string    `json:"description,omitempty"`
	Unit          string    `json:"unit"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// FormulationItemResponse renglón de la receta de un producto.
type FormulationItemResponse struct {
	ItemNumber    int             `json:"item_number"`
	RawMaterialID int64           `json:"raw_material_id"`
	Code          string          `json:"rm_code"`
	Name          string          `json:"rm_name"`
	Unit          string          `json:"rm_unit"`
	Stock         decimal.Decimal `json:"rm_stock"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// CreateRawMaterialRequest alta de materia prima (solo admin).
type CreateRawMaterialRequest struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	MaxStock  decimal.Decimal `json:"max_stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Supplier  string          `json:"supplier"`
}

// RawMaterialResponse proyección de una materia prima.
type RawMaterialResponse struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	MaxStock  decimal.Decimal `json:"max_stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Supplier  string          `json:"supplier,omitempty"`
}

// PackagingMaterialResponse material de empaque activo.
type PackagingMaterialResponse struct {
	ID    int64           `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Unit  string          `json:"unit"`
	Stock decimal.Decimal `json:"stock"`
}

// NotificationResponse aviso de usuario.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
