package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

// RawMaterialRepository puerto de persistencia para RawMaterial.
// El stock solo se muta vía DecrementStock dentro de una transacción que
// escribe el StockMovement correspondiente.
type RawMaterialRepository interface {
	Create(ctx context.Context, m *entity.RawMaterial) (int64, error)
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*entity.RawMaterial, error)
	// GetByCode y GetByName devuelven (nil, nil) si no existe: los
	// llamadores resuelven o crean según ausencia.
	GetByCode(ctx context.Context, code string) (*entity.RawMaterial, error)
	GetByName(ctx context.Context, name string) (*entity.RawMaterial, error)
	Update(ctx context.Context, m *entity.RawMaterial) error
	ListActive(ctx context.Context) ([]*entity.RawMaterial, error)
	ListLowStock(ctx context.Context) ([]*entity.RawMaterial, error)
	DecrementStock(ctx context.Context, id int64, quantity decimal.Decimal) error
}

// PackagingMaterialRepository puerto para materiales de empaque.
type PackagingMaterialRepository interface {
	ListActive(ctx context.Context) ([]*entity.PackagingMaterial, error)
}

// StockMovementRepository libro de inventario append-only.
type StockMovementRepository interface {
	Insert(ctx context.Context, mv *entity.StockMovement) error
}

// SettingRepository configuración persistida clave/valor.
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
}
