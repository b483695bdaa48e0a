package repository

import (
	"context"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (int64, error)
	// GetByID devuelve domain.ErrNotFound si el producto no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByCode devuelve (nil, nil) si no existe: los llamadores hacen
	// upsert y la ausencia no es un error.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListActive(ctx context.Context) ([]*entity.Product, error)
}

// FormulationRepository puerto para los renglones de formulación de productos.
type FormulationRepository interface {
	// ListByProduct devuelve los renglones ordenados por item_number,
	// con los campos de materia prima denormalizados (JOIN).
	ListByProduct(ctx context.Context, productID int64) ([]entity.FormulationItem, error)
	// DeleteByProduct borra toda la formulación del producto (usado por
	// el sync para reemplazarla completa).
	DeleteByProduct(ctx context.Context, productID int64) error
	Insert(ctx context.Context, item *entity.FormulationItem) error
}
