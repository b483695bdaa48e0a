package sync

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExternalProduct fila de producto leída de la fuente externa, ya
// normalizada por el mapeo de campos del conector.
type ExternalProduct struct {
	ID          any // id en el esquema del proveedor; se usa para buscar su formulación
	Code        string
	Name        string
	Description string
	Unit        string
	// Presentation no es parte del mapeo de productos: la fuente
	// nunca la trae y cada sincronización la deja vacía en el
	// producto local.
	Presentation string
}

// ExternalIngredient fila de ingrediente/materia prima externa.
type ExternalIngredient struct {
	IngredientID any
	Code         string
	Name         string
	Unit         string
	Quantity     decimal.Decimal
	Percentage   decimal.Decimal
	Stock        decimal.Decimal
	Price        decimal.Decimal
}

// ExternalSource puerto hacia la base de datos del proveedor
// (implementado por infrastructure/connector.Source). El motor no
// conoce dialectos ni mapeos; recibe filas ya resueltas.
type ExternalSource interface {
	Connect(ctx context.Context) error
	// Disconnect nunca devuelve error: los fallos de cierre se registran
	// en el log del conector y no deben enmascarar el resultado del sync.
	Disconnect()

	FetchProducts(ctx context.Context) ([]ExternalProduct, error)
	FetchProductIngredients(ctx context.Context, externalProductID any) ([]ExternalIngredient, error)
	FetchAllIngredients(ctx context.Context) ([]ExternalIngredient, error)

	// HasFormulation indica si la configuración trae tabla de
	// ingredientes y de formulación; sin ambas no se sincroniza la receta.
	HasFormulation() bool
}
