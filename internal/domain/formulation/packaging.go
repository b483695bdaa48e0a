package formulation

import (
	"github.com/shopspring/decimal"

	"github.com/dmorales/batch-records-api/internal/domain"
)

// DefaultBoxFactor factor de cajas por unidad cuando no hay valor
// configurado en system_settings.
var DefaultBoxFactor = decimal.NewFromFloat(0.02)

// PackagingComponent cantidad requerida de un componente de empaque.
type PackagingComponent struct {
	Quantity decimal.Decimal
	Unit     string
}

// PackagingResult materiales de empaque para envasar Units unidades.
// No se verifica suficiencia de stock de empaque; es una asimetría
// conocida respecto a las materias primas.
type PackagingResult struct {
	Units      int64
	Materials  map[string]PackagingComponent
	TotalItems decimal.Decimal
}

// CalculatePackaging computa los cinco componentes 1:1 (frasco, tapa,
// dos etiquetas y bolsa) más cajas = unidades * boxFactor redondeado a 2.
// TotalItems usa la cantidad de cajas sin redondear, como el resto del
// sistema lo reporta.
func CalculatePackaging(units int64, boxFactor decimal.Decimal) (*PackagingResult, error) {
	if units <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if boxFactor.IsZero() {
		boxFactor = DefaultBoxFactor
	}

	qty := decimal.NewFromInt(units)
	boxes := qty.Mul(boxFactor)

	unitComponent := PackagingComponent{Quantity: qty, Unit: "UNIDADES"}
	return &PackagingResult{
		Units: units,
		Materials: map[string]PackagingComponent{
			"bottle":      unitComponent,
			"cap":         unitComponent,
			"label_front": unitComponent,
			"label_back":  unitComponent,
			"bag":         unitComponent,
			"box":         {Quantity: boxes.Round(2), Unit: "CAJAS"},
		},
		TotalItems: qty.Mul(decimal.NewFromInt(5)).Add(boxes),
	}, nil
}
