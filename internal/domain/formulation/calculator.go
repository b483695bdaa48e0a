// Package formulation contiene los servicios de dominio puros para el
// cálculo de lotes: requerimientos de materia prima por porcentaje,
// materiales de empaque y tiempo de producción.
package formulation

import (
	"github.com/shopspring/decimal"

	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineResult resultado del cálculo para un renglón de la formulación.
type LineResult struct {
	ItemNumber          int
	RawMaterialID       int64
	RawMaterialName     string
	Percentage          decimal.Decimal
	Unit                string
	TheoreticalQuantity decimal.Decimal
	CurrentStock        decimal.Decimal
	StockSufficient     bool
}

// Totals agregados del cálculo.
type Totals struct {
	Percentage          decimal.Decimal // suma de porcentajes, redondeada a 2
	TheoreticalQuantity decimal.Decimal // suma de teóricos, redondeada a 3
	PercentageValid     bool            // igualdad exacta con 100 tras redondear; sin epsilon
}

// Result salida completa de Calculate.
type Result struct {
	Formulation []LineResult
	Totals      Totals
}

// Calculate computa la cantidad teórica de cada materia prima para
// producir quantity unidades:
//
//	teórico = quantity * porcentaje / 100, redondeado a 3 decimales
//	suficiente = stock_actual >= teórico
//
// La validez del porcentaje total usa igualdad exacta contra 100 después
// de redondear a 2 decimales. Es deliberadamente estricta: una
// comparación con tolerancia cambiaría el comportamiento observado del
// sistema y los resultados marcados como inválidos.
//
// Un producto sin renglones de formulación retorna ErrFormulationNotFound.
func Calculate(items []entity.FormulationItem, quantity decimal.Decimal) (*Result, error) {
	if len(items) == 0 {
		return nil, domain.ErrFormulationNotFound
	}

	res := &Result{Formulation: make([]LineResult, 0, len(items))}
	totalPct := decimal.Zero
	totalTheoretical := decimal.Zero

	for _, item := range items {
		theoretical := quantity.Mul(item.Percentage).Div(hundred).Round(3)
		res.Formulation = append(res.Formulation, LineResult{
			ItemNumber:          item.ItemNumber,
			RawMaterialID:       item.RawMaterialID,
			RawMaterialName:     item.RawMaterialName,
			Percentage:          item.Percentage,
			Unit:                item.RawMaterialUnit,
			TheoreticalQuantity: theoretical,
			CurrentStock:        item.RawMaterialStock,
			StockSufficient:     item.RawMaterialStock.GreaterThanOrEqual(theoretical),
		})
		totalPct = totalPct.Add(item.Percentage)
		totalTheoretical = totalTheoretical.Add(theoretical)
	}

	res.Totals = Totals{
		Percentage:          totalPct.Round(2),
		TheoreticalQuantity: totalTheoretical.Round(3),
		PercentageValid:     totalPct.Round(2).Equal(hundred),
	}
	return res, nil
}
