package formulation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/formulation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func item(n int, materialID int64, name, pct, stock string) entity.FormulationItem {
	return entity.FormulationItem{
		ItemNumber:       n,
		RawMaterialID:    materialID,
		RawMaterialName:  name,
		RawMaterialUnit:  "KG",
		Percentage:       decimal.RequireFromString(pct),
		RawMaterialStock: decimal.RequireFromString(stock),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Calculate
// ──────────────────────────────────────────────────────────────────────────────

// Crema al 10/90 para 1000 unidades: 100 y 900 kg, total 100% válido.
func TestCalculate_FormulacionValida(t *testing.T) {
	items := []entity.FormulationItem{
		item(1, 10, "Principio activo", "10", "150"),
		item(2, 11, "Base crema", "90", "1000"),
	}

	res, err := formulation.Calculate(items, dec("1000"))
	require.NoError(t, err)
	require.Len(t, res.Formulation, 2)

	assert.True(t, dec("100").Equal(res.Formulation[0].TheoreticalQuantity),
		"10%% de 1000 debe ser 100, fue %s", res.Formulation[0].TheoreticalQuantity)
	assert.True(t, dec("900").Equal(res.Formulation[1].TheoreticalQuantity))
	assert.True(t, res.Formulation[0].StockSufficient, "stock 150 alcanza para 100")
	assert.True(t, res.Formulation[1].StockSufficient, "stock 1000 alcanza para 900")

	assert.True(t, dec("100").Equal(res.Totals.Percentage))
	assert.True(t, dec("1000").Equal(res.Totals.TheoreticalQuantity))
	assert.True(t, res.Totals.PercentageValid, "la suma 100%% debe ser válida")
}

// Los teóricos se redondean a 3 decimales.
func TestCalculate_RedondeoATresDecimales(t *testing.T) {
	items := []entity.FormulationItem{
		item(1, 10, "Ácido esteárico", "33.3333", "100"),
		item(2, 11, "Glicerina", "66.6667", "100"),
	}

	res, err := formulation.Calculate(items, dec("100"))
	require.NoError(t, err)

	assert.True(t, dec("33.333").Equal(res.Formulation[0].TheoreticalQuantity),
		"33.3333%% de 100 redondeado a 3 decimales debe ser 33.333")
	assert.True(t, dec("66.667").Equal(res.Formulation[1].TheoreticalQuantity))
	assert.True(t, res.Totals.PercentageValid,
		"33.3333 + 66.6667 = 100.00 tras redondear a 2 decimales")
}

// Una suma distinta de 100 marca el resultado como inválido pero no es error.
func TestCalculate_PorcentajeInvalido(t *testing.T) {
	items := []entity.FormulationItem{
		item(1, 10, "Componente A", "40", "100"),
		item(2, 11, "Componente B", "40", "100"),
	}

	res, err := formulation.Calculate(items, dec("50"))
	require.NoError(t, err)

	assert.True(t, dec("80").Equal(res.Totals.Percentage))
	assert.False(t, res.Totals.PercentageValid, "80%% no debe ser válido")
}

// Stock por debajo del teórico marca el renglón como insuficiente.
func TestCalculate_StockInsuficiente(t *testing.T) {
	items := []entity.FormulationItem{
		item(1, 10, "Principio activo", "100", "99.999"),
	}

	res, err := formulation.Calculate(items, dec("100"))
	require.NoError(t, err)

	assert.False(t, res.Formulation[0].StockSufficient,
		"stock 99.999 no alcanza para teórico 100")
}

// Producto sin receta -> ErrFormulationNotFound.
func TestCalculate_SinFormulacion(t *testing.T) {
	_, err := formulation.Calculate(nil, dec("100"))
	assert.ErrorIs(t, err, domain.ErrFormulationNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculatePackaging
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculatePackaging_FactorPorDefecto(t *testing.T) {
	res, err := formulation.CalculatePackaging(8800, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, int64(8800), res.Units)
	require.Contains(t, res.Materials, "box")
	assert.True(t, dec("176").Equal(res.Materials["box"].Quantity),
		"8800 * 0.02 = 176 cajas, fue %s", res.Materials["box"].Quantity)
	assert.Equal(t, "CAJAS", res.Materials["box"].Unit)

	for _, name := range []string{"bottle", "cap", "label_front", "label_back", "bag"} {
		require.Contains(t, res.Materials, name)
		assert.True(t, dec("8800").Equal(res.Materials[name].Quantity),
			"el componente %s es 1:1 con las unidades", name)
	}

	// total = 5 componentes 1:1 + cajas sin redondear
	assert.True(t, dec("44176").Equal(res.TotalItems))
}

func TestCalculatePackaging_FactorConfigurado(t *testing.T) {
	res, err := formulation.CalculatePackaging(1000, dec("0.05"))
	require.NoError(t, err)

	assert.True(t, dec("50").Equal(res.Materials["box"].Quantity))
	assert.True(t, dec("5050").Equal(res.TotalItems))
}

func TestCalculatePackaging_UnidadesInvalidas(t *testing.T) {
	_, err := formulation.CalculatePackaging(0, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = formulation.CalculatePackaging(-5, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalculateTime
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateTime_TurnoNormal(t *testing.T) {
	res, err := formulation.CalculateTime("08:00", "16:30")
	require.NoError(t, err)

	assert.Equal(t, 8.5, res.HoursWorked)
	assert.Equal(t, 510, res.MinutesWorked)
}

func TestCalculateTime_RedondeoADosDecimales(t *testing.T) {
	res, err := formulation.CalculateTime("08:00", "08:50")
	require.NoError(t, err)

	assert.Equal(t, 0.83, res.HoursWorked, "50 minutos son 0.83 horas")
	assert.Equal(t, 50, res.MinutesWorked)
}

func TestCalculateTime_Invalido(t *testing.T) {
	_, err := formulation.CalculateTime("16:00", "08:00")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fin antes del inicio")

	_, err = formulation.CalculateTime("ocho", "16:00")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato no HH:MM")

	_, err = formulation.CalculateTime("08:00", "08:00")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "duración cero")
}
