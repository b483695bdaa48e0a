package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de mapeos y armado de consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductsQuery_Defaults(t *testing.T) {
	q := productsQuery("productos", nil)

	assert.Equal(t,
		"SELECT id AS id, code AS code, name AS name, NULL AS description, 'UNIDADES' AS unit FROM productos WHERE 1=1",
		q, "sin mapeo cada campo usa su default")
}

func TestProductsQuery_Overlay(t *testing.T) {
	q := productsQuery("articulos", map[string]string{
		"id":     "id_articulo",
		"code":   "sku",
		"name":   "descripcion_corta",
		"unit":   "unidad_medida",
		"active": "activo = 1",
	})

	assert.Equal(t,
		"SELECT id_articulo AS id, sku AS code, descripcion_corta AS name, NULL AS description, unidad_medida AS unit FROM articulos WHERE activo = 1",
		q, "las claves mapeadas sustituyen su default; las ausentes lo conservan")
}

func TestProductsQuery_EmptyValueFallsBackToDefault(t *testing.T) {
	q := productsQuery("productos", map[string]string{"unit": ""})

	assert.Contains(t, q, "'UNIDADES' AS unit",
		"una clave presente pero vacía cae al default")
}

func TestFormulationQuery_FilterUsesMappedProductID(t *testing.T) {
	q := formulationQuery("formulas", map[string]string{
		"product_id":      "id_producto",
		"ingredient_id":   "id_insumo",
		"ingredient_name": "insumo",
	})

	assert.Equal(t,
		"SELECT id_producto AS product_id, id_insumo AS ingredient_id, insumo AS ingredient_name, NULL AS quantity, 'KG' AS unit, NULL AS percentage FROM formulas WHERE id_producto = ?",
		q, "el WHERE filtra por la columna externa mapeada a product_id")
}

func TestIngredientsQuery_Defaults(t *testing.T) {
	q := ingredientsQuery("insumos", nil)

	assert.Equal(t,
		"SELECT id AS id, code AS code, name AS name, 'KG' AS unit, 0 AS stock, 0 AS price FROM insumos WHERE 1=1",
		q)
}

func TestResolveMapping_DoesNotMutateDefaults(t *testing.T) {
	_ = resolveMapping(productMappingDefaults, map[string]string{"id": "otro"})

	assert.Equal(t, "id", productMappingDefaults["id"],
		"el overlay no debe escribir sobre los defaults compartidos")
}
