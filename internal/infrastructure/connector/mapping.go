package connector

import "fmt"

// Los resolvers de mapeo arman las consultas SELECT contra la base
// externa. Cada campo lógico se alias a un nombre fijo, de modo que el
// resto del paquete lee las filas por esos alias sin importar cómo se
// llamen las columnas del proveedor.
//
// Los valores de mapeo se interpolan sin escapar en el SQL: vienen del
// archivo de configuración del administrador, no de entrada de usuario.
// Un mapeo puede ser una columna o una expresión SQL del dialecto
// externo (p. ej. "COALESCE(unidad, 'KG')" o un filtro "activo = 1").

// productMappingDefaults campos lógicos de la consulta de productos.
// description, unit y active tienen default de expresión, no de columna.
var productMappingDefaults = map[string]string{
	"id":          "id",
	"code":        "code",
	"name":        "name",
	"description": "NULL",
	"unit":        "'UNIDADES'",
	"active":      "1=1",
}

var formulationMappingDefaults = map[string]string{
	"product_id":      "product_id",
	"ingredient_id":   "ingredient_id",
	"ingredient_name": "ingredient_name",
	"quantity":        "NULL",
	"unit":            "'KG'",
	"percentage":      "NULL",
}

var ingredientMappingDefaults = map[string]string{
	"id":     "id",
	"code":   "code",
	"name":   "name",
	"unit":   "'KG'",
	"stock":  "0",
	"price":  "0",
	"active": "1=1",
}

// resolveMapping overlay del mapeo configurado sobre los defaults.
// Una clave presente pero vacía también cae al default.
func resolveMapping(defaults, overlay map[string]string) map[string]string {
	resolved := make(map[string]string, len(defaults))
	for field, def := range defaults {
		resolved[field] = def
		if v, ok := overlay[field]; ok && v != "" {
			resolved[field] = v
		}
	}
	return resolved
}

// productsQuery SELECT de productos externos con alias normalizados.
func productsQuery(table string, overlay map[string]string) string {
	m := resolveMapping(productMappingDefaults, overlay)
	return fmt.Sprintf(
		"SELECT %s AS id, %s AS code, %s AS name, %s AS description, %s AS unit FROM %s WHERE %s",
		m["id"], m["code"], m["name"], m["description"], m["unit"], table, m["active"],
	)
}

// formulationQuery SELECT de los ingredientes de un producto. Lleva un
// único parámetro posicional: el id externo del producto.
func formulationQuery(table string, overlay map[string]string) string {
	m := resolveMapping(formulationMappingDefaults, overlay)
	return fmt.Sprintf(
		"SELECT %s AS product_id, %s AS ingredient_id, %s AS ingredient_name, %s AS quantity, %s AS unit, %s AS percentage FROM %s WHERE %s = ?",
		m["product_id"], m["ingredient_id"], m["ingredient_name"], m["quantity"], m["unit"], m["percentage"], table, m["product_id"],
	)
}

// ingredientsQuery SELECT de todas las materias primas externas.
func ingredientsQuery(table string, overlay map[string]string) string {
	m := resolveMapping(ingredientMappingDefaults, overlay)
	return fmt.Sprintf(
		"SELECT %s AS id, %s AS code, %s AS name, %s AS unit, %s AS stock, %s AS price FROM %s WHERE %s",
		m["id"], m["code"], m["name"], m["unit"], m["stock"], m["price"], table, m["active"],
	)
}
