// Package connector conecta con bases de datos externas de proveedores
// (MySQL, PostgreSQL, SQLite, SQL Server) y las expone al motor de
// sincronización como una fuente tipada única.
package connector

// Connection parámetros de conexión a la base externa. Type selecciona
// el dialecto: mysql, postgres, sqlite o mssql.
type Connection struct {
	Type     string `json:"type" mapstructure:"type"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
	// Path ruta del archivo, solo para sqlite.
	Path string `json:"path" mapstructure:"path"`
	// TimeoutMillis timeout de conexión; 0 usa 10000.
	TimeoutMillis int `json:"timeout" mapstructure:"timeout"`
	// Encrypt y TrustServerCertificate solo aplican a mssql.
	Encrypt                bool `json:"encrypt" mapstructure:"encrypt"`
	TrustServerCertificate bool `json:"trustServerCertificate" mapstructure:"trustServerCertificate"`
}

// Tables nombres de tablas en la base externa. Ingredients y
// ProductFormulation son opcionales: si ambas están definidas el sync
// de productos importa también la formulación.
type Tables struct {
	Products           string `json:"products" mapstructure:"products"`
	Ingredients        string `json:"ingredients" mapstructure:"ingredients"`
	ProductFormulation string `json:"productFormulation" mapstructure:"productformulation"`
}

// FieldMappings columnas externas por campo lógico, una tabla por
// consulta. Cada mapa es un overlay parcial sobre los defaults del
// resolver; una clave ausente usa su default.
type FieldMappings struct {
	Products    map[string]string `json:"products" mapstructure:"products"`
	Ingredients map[string]string `json:"ingredients" mapstructure:"ingredients"`
	Formulation map[string]string `json:"formulation" mapstructure:"formulation"`
}

// Config configuración completa de una fuente externa.
type Config struct {
	Connection    Connection    `json:"connection" mapstructure:"connection"`
	Tables        Tables        `json:"tables" mapstructure:"tables"`
	FieldMappings FieldMappings `json:"fieldMappings" mapstructure:"fieldmappings"`
}

func (c Connection) timeoutMillis() int {
	if c.TimeoutMillis <= 0 {
		return 10000
	}
	return c.TimeoutMillis
}

func (c Connection) portOrDefault(def int) int {
	if c.Port == 0 {
		return def
	}
	return c.Port
}
