package connector

import (
	"context"
	"fmt"
)

// Connector acceso de solo lectura a una base de datos externa. Las
// consultas usan ? como marcador de posición; cada implementación lo
// reescribe a la sintaxis de su dialecto.
type Connector interface {
	Connect(ctx context.Context) error
	// Query ejecuta la consulta y devuelve las filas como mapas
	// columna -> valor. Si aún no hay conexión, conecta primero.
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)
	// Close cierra la conexión. Un fallo al cerrar se devuelve para
	// que el llamador lo registre; nunca aborta una sincronización.
	Close() error
}

// New construye el conector para el dialecto de la conexión.
func New(conn Connection) (Connector, error) {
	switch conn.Type {
	case "mysql":
		return newMySQLConnector(conn), nil
	case "postgres":
		return newPostgresConnector(conn), nil
	case "sqlite":
		return newSQLiteConnector(conn), nil
	case "mssql":
		return newMSSQLConnector(conn), nil
	default:
		return nil, fmt.Errorf("tipo de base de datos no soportado: %q", conn.Type)
	}
}

// ConnectionError fallo al establecer la conexión externa.
type ConnectionError struct {
	DBType string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed (%s): %v", e.DBType, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError fallo al ejecutar una consulta externa.
type QueryError struct {
	DBType string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query execution failed (%s): %v", e.DBType, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
