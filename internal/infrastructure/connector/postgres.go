package connector

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresConnector struct {
	cfg  Connection
	pool *pgxpool.Pool
}

func newPostgresConnector(cfg Connection) *postgresConnector {
	return &postgresConnector{cfg: cfg}
}

func (c *postgresConnector) Connect(ctx context.Context) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.cfg.User, c.cfg.Password, c.cfg.Host, c.cfg.portOrDefault(5432), c.cfg.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return &ConnectionError{DBType: "postgres", Err: err}
	}
	poolConfig.ConnConfig.ConnectTimeout = time.Duration(c.cfg.timeoutMillis()) * time.Millisecond

	// Registrar codec NUMERIC/DECIMAL -> shopspring/decimal en todas
	// las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return &ConnectionError{DBType: "postgres", Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return &ConnectionError{DBType: "postgres", Err: err}
	}
	c.pool = pool
	return nil
}

// Query reescribe los ? a $1, $2... antes de ejecutar.
func (c *postgresConnector) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	if c.pool == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	rows, err := c.pool.Query(ctx, rewritePostgresPlaceholders(query), args...)
	if err != nil {
		return nil, &QueryError{DBType: "postgres", Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &QueryError{DBType: "postgres", Err: err}
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{DBType: "postgres", Err: err}
	}
	return result, nil
}

// Close del pool de pgx no devuelve error; se mantiene la firma de la
// interfaz.
func (c *postgresConnector) Close() error {
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
	return nil
}
