package connector

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

type mysqlConnector struct {
	cfg Connection
	db  *sql.DB
}

func newMySQLConnector(cfg Connection) *mysqlConnector {
	return &mysqlConnector{cfg: cfg}
}

func (c *mysqlConnector) Connect(ctx context.Context) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?timeout=%dms&parseTime=true",
		c.cfg.User, c.cfg.Password, c.cfg.Host, c.cfg.portOrDefault(3306),
		c.cfg.Database, c.cfg.timeoutMillis())

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return &ConnectionError{DBType: "mysql", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return &ConnectionError{DBType: "mysql", Err: err}
	}
	c.db = db
	return nil
}

func (c *mysqlConnector) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	if c.db == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{DBType: "mysql", Err: err}
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, &QueryError{DBType: "mysql", Err: err}
	}
	return result, nil
}

func (c *mysqlConnector) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
