package connector

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

type sqliteConnector struct {
	cfg Connection
	db  *sql.DB
}

func newSQLiteConnector(cfg Connection) *sqliteConnector {
	return &sqliteConnector{cfg: cfg}
}

func (c *sqliteConnector) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite", c.cfg.Path)
	if err != nil {
		return &ConnectionError{DBType: "sqlite", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return &ConnectionError{DBType: "sqlite", Err: err}
	}
	c.db = db
	return nil
}

func (c *sqliteConnector) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	if c.db == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{DBType: "sqlite", Err: err}
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, &QueryError{DBType: "sqlite", Err: err}
	}
	return result, nil
}

func (c *sqliteConnector) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
