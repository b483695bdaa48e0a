package connector

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/microsoft/go-mssqldb"
)

type mssqlConnector struct {
	cfg Connection
	db  *sql.DB
}

func newMSSQLConnector(cfg Connection) *mssqlConnector {
	return &mssqlConnector{cfg: cfg}
}

func (c *mssqlConnector) Connect(ctx context.Context) error {
	query := url.Values{}
	query.Set("database", c.cfg.Database)
	query.Set("dial timeout", fmt.Sprintf("%d", (c.cfg.timeoutMillis()+999)/1000))
	if c.cfg.Encrypt {
		query.Set("encrypt", "true")
	} else {
		query.Set("encrypt", "disable")
	}
	if c.cfg.TrustServerCertificate {
		query.Set("trustservercertificate", "true")
	}

	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(c.cfg.User, c.cfg.Password),
		Host:     fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.portOrDefault(1433)),
		RawQuery: query.Encode(),
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return &ConnectionError{DBType: "mssql", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return &ConnectionError{DBType: "mssql", Err: err}
	}
	c.db = db
	return nil
}

// Query reescribe los ? a @param0, @param1... y registra cada
// argumento bajo el nombre posicional correspondiente.
func (c *mssqlConnector) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	if c.db == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	named := make([]any, len(args))
	for i, arg := range args {
		named[i] = sql.Named(fmt.Sprintf("param%d", i), arg)
	}

	rows, err := c.db.QueryContext(ctx, rewriteMSSQLPlaceholders(query), named...)
	if err != nil {
		return nil, &QueryError{DBType: "mssql", Err: err}
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, &QueryError{DBType: "mssql", Err: err}
	}
	return result, nil
}

func (c *mssqlConnector) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
