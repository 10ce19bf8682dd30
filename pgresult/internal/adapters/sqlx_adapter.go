package adapters

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jmoiron/sqlx"
)

// CollectSQLXRows drains sqlx rows into a materialized pgconn.Result.
// sqlx rows are standard library rows underneath, so this delegates to
// the sql adapter.
func CollectSQLXRows(rows *sqlx.Rows, typeMap *pgtype.Map) (*pgconn.Result, error) {
	return CollectSQLRows(rows.Rows, typeMap)
}
