// Demo: build a query with goqu, run it on a pgx pool, and walk the
// result through an owning handle.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgtoolbox/pgresult/example/shared/config"
	"github.com/pgtoolbox/pgresult/pgresult"
)

func main() {
	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolDemoConfig())
	if err != nil {
		log.Fatal("Failed to create connection pool, error: ", err)
	}
	defer pool.Close()

	query, _, err := goqu.Dialect("postgres").
		From("users").
		Select("id", "name", "email").
		Order(goqu.I("id").Asc()).
		Limit(10).
		ToSQL()
	if err != nil {
		log.Fatal("Failed to build query, error: ", err)
	}

	rows, err := pool.Query(ctx, query)
	if err != nil {
		log.Fatal("Failed to execute query, error: ", err)
	}

	handle, err := pgresult.FromPGXRows(rows, pgresult.WithLogger(slog.Default()))
	if err != nil {
		log.Fatal("Failed to wrap query result, error: ", err)
	}
	defer handle.Free()

	names, err := handle.FieldNames()
	if err != nil {
		log.Fatal("Failed to read field names, error: ", err)
	}

	fmt.Println("fields:", names)

	for _, name := range names {
		typeName, known, typeErr := handle.FieldType(name)
		if typeErr != nil {
			log.Fatal("Failed to read field type, error: ", typeErr)
		}

		if !known {
			typeName = "?"
		}

		oid, oidErr := handle.TypeOID(name)
		if oidErr != nil {
			log.Fatal("Failed to read type oid, error: ", oidErr)
		}

		fmt.Printf("  %s %s (oid %d)\n", name, typeName, oid)
	}

	rowCount, err := handle.RowCount()
	if err != nil {
		log.Fatal("Failed to read row count, error: ", err)
	}

	for index := 0; index < rowCount; index++ {
		row, rowErr := handle.Row(index)
		if rowErr != nil {
			log.Fatal("Failed to fetch row, error: ", rowErr)
		}

		fmt.Printf("row %d: %v\n", index, row)
	}
}
