// Demo: run a query through database/sql and sqlx, wrap the rows in an
// owning handle, and export the result as JSON.
package main

import (
	"fmt"
	"log"

	"github.com/pgtoolbox/pgresult/example/shared/config"
	"github.com/pgtoolbox/pgresult/pgresult"
)

func main() {
	db := config.PostgresSQLXDemoConfig()
	defer db.Close()

	rows, err := db.Queryx("SELECT id, name, email FROM users ORDER BY id LIMIT 10")
	if err != nil {
		log.Fatal("Failed to execute query, error: ", err)
	}

	handle, err := pgresult.FromSQLXRows(rows)
	if err != nil {
		log.Fatal("Failed to wrap query result, error: ", err)
	}
	defer handle.Free()

	names, err := handle.Column("name")
	if err != nil {
		log.Fatal("Failed to fetch column, error: ", err)
	}

	fmt.Println("names:", names)

	encoded, err := handle.MarshalJSON()
	if err != nil {
		log.Fatal("Failed to export result, error: ", err)
	}

	fmt.Println(string(encoded))
}
