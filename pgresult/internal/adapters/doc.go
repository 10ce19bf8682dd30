// Package adapters provides materialization adapters for the result handle.
//
// This package implements the adapter pattern to support multiple PostgreSQL
// database libraries: pgx.Rows, sql.Rows, and sqlx.Rows. All adapters drain
// a live row stream into the same canonical native form, a materialized
// pgconn.Result, which the handle then takes exclusive ownership of.
//
// The adapters handle the specifics of each database library, including
// copying driver-owned buffers and recovering column type OIDs where the
// library does not report them directly.
package adapters
