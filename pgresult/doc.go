// Package pgresult provides an owning handle over one executed PostgreSQL
// query's result set.
//
// A Handle wraps exactly one materialized pgconn.Result and exposes typed
// access to its rows, columns, and column metadata. The handle owns the
// native result for its entire lifetime and guarantees it is released
// exactly once, either explicitly via Free or automatically when the
// handle becomes unreachable.
//
// Key features:
//   - Multiple construction paths (pgconn.Result, pgx.Rows, sql.Rows, sqlx.Rows)
//   - Bounds-checked row access and exact-match field name resolution
//   - Column type name and type OID reporting via pgtype
//   - Idempotent release with guaranteed cleanup on all exit paths
//   - Configurable logging through a dependency-free Logger interface
//
// Usage examples:
//
//	// Wrap a materialized result
//	handle, _ := pgresult.New(res)
//	defer handle.Free()
//
//	// Or drain live pgx rows into a handle
//	rows, _ := pool.Query(ctx, query)
//	handle, _ := pgresult.FromPGXRows(rows, pgresult.WithLogger(logger))
//	defer handle.Free()
//
//	names, _ := handle.FieldNames()
//	row, _ := handle.Row(0)
//	values, _ := handle.Column("name")
//
// Field values are returned as text; converting them into domain-typed
// values is the job of a hydration layer on top of this package, using
// FieldType and TypeOID as hints.
package pgresult
