package adapters

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// CollectSQLRows drains standard library sql rows into a materialized
// pgconn.Result. The rows are closed before returning, also on failure.
//
// database/sql does not expose type OIDs, only driver-reported type
// names; fieldOIDForTypeName recovers the OID through the given type map
// where possible. A synthesized SELECT command tag carries the row count,
// since sql.Rows does not expose the original command tag either.
func CollectSQLRows(rows *sql.Rows, typeMap *pgtype.Map) (*pgconn.Result, error) {
	defer rows.Close() //nolint:errcheck // second close after drain is a no-op

	columnTypes, typesErr := rows.ColumnTypes()
	if typesErr != nil {
		return nil, fmt.Errorf("reading sql column types: %w", typesErr)
	}

	fields := make([]pgconn.FieldDescription, len(columnTypes))
	for i, columnType := range columnTypes {
		fields[i] = pgconn.FieldDescription{
			Name:        columnType.Name(),
			DataTypeOID: fieldOIDForTypeName(typeMap, columnType.DatabaseTypeName()),
			Format:      pgtype.TextFormatCode,
		}
	}

	var data [][][]byte

	for rows.Next() {
		row := make([][]byte, len(fields))
		dest := make([]any, len(fields))

		for i := range row {
			dest[i] = &row[i]
		}

		if scanErr := rows.Scan(dest...); scanErr != nil {
			return nil, fmt.Errorf("scanning sql row: %w", scanErr)
		}

		data = append(data, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("reading sql rows: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("closing sql rows: %w", closeErr)
	}

	return &pgconn.Result{
		FieldDescriptions: fields,
		Rows:              data,
		CommandTag:        pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(data))),
	}, nil
}
