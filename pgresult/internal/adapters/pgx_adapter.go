package adapters

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CollectPGXRows drains pgx rows into a materialized pgconn.Result.
// The rows are closed before returning, also on failure. Raw values are
// copied because pgx reuses its read buffers between calls to Next.
func CollectPGXRows(rows pgx.Rows) (*pgconn.Result, error) {
	defer rows.Close()

	fields := append([]pgconn.FieldDescription(nil), rows.FieldDescriptions()...)

	var data [][][]byte

	for rows.Next() {
		raw := rows.RawValues()
		row := make([][]byte, len(raw))

		for i, value := range raw {
			if value == nil {
				continue // NULL stays nil
			}

			row[i] = append([]byte(nil), value...)
		}

		data = append(data, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("reading pgx rows: %w", rowsErr)
	}

	// The command tag is only available after the rows have been fully
	// read and closed.
	rows.Close()

	return &pgconn.Result{
		FieldDescriptions: fields,
		Rows:              data,
		CommandTag:        rows.CommandTag(),
	}, nil
}
