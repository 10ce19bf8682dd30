// Package fixtures builds in-memory pgconn.Result values for tests.
//
// The fixtures are fully materialized results, so handle behavior can be
// tested without a running database, in the same way it behaves against
// results drained from a live connection.
package fixtures

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// TwoByTwoResult builds a result with columns ["id", "name"] and the two
// rows (1, "a") and (2, "b").
func TwoByTwoResult() *pgconn.Result {
	return &pgconn.Result{
		FieldDescriptions: []pgconn.FieldDescription{
			{Name: "id", DataTypeOID: pgtype.Int4OID, Format: pgtype.TextFormatCode},
			{Name: "name", DataTypeOID: pgtype.TextOID, Format: pgtype.TextFormatCode},
		},
		Rows: [][][]byte{
			{[]byte("1"), []byte("a")},
			{[]byte("2"), []byte("b")},
		},
		CommandTag: pgconn.NewCommandTag("SELECT 2"),
	}
}

// UsersResult builds a result shaped like a user listing with the given
// number of rows. The id column carries random UUIDs, the email column of
// every second row is NULL.
func UsersResult(rowCount int) *pgconn.Result {
	rows := make([][][]byte, 0, rowCount)

	for i := 0; i < rowCount; i++ {
		var email []byte
		if i%2 == 0 {
			email = []byte(fmt.Sprintf("user%d@example.com", i))
		}

		rows = append(rows, [][]byte{
			[]byte(uuid.NewString()),
			[]byte("user " + strconv.Itoa(i)),
			email,
		})
	}

	return &pgconn.Result{
		FieldDescriptions: []pgconn.FieldDescription{
			{Name: "id", DataTypeOID: pgtype.UUIDOID, Format: pgtype.TextFormatCode},
			{Name: "name", DataTypeOID: pgtype.TextOID, Format: pgtype.TextFormatCode},
			{Name: "email", DataTypeOID: pgtype.TextOID, Format: pgtype.TextFormatCode},
		},
		Rows:       rows,
		CommandTag: pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", rowCount)),
	}
}

// EmptyResult builds a zero-row result that still carries column metadata
// for the given column names.
func EmptyResult(columnNames ...string) *pgconn.Result {
	fields := make([]pgconn.FieldDescription, 0, len(columnNames))

	for _, name := range columnNames {
		fields = append(fields, pgconn.FieldDescription{
			Name:        name,
			DataTypeOID: pgtype.TextOID,
			Format:      pgtype.TextFormatCode,
		})
	}

	return &pgconn.Result{
		FieldDescriptions: fields,
		CommandTag:        pgconn.NewCommandTag("SELECT 0"),
	}
}

// MutationResult builds a row-less result of a mutating statement that
// affected the given number of rows.
func MutationResult(affectedRows int64) *pgconn.Result {
	return &pgconn.Result{
		CommandTag: pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", affectedRows)),
	}
}

// UntypedColumnResult builds a single-column result whose column type the
// driver could not resolve (OID zero).
func UntypedColumnResult(columnName string) *pgconn.Result {
	return &pgconn.Result{
		FieldDescriptions: []pgconn.FieldDescription{
			{Name: columnName, DataTypeOID: 0, Format: pgtype.TextFormatCode},
		},
		Rows: [][][]byte{
			{[]byte("value")},
		},
		CommandTag: pgconn.NewCommandTag("SELECT 1"),
	}
}

// FailedResult builds a result carrying a driver error, as produced by a
// query execution that did not complete.
func FailedResult(message string) *pgconn.Result {
	return &pgconn.Result{
		Err: errors.New(message),
	}
}
