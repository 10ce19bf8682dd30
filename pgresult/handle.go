package pgresult

import (
	"database/sql"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/pgtoolbox/pgresult/pgresult/internal/adapters"
)

const (
	logMsgHandleCreated     = "result handle created"
	logMsgHandleFreed       = "result handle freed"
	logMsgCollectRowsFailed = "failed to collect rows into result handle"
	logAttrError            = "error"
	logAttrFieldCount       = "field_count"
	logAttrRowCount         = "row_count"
	logAttrCommandTag       = "command_tag"
	unknownOID              = TypeOIDUint32(0)
)

// Handle is the owning wrapper around one executed query's result set.
// It holds the native pgconn.Result for its entire lifetime and releases
// it exactly once. A Handle is not safe for concurrent use; the owner is
// expected to confine it to a single goroutine or synchronize externally.
type Handle struct {
	res     *pgconn.Result
	typeMap *pgtype.Map
	logger  Logger
	freed   bool
}

// New creates a Handle that takes exclusive ownership of the given result.
// The result must represent a completed query execution: a nil result or a
// result carrying a driver error fails with ErrInvalidResult, reporting
// what was actually observed. No other component may release or retain the
// result after it has been handed over.
func New(res *pgconn.Result, options ...Option) (*Handle, error) {
	h, optionErr := newHandle(options...)
	if optionErr != nil {
		return nil, optionErr
	}

	if adoptErr := h.adopt(res); adoptErr != nil {
		return nil, adoptErr
	}

	return h, nil
}

// FromPGXRows drains the given pgx rows into a materialized result and
// wraps it in a new Handle. The rows are always closed, also on failure.
func FromPGXRows(rows pgx.Rows, options ...Option) (*Handle, error) {
	if rows == nil {
		return nil, ErrNilRowsSupplied
	}

	h, optionErr := newHandle(options...)
	if optionErr != nil {
		rows.Close()
		return nil, optionErr
	}

	res, collectErr := adapters.CollectPGXRows(rows)
	if collectErr != nil {
		if h.logger != nil {
			h.logger.Warn(logMsgCollectRowsFailed, logAttrError, collectErr.Error())
		}

		return nil, errors.Join(ErrCollectingRowsFailed, collectErr)
	}

	if adoptErr := h.adopt(res); adoptErr != nil {
		return nil, adoptErr
	}

	return h, nil
}

// FromSQLRows drains the given database/sql rows into a materialized
// result and wraps it in a new Handle. Column type OIDs are recovered
// from the driver-reported type names where possible; columns whose type
// the driver does not report resolve to the unknown OID.
func FromSQLRows(rows *sql.Rows, options ...Option) (*Handle, error) {
	if rows == nil {
		return nil, ErrNilRowsSupplied
	}

	h, optionErr := newHandle(options...)
	if optionErr != nil {
		_ = rows.Close()
		return nil, optionErr
	}

	res, collectErr := adapters.CollectSQLRows(rows, h.typeMap)
	if collectErr != nil {
		if h.logger != nil {
			h.logger.Warn(logMsgCollectRowsFailed, logAttrError, collectErr.Error())
		}

		return nil, errors.Join(ErrCollectingRowsFailed, collectErr)
	}

	if adoptErr := h.adopt(res); adoptErr != nil {
		return nil, adoptErr
	}

	return h, nil
}

// FromSQLXRows drains the given sqlx rows into a materialized result and
// wraps it in a new Handle. The rows are always closed, also on failure.
func FromSQLXRows(rows *sqlx.Rows, options ...Option) (*Handle, error) {
	if rows == nil {
		return nil, ErrNilRowsSupplied
	}

	h, optionErr := newHandle(options...)
	if optionErr != nil {
		_ = rows.Close()
		return nil, optionErr
	}

	res, collectErr := adapters.CollectSQLXRows(rows, h.typeMap)
	if collectErr != nil {
		if h.logger != nil {
			h.logger.Warn(logMsgCollectRowsFailed, logAttrError, collectErr.Error())
		}

		return nil, errors.Join(ErrCollectingRowsFailed, collectErr)
	}

	if adoptErr := h.adopt(res); adoptErr != nil {
		return nil, adoptErr
	}

	return h, nil
}

// newHandle builds an unbound handle with defaults and applies options.
func newHandle(options ...Option) (*Handle, error) {
	h := &Handle{
		typeMap: pgtype.NewMap(),
	}

	for _, option := range options {
		if err := option(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// adopt validates the native result and takes ownership of it.
// Validation covers only the genuinely dynamic boundary: the result value
// itself. Everything else is enforced by the type system.
func (h *Handle) adopt(res *pgconn.Result) error {
	if res == nil {
		return fmt.Errorf("%w: got untyped nil instead of a *pgconn.Result", ErrInvalidResult)
	}

	if res.Err != nil {
		return errors.Join(
			fmt.Errorf("%w: the result carries a driver error", ErrInvalidResult),
			res.Err,
		)
	}

	for rowNo, row := range res.Rows {
		if len(row) != len(res.FieldDescriptions) {
			return fmt.Errorf("%w: row %d has %d values for %d fields",
				ErrInvalidResult, rowNo, len(row), len(res.FieldDescriptions))
		}
	}

	h.res = res

	// Guaranteed release if the owner never calls Free and the handle
	// becomes unreachable. Cleared again on explicit Free.
	runtime.SetFinalizer(h, (*Handle).Free)

	if h.logger != nil {
		h.logger.Debug(logMsgHandleCreated,
			logAttrFieldCount, len(res.FieldDescriptions),
			logAttrRowCount, len(res.Rows),
			logAttrCommandTag, res.CommandTag.String())
	}

	return nil
}

// Free releases the underlying native result. It is idempotent: the first
// call transitions the handle to the freed state and drops the resource,
// any further call does nothing. It returns the handle itself to support
// chained scoped-acquisition patterns.
func (h *Handle) Free() *Handle {
	if h.freed {
		return h
	}

	h.freed = true
	h.res = nil
	runtime.SetFinalizer(h, nil)

	if h.logger != nil {
		h.logger.Debug(logMsgHandleFreed)
	}

	return h
}

// IsAlive reports whether the handle still owns its native result.
func (h *Handle) IsAlive() bool {
	return !h.freed
}

// FieldCount returns the number of columns in the result. It is defined
// even for zero-row results, since column metadata is independent of row
// count. Fails with ErrResultFreed once the handle has been freed.
func (h *Handle) FieldCount() (int, error) {
	if h.freed {
		return 0, ErrResultFreed
	}

	return len(h.res.FieldDescriptions), nil
}

// RowCount returns the number of rows in the result. For a result produced
// by a non-row-returning statement it returns zero; callers needing
// mutation counts must use AffectedRows instead.
func (h *Handle) RowCount() (int, error) {
	if h.freed {
		return 0, ErrResultFreed
	}

	return len(h.res.Rows), nil
}

// AffectedRows returns the number of rows affected by a mutating
// statement, independent of RowCount.
func (h *Handle) AffectedRows() (int64, error) {
	if h.freed {
		return 0, ErrResultFreed
	}

	return h.res.CommandTag.RowsAffected(), nil
}

// FieldNames returns the ordered sequence of column names. Its length
// equals FieldCount.
func (h *Handle) FieldNames() ([]string, error) {
	fieldCount, countErr := h.FieldCount()
	if countErr != nil {
		return nil, countErr
	}

	names := make([]string, 0, fieldCount)

	for fieldNo := 0; fieldNo < fieldCount; fieldNo++ {
		name, nameErr := h.FieldName(fieldNo)
		if nameErr != nil {
			return nil, nameErr
		}

		names = append(names, name)
	}

	return names, nil
}

// FieldName returns the name of the column at the given zero-based
// position. Fails with ErrFieldOutOfRange if the position does not name a
// column of this result.
func (h *Handle) FieldName(fieldNo int) (string, error) {
	if h.freed {
		return "", ErrResultFreed
	}

	if fieldNo < 0 || fieldNo >= len(h.res.FieldDescriptions) {
		return "", fmt.Errorf("%w: %d (result has %d fields)",
			ErrFieldOutOfRange, fieldNo, len(h.res.FieldDescriptions))
	}

	return h.res.FieldDescriptions[fieldNo].Name, nil
}

// fieldNumber resolves a column name to its zero-based position.
// Matching follows quoted-identifier semantics: the name must match the
// wire field name exactly, no case folding is applied. Fails with
// ErrUnknownField, enumerating the available column names.
func (h *Handle) fieldNumber(name string) (int, error) {
	if h.freed {
		return 0, ErrResultFreed
	}

	for fieldNo, field := range h.res.FieldDescriptions {
		if field.Name == name {
			return fieldNo, nil
		}
	}

	available := make([]string, 0, len(h.res.FieldDescriptions))
	for _, field := range h.res.FieldDescriptions {
		available = append(available, field.Name)
	}

	return 0, fmt.Errorf("%w: %q (available fields: %s)",
		ErrUnknownField, name, strings.Join(available, ", "))
}

// HasField reports whether a column with the given name exists. It is the
// non-failing probe counterpart to field name resolution and returns
// false on a freed handle.
func (h *Handle) HasField(name string) bool {
	_, err := h.fieldNumber(name)

	return err == nil
}

// FieldType returns the declared type name of the named column. The
// second return value is false when the underlying driver reports the
// column's type as unresolvable.
func (h *Handle) FieldType(name string) (string, bool, error) {
	fieldNo, fieldErr := h.fieldNumber(name)
	if fieldErr != nil {
		return "", false, fieldErr
	}

	oid := h.res.FieldDescriptions[fieldNo].DataTypeOID
	if oid == unknownOID {
		return "", false, nil
	}

	dataType, known := h.typeMap.TypeForOID(oid)
	if !known {
		return "", false, nil
	}

	return dataType.Name, true, nil
}

// TypeOID returns the named column's type identifier from the Postgres
// type catalog. Fails with ErrTypeOIDLookupFailed when the protocol layer
// could not determine the type of an existing column, which is distinct
// from the column not existing at all.
func (h *Handle) TypeOID(name string) (TypeOIDUint32, error) {
	fieldNo, fieldErr := h.fieldNumber(name)
	if fieldErr != nil {
		return unknownOID, fieldErr
	}

	oid := h.res.FieldDescriptions[fieldNo].DataTypeOID
	if oid == unknownOID {
		return unknownOID, fmt.Errorf("%w: the driver reported no type for field %q",
			ErrTypeOIDLookupFailed, name)
	}

	return oid, nil
}

// Row returns the row at the given zero-based index as a mapping from
// column name to column value as text. SQL NULL renders as the empty
// string; use RawValue when NULLs must stay distinguishable. No value
// decoding is performed, row ordering matches the order the query
// returned the rows in. Fails with ErrRowOutOfBounds if the index is not
// a valid row position, which includes every index once the handle has
// been freed.
func (h *Handle) Row(index int) (map[string]string, error) {
	if err := h.ensureRowInBounds(index); err != nil {
		return nil, err
	}

	names, namesErr := h.FieldNames()
	if namesErr != nil {
		return nil, namesErr
	}

	row := make(map[string]string, len(names))
	for fieldNo, name := range names {
		row[name] = string(h.res.Rows[index][fieldNo])
	}

	return row, nil
}

// Column returns every row's value for the named column as an ordered
// sequence, preserving row order. SQL NULL renders as the empty string.
func (h *Handle) Column(name string) ([]string, error) {
	fieldNo, fieldErr := h.fieldNumber(name)
	if fieldErr != nil {
		return nil, fieldErr
	}

	values := make([]string, 0, len(h.res.Rows))
	for _, row := range h.res.Rows {
		values = append(values, string(row[fieldNo]))
	}

	return values, nil
}

// RawValue returns the raw text bytes of one value, preserving NULL as a
// nil slice. The returned slice aliases the handle's backing storage and
// must not be retained past Free.
func (h *Handle) RawValue(rowIndex int, fieldNo int) ([]byte, error) {
	if err := h.ensureRowInBounds(rowIndex); err != nil {
		return nil, err
	}

	if fieldNo < 0 || fieldNo >= len(h.res.FieldDescriptions) {
		return nil, fmt.Errorf("%w: %d (result has %d fields)",
			ErrFieldOutOfRange, fieldNo, len(h.res.FieldDescriptions))
	}

	return h.res.Rows[rowIndex][fieldNo], nil
}

// MarshalJSON serializes the result's rows as a JSON array of objects,
// with SQL NULL rendered as JSON null. Intended for export and debugging,
// not as a replacement for row hydration.
func (h *Handle) MarshalJSON() ([]byte, error) {
	if h.freed {
		return nil, ErrResultFreed
	}

	names, namesErr := h.FieldNames()
	if namesErr != nil {
		return nil, namesErr
	}

	rows := make([]map[string]*string, 0, len(h.res.Rows))

	for _, rawRow := range h.res.Rows {
		row := make(map[string]*string, len(names))

		for fieldNo, name := range names {
			if rawRow[fieldNo] == nil {
				row[name] = nil
				continue
			}

			value := string(rawRow[fieldNo])
			row[name] = &value
		}

		rows = append(rows, row)
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(rows)
}

// ensureRowInBounds verifies that the index names a row of this result.
// A freed handle has no valid row positions at all.
func (h *Handle) ensureRowInBounds(index int) error {
	if h.freed {
		return fmt.Errorf("%w: %d (%s)", ErrRowOutOfBounds, index, ErrResultFreed.Error())
	}

	if index < 0 || index >= len(h.res.Rows) {
		return fmt.Errorf("%w: %d (result has %d rows)", ErrRowOutOfBounds, index, len(h.res.Rows))
	}

	return nil
}
