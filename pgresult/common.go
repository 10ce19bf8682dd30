package pgresult

import (
	"errors"
)

var ErrInvalidResult = errors.New("not a valid postgres query result")
var ErrNilRowsSupplied = errors.New("nil rows supplied")
var ErrCollectingRowsFailed = errors.New("collecting rows from the driver failed")
var ErrUnknownField = errors.New("unknown field name")
var ErrFieldOutOfRange = errors.New("field position out of range")
var ErrRowOutOfBounds = errors.New("row index out of bounds")
var ErrResultFreed = errors.New("result handle already freed")
var ErrTypeOIDLookupFailed = errors.New("type oid lookup failed")

// TypeOIDUint32 is a type alias for uint32, representing a type identifier from the Postgres type catalog.
type TypeOIDUint32 = uint32
