package pgresult

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgtoolbox/pgresult/testutil/fixtures"
)

func Test_New_WithValidResult(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())

	require.NoError(t, err)
	defer handle.Free()

	assert.True(t, handle.IsAlive())

	fieldCount, err := handle.FieldCount()
	require.NoError(t, err)
	assert.Equal(t, 2, fieldCount)

	rowCount, err := handle.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 2, rowCount)
}

func Test_New_ErrorCases(t *testing.T) {
	tests := []struct {
		name        string
		result      *pgconn.Result
		expectedErr error
	}{
		{
			name:        "nil result",
			result:      nil,
			expectedErr: ErrInvalidResult,
		},
		{
			name:        "result carrying a driver error",
			result:      fixtures.FailedResult("relation does not exist"),
			expectedErr: ErrInvalidResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, err := New(tt.result)

			require.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, handle)
		})
	}
}

func Test_New_WithRaggedRows_Fails(t *testing.T) {
	result := &pgconn.Result{
		FieldDescriptions: []pgconn.FieldDescription{
			{Name: "id", DataTypeOID: pgtype.Int4OID, Format: pgtype.TextFormatCode},
			{Name: "name", DataTypeOID: pgtype.TextOID, Format: pgtype.TextFormatCode},
		},
		Rows: [][][]byte{
			{[]byte("1"), []byte("a")},
			{[]byte("2")}, // one value short
		},
		CommandTag: pgconn.NewCommandTag("SELECT 2"),
	}

	handle, err := New(result)

	require.ErrorIs(t, err, ErrInvalidResult)
	assert.ErrorContains(t, err, "row 1")
	assert.Nil(t, handle)
}

func Test_New_WithFailedResult_ReportsDriverError(t *testing.T) {
	_, err := New(fixtures.FailedResult("relation does not exist"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "relation does not exist")
}

func Test_FieldCount_IsStableAcrossRepeatedCalls(t *testing.T) {
	handle, err := New(fixtures.UsersResult(3))
	require.NoError(t, err)
	defer handle.Free()

	first, err := handle.FieldCount()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, countErr := handle.FieldCount()
		require.NoError(t, countErr)
		assert.Equal(t, first, again)
	}
}

func Test_FieldCount_OnZeroRowResult(t *testing.T) {
	handle, err := New(fixtures.EmptyResult("id", "name", "email"))
	require.NoError(t, err)
	defer handle.Free()

	fieldCount, err := handle.FieldCount()
	require.NoError(t, err)
	assert.Equal(t, 3, fieldCount)

	rowCount, err := handle.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 0, rowCount)
}

func Test_RowCount_OnMutationResult_IsZero(t *testing.T) {
	handle, err := New(fixtures.MutationResult(3))
	require.NoError(t, err)
	defer handle.Free()

	rowCount, err := handle.RowCount()
	require.NoError(t, err)
	assert.Equal(t, 0, rowCount)

	affected, err := handle.AffectedRows()
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
}

func Test_FieldNames_MatchesFieldCountAndOrder(t *testing.T) {
	handle, err := New(fixtures.UsersResult(1))
	require.NoError(t, err)
	defer handle.Free()

	names, err := handle.FieldNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "email"}, names)
}

func Test_FieldName_ErrorCases(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	tests := []struct {
		name    string
		fieldNo int
	}{
		{name: "negative position", fieldNo: -1},
		{name: "position past last field", fieldNo: 2},
		{name: "position far out of range", fieldNo: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, nameErr := handle.FieldName(tt.fieldNo)
			assert.ErrorIs(t, nameErr, ErrFieldOutOfRange)
		})
	}
}

func Test_FieldNumber_And_FieldName_AreInverses(t *testing.T) {
	handle, err := New(fixtures.UsersResult(2))
	require.NoError(t, err)
	defer handle.Free()

	fieldCount, err := handle.FieldCount()
	require.NoError(t, err)

	for fieldNo := 0; fieldNo < fieldCount; fieldNo++ {
		name, nameErr := handle.FieldName(fieldNo)
		require.NoError(t, nameErr)

		resolved, resolveErr := handle.fieldNumber(name)
		require.NoError(t, resolveErr)
		assert.Equal(t, fieldNo, resolved)
	}
}

func Test_FieldNumber_UnknownName_EnumeratesAvailableFields(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	_, resolveErr := handle.fieldNumber("missing")

	require.ErrorIs(t, resolveErr, ErrUnknownField)
	assert.ErrorContains(t, resolveErr, `"missing"`)
	assert.ErrorContains(t, resolveErr, "id")
	assert.ErrorContains(t, resolveErr, "name")
}

func Test_FieldNumber_MatchingIsCaseSensitive(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	_, resolveErr := handle.fieldNumber("Name")
	assert.ErrorIs(t, resolveErr, ErrUnknownField)

	resolved, resolveErr := handle.fieldNumber("name")
	require.NoError(t, resolveErr)
	assert.Equal(t, 1, resolved)
}

func Test_HasField_AgreesWithFieldNumber(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	tests := []struct {
		name     string
		field    string
		expected bool
	}{
		{name: "first field", field: "id", expected: true},
		{name: "second field", field: "name", expected: true},
		{name: "unknown field", field: "missing", expected: false},
		{name: "case folded variant", field: "ID", expected: false},
		{name: "empty name", field: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handle.HasField(tt.field))

			_, resolveErr := handle.fieldNumber(tt.field)
			assert.Equal(t, tt.expected, resolveErr == nil)
		})
	}
}

func Test_Row_ReturnsNameToValueMapping(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	row, err := handle.Row(0)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "1", "name": "a"}, row)

	row, err = handle.Row(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "2", "name": "b"}, row)
}

func Test_Row_KeySetEqualsFieldNames_ForAllRows(t *testing.T) {
	handle, err := New(fixtures.UsersResult(4))
	require.NoError(t, err)
	defer handle.Free()

	names, err := handle.FieldNames()
	require.NoError(t, err)

	rowCount, err := handle.RowCount()
	require.NoError(t, err)

	for index := 0; index < rowCount; index++ {
		row, rowErr := handle.Row(index)
		require.NoError(t, rowErr)
		require.Len(t, row, len(names))

		for _, name := range names {
			assert.Contains(t, row, name)
		}
	}
}

func Test_Row_ErrorCases(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	tests := []struct {
		name  string
		index int
	}{
		{name: "negative index", index: -1},
		{name: "index equal to row count", index: 2},
		{name: "index far out of range", index: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rowErr := handle.Row(tt.index)
			assert.ErrorIs(t, rowErr, ErrRowOutOfBounds)
		})
	}
}

func Test_Row_NullRendersAsEmptyString(t *testing.T) {
	handle, err := New(fixtures.UsersResult(2))
	require.NoError(t, err)
	defer handle.Free()

	row, err := handle.Row(1) // odd rows carry a NULL email
	require.NoError(t, err)
	assert.Equal(t, "", row["email"])
}

func Test_Column_PreservesRowOrder(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	values, err := handle.Column("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values)

	values, err = handle.Column("id")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, values)
}

func Test_Column_UnknownName(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	_, columnErr := handle.Column("missing")
	assert.ErrorIs(t, columnErr, ErrUnknownField)
}

func Test_RawValue_PreservesNull(t *testing.T) {
	handle, err := New(fixtures.UsersResult(2))
	require.NoError(t, err)
	defer handle.Free()

	const emailFieldNo = 2

	value, err := handle.RawValue(0, emailFieldNo)
	require.NoError(t, err)
	assert.NotNil(t, value)

	value, err = handle.RawValue(1, emailFieldNo)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func Test_RawValue_ErrorCases(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	_, rawErr := handle.RawValue(5, 0)
	assert.ErrorIs(t, rawErr, ErrRowOutOfBounds)

	_, rawErr = handle.RawValue(0, 5)
	assert.ErrorIs(t, rawErr, ErrFieldOutOfRange)
}

func Test_FieldType_KnownColumnTypes(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	typeName, known, err := handle.FieldType("id")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "int4", typeName)

	typeName, known, err = handle.FieldType("name")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "text", typeName)
}

func Test_FieldType_UnresolvableType(t *testing.T) {
	handle, err := New(fixtures.UntypedColumnResult("payload"))
	require.NoError(t, err)
	defer handle.Free()

	typeName, known, err := handle.FieldType("payload")
	require.NoError(t, err)
	assert.False(t, known)
	assert.Equal(t, "", typeName)
}

func Test_FieldType_UnknownField(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	_, _, typeErr := handle.FieldType("missing")
	assert.ErrorIs(t, typeErr, ErrUnknownField)
}

func Test_TypeOID_KnownColumn(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	oid, err := handle.TypeOID("id")
	require.NoError(t, err)
	assert.Equal(t, TypeOIDUint32(pgtype.Int4OID), oid)
}

func Test_TypeOID_LookupFailure_IsDistinctFromUnknownField(t *testing.T) {
	handle, err := New(fixtures.UntypedColumnResult("payload"))
	require.NoError(t, err)
	defer handle.Free()

	_, oidErr := handle.TypeOID("payload")
	require.ErrorIs(t, oidErr, ErrTypeOIDLookupFailed)
	assert.NotErrorIs(t, oidErr, ErrUnknownField)

	_, oidErr = handle.TypeOID("missing")
	require.ErrorIs(t, oidErr, ErrUnknownField)
	assert.NotErrorIs(t, oidErr, ErrTypeOIDLookupFailed)
}

func Test_MarshalJSON_RendersRowsAsObjects(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult())
	require.NoError(t, err)
	defer handle.Free()

	encoded, err := handle.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","name":"a"},{"id":"2","name":"b"}]`, string(encoded))
}

func Test_MarshalJSON_RendersNullForNullValues(t *testing.T) {
	result := &pgconn.Result{
		FieldDescriptions: []pgconn.FieldDescription{
			{Name: "id", DataTypeOID: pgtype.Int4OID, Format: pgtype.TextFormatCode},
			{Name: "note", DataTypeOID: pgtype.TextOID, Format: pgtype.TextFormatCode},
		},
		Rows: [][][]byte{
			{[]byte("1"), nil},
		},
		CommandTag: pgconn.NewCommandTag("SELECT 1"),
	}

	handle, err := New(result)
	require.NoError(t, err)
	defer handle.Free()

	encoded, err := handle.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","note":null}]`, string(encoded))
}

func Test_Options_WithTypeMap(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult(), WithTypeMap(pgtype.NewMap()))
	require.NoError(t, err)
	defer handle.Free()

	typeName, known, err := handle.FieldType("id")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "int4", typeName)
}

func Test_Options_WithNilTypeMap_Fails(t *testing.T) {
	handle, err := New(fixtures.TwoByTwoResult(), WithTypeMap(nil))

	require.Error(t, err)
	assert.Nil(t, handle)
}
