package sfid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse15(t *testing.T) {
	id, err := Parse("001Vc00000PHoN1")
	require.NoError(t, err)

	assert.Equal(t, "001", id.ObjectPrefix())
	assert.Equal(t, "Vc0", id.Instance())
	assert.Equal(t, "0", id.Reserved())
	assert.Equal(t, uint64(373653603), id.RecordNumber())
	assert.Empty(t, id.ParsedChecksum())
	assert.Equal(t, "001Vc00", id.Template())
	assert.Equal(t, "001Vc00000PHoN1", id.ID15())
	assert.Equal(t, "001Vc00000PHoN1IAL", id.ID18())
	assert.Equal(t, "001Vc00000PHoN1", id.String())
}

func TestParse18IsPermissive(t *testing.T) {
	id, err := Parse("001Vc00000PHoN1ZZZ")
	require.NoError(t, err)
	assert.Equal(t, "ZZZ", id.ParsedChecksum())
	// Formatting ignores the captured suffix.
	assert.Equal(t, "001Vc00000PHoN1IAL", id.Format(true))
	assert.Equal(t, "001Vc00000PHoN1", id.Format(false))
}

func TestParseTrimsWhitespace(t *testing.T) {
	id, err := Parse("  001Vc00000PHoN1IAL\n")
	require.NoError(t, err)
	assert.Equal(t, uint64(373653603), id.RecordNumber())
}

func TestParseStrict(t *testing.T) {
	_, err := ParseStrict("001Vc00000PHoN1IAL")
	require.NoError(t, err)

	_, err = ParseStrict("001Vc00000PHoN1IAX")
	require.ErrorIs(t, err, ErrChecksumMismatch)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "checksum", fe.Field)

	// A 15-char id has nothing to check.
	_, err = ParseStrict("001Vc00000PHoN1")
	require.NoError(t, err)

	_, err = ParseWith("001Vc00000PHoN1IAX", false)
	require.NoError(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		err   error
		field string
	}{
		{"empty", "", ErrInvalidLength, "id"},
		{"short", "001Vc00000PHoN", ErrInvalidLength, "id"},
		{"sixteen", "001Vc00000PHoN1I", ErrInvalidLength, "id"},
		{"long", "001Vc00000PHoN1IALX", ErrInvalidLength, "id"},
		{"bad prefix char", "00-Vc00000PHoN1", ErrInvalidCharacter, "id"},
		{"bad record char", "001Vc00000PH_N1", ErrInvalidCharacter, "record_number"},
		{"bad checksum char", "001Vc00000PHoN1I!L", ErrInvalidCharacter, "checksum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.ErrorIs(t, err, tt.err)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestWithRecordNumber(t *testing.T) {
	id, err := Parse("001Vc00000PHoN1IAL")
	require.NoError(t, err)

	next, err := id.WithRecordNumber(366897425)
	require.NoError(t, err)
	assert.Equal(t, "001Vc00000OpSmP", next.ID15())
	assert.Equal(t, "001Vc00000OpSmPIAV", next.ID18())
	assert.Empty(t, next.ParsedChecksum())

	// The receiver is unchanged.
	assert.Equal(t, uint64(373653603), id.RecordNumber())
	assert.Equal(t, "IAL", id.ParsedChecksum())

	top, err := id.WithRecordNumber(MaxRecordNumber)
	require.NoError(t, err)
	assert.Equal(t, "001Vc00zzzzzzzz", top.ID15())

	_, err = id.WithRecordNumber(MaxRecordNumber + 1)
	assert.ErrorIs(t, err, ErrRange)
}

func TestZeroID(t *testing.T) {
	var id ID
	assert.True(t, id.IsZero())
	assert.Empty(t, id.ID15())
	assert.Empty(t, id.ID18())

	_, err := id.WithRecordNumber(1)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "id", fe.Field)

	parsed, err := Parse("001Vc00000PHoN1")
	require.NoError(t, err)
	assert.False(t, parsed.IsZero())
}

func TestParseReportsInputPosition(t *testing.T) {
	_, err := Parse("001Vc00000PH_N1")
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "record_number", fe.Field)
	assert.Equal(t, "001Vc00000PH_N1", fe.Value)
	assert.Contains(t, fe.Detail, "position 12")

	_, err = Parse("001V-00000PHoN1")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "id", fe.Field)
	assert.Contains(t, fe.Detail, "position 4")
}

func TestNew(t *testing.T) {
	id, err := New("005", "xx0", "", 42)
	require.NoError(t, err)
	assert.Equal(t, "0", id.Reserved())
	assert.Equal(t, "005xx000000000g", id.ID15())

	_, err = New("05", "xx0", "0", 1)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = New("005", "x-0", "0", 1)
	assert.ErrorIs(t, err, ErrInvalidCharacter)

	_, err = New("005", "xx0", "0", MaxRecordNumber+1)
	assert.ErrorIs(t, err, ErrRange)
}

func TestCheckRecordNumber(t *testing.T) {
	assert.NoError(t, CheckRecordNumber(0))
	assert.NoError(t, CheckRecordNumber(MaxRecordNumber))
	assert.ErrorIs(t, CheckRecordNumber(MaxRecordNumber+1), ErrRange)
}

func TestObjectType(t *testing.T) {
	id, err := Parse("001Vc00000PHoN1")
	require.NoError(t, err)
	assert.Equal(t, "Account", id.ObjectType())

	id, err = Parse("a0Bxx0000000001")
	require.NoError(t, err)
	assert.Equal(t, UnknownObjectType, id.ObjectType())

	name, ok := ObjectType("500")
	assert.True(t, ok)
	assert.Equal(t, "Case", name)
}

func TestAnalyze(t *testing.T) {
	a, err := Analyze("001Vc00000PHoN1IAX")
	require.NoError(t, err)

	assert.True(t, a.Is18)
	assert.Equal(t, "001Vc00000PHoN1", a.ID15)
	assert.Equal(t, "001Vc00000PHoN1IAX", a.ID18)
	assert.Equal(t, "Account", a.ObjectType)
	assert.Equal(t, "000PHoN1", a.RecordNumberBase62)
	assert.Equal(t, uint64(373653603), a.RecordNumber)
	assert.Equal(t, "IAX", a.Checksum)
	assert.Equal(t, "IAL", a.ExpectedChecksum)
	assert.False(t, a.ChecksumValid)

	a, err = Analyze("001Vc00000PHoN1")
	require.NoError(t, err)
	assert.False(t, a.Is18)
	assert.True(t, a.ChecksumValid)
	assert.Equal(t, "001Vc00000PHoN1IAL", a.ID18)

	_, err = Analyze("bogus")
	assert.ErrorIs(t, err, ErrInvalidLength)
}
