package sfid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		n     uint64
		width int
		want  string
	}{
		{0, 8, "00000000"},
		{61, 1, "z"},
		{62, 2, "10"},
		{1234567890, 8, "001LY7VK"},
		{MaxRecordNumber - 1, 8, "zzzzzzzy"},
		{MaxRecordNumber, 8, "zzzzzzzz"},
	}
	for _, tt := range tests {
		got, err := Encode(tt.n, tt.width)
		require.NoError(t, err, "n=%d", tt.n)
		assert.Equal(t, tt.want, got)
	}
}

func TestEncodeRangeError(t *testing.T) {
	_, err := Encode(MaxRecordNumber+1, 8)
	assert.ErrorIs(t, err, ErrRange)

	_, err = Encode(62, 1)
	assert.ErrorIs(t, err, ErrRange)

	_, err = Encode(1, 0)
	assert.ErrorIs(t, err, ErrRange)

	_, err = Encode(0, -1)
	assert.ErrorIs(t, err, ErrRange)
}

func TestEncodeZeroWidth(t *testing.T) {
	got, err := Encode(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestDecode(t *testing.T) {
	n, err := Decode("000PHoN1")
	require.NoError(t, err)
	assert.Equal(t, uint64(373653603), n)

	n, err = Decode("zzzzzzzz")
	require.NoError(t, err)
	assert.Equal(t, MaxRecordNumber, n)

	n, err = Decode("0000xyz1")
	require.NoError(t, err)
	assert.Equal(t, uint64(14295775), n)

	// Any length is accepted.
	n, err = Decode("")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = Decode("10")
	require.NoError(t, err)
	assert.Equal(t, uint64(62), n)
}

func TestDecodeInvalidCharacter(t *testing.T) {
	for _, s := range []string{"0000-000", "abc def", "é", "00_1"} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrInvalidCharacter, "input %q", s)
	}
}

func TestDecodeReportsPosition(t *testing.T) {
	_, err := Decode("00_1")
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "record_number", fe.Field)
	assert.Contains(t, fe.Detail, "position 2")
}

func TestDecodeOverflow(t *testing.T) {
	_, err := Decode("zzzzzzzzzzzzzzzzzzzz")
	assert.ErrorIs(t, err, ErrRange)

	// 2^64 - 1 is the largest accepted value; one more wraps in uint64.
	top, err := Decode("LygHa16AHYF")
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), top)

	_, err = Decode("LygHa16AHYG")
	assert.ErrorIs(t, err, ErrRange)

	n, err := Decode("0000000000000000010")
	require.NoError(t, err)
	assert.Equal(t, uint64(62), n)
}

func TestBase62RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(62))

	for i := 0; i < 5000; i++ {
		n := uint64(r.Int63n(int64(MaxRecordNumber) + 1))
		s, err := Encode(n, RecordNumberWidth)
		require.NoError(t, err)
		require.Len(t, s, RecordNumberWidth)

		back, err := Decode(s)
		require.NoError(t, err)
		require.Equal(t, n, back)
	}

	for i := 0; i < 5000; i++ {
		b := make([]byte, RecordNumberWidth)
		for j := range b {
			b[j] = Base62Alphabet[r.Intn(len(Base62Alphabet))]
		}
		s := string(b)

		n, err := Decode(s)
		require.NoError(t, err)
		again, err := Encode(n, RecordNumberWidth)
		require.NoError(t, err)
		require.Equal(t, s, again)
	}
}

func TestAlphabetOrdinals(t *testing.T) {
	for i, c := range []byte(Base62Alphabet) {
		n, err := Decode(string(c))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), n)
	}
	assert.Equal(t, byte('0'), Base62Alphabet[0])
	assert.Equal(t, byte('A'), Base62Alphabet[10])
	assert.Equal(t, byte('a'), Base62Alphabet[36])
}
