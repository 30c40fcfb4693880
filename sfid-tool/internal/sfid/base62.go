package sfid

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/jxskiss/base62"
)

const (
	// Base62Alphabet is the Salesforce record-number alphabet, in ordinal order.
	Base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// RecordNumberWidth is the number of base62 digits in a record number.
	RecordNumberWidth = 8

	// MaxRecordNumber is 62^8 - 1, the largest 8-digit base62 value.
	MaxRecordNumber uint64 = 218340105584895
)

var (
	encoding = base62.NewEncoding(Base62Alphabet)

	// maxUint64Digits is math.MaxUint64 in base62. ParseUint wraps on
	// overflow, so longer inputs are compared against it first.
	maxUint64Digits = string(encoding.FormatUint(math.MaxUint64))
)

// Encode renders n as exactly width base62 digits, zero-padded on the left.
// It fails with ErrRange when n >= 62^width, so width 0 only encodes 0, as "".
func Encode(n uint64, width int) (string, error) {
	if width < 0 {
		return "", fieldErr("width", strconv.Itoa(width), ErrRange, "width cannot be negative")
	}
	if n == 0 {
		return strings.Repeat("0", width), nil
	}

	digits := encoding.AppendUint(make([]byte, 0, width), n)
	if len(digits) > width {
		return "", fieldErr("record_number", strconv.FormatUint(n, 10), ErrRange,
			"%d does not fit in %d base62 digits", n, width)
	}
	return strings.Repeat("0", width-len(digits)) + string(digits), nil
}

// Decode parses s as a big-endian base62 number. Any length is accepted;
// values that overflow uint64 are reported as ErrRange.
func Decode(s string) (uint64, error) {
	return decodeAt(s, s, 0)
}

// decodeAt decodes s, a segment found at offset in input, reporting bad
// characters by their position in input.
func decodeAt(input, s string, offset int) (uint64, error) {
	n, err := encoding.ParseUint([]byte(s))
	if err != nil {
		var corrupt base62.CorruptInputError
		if !errors.As(err, &corrupt) {
			return 0, fieldErr("record_number", input, ErrInvalidCharacter, "%v", err)
		}
		i := int(corrupt)
		return 0, fieldErr("record_number", input, ErrInvalidCharacter,
			"%q at position %d is not base62", s[i], offset+i)
	}

	// Equal-length digit strings order the same way as their values because
	// the alphabet is in ASCII order.
	if sig := strings.TrimLeft(s, "0"); len(sig) > len(maxUint64Digits) ||
		(len(sig) == len(maxUint64Digits) && sig > maxUint64Digits) {
		return 0, fieldErr("record_number", input, ErrRange, "value overflows 64 bits")
	}
	return n, nil
}

func isBase62(c byte) bool {
	return strings.IndexByte(Base62Alphabet, c) >= 0
}
