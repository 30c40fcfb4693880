package sfid

import (
	"strconv"
	"strings"
)

// Segment boundaries within the 15-character form.
const (
	prefixEnd   = 3
	instanceEnd = 6
	reservedEnd = 7

	// DefaultReserved fills the reserved slot of ids that were not parsed.
	DefaultReserved = "0"
)

// ID is a decomposed Salesforce record identifier. The zero value is not a
// valid id; build one with Parse, ParseStrict or New. An ID is immutable.
type ID struct {
	prefix       string
	instance     string
	reserved     string
	recordNumber uint64
	// suffix is the checksum captured from an 18-char input, if any. It is
	// informational only; String always recomputes the checksum.
	suffix string
}

// Parse decodes a 15 or 18-character id. Surrounding whitespace is ignored.
// The suffix of an 18-character id is kept but not checked.
func Parse(s string) (ID, error) {
	return parse(s, false)
}

// ParseStrict is Parse that also rejects an 18-character id whose suffix
// differs from the recomputed checksum, with ErrChecksumMismatch.
func ParseStrict(s string) (ID, error) {
	return parse(s, true)
}

// ParseWith selects between Parse and ParseStrict.
func ParseWith(s string, strict bool) (ID, error) {
	return parse(s, strict)
}

func parse(s string, strict bool) (ID, error) {
	s = strings.TrimSpace(s)
	if len(s) != Len15 && len(s) != Len18 {
		return ID{}, fieldErr("id", s, ErrInvalidLength,
			"must be %d or %d characters, got %d", Len15, Len18, len(s))
	}

	for i := 0; i < reservedEnd; i++ {
		if !isBase62(s[i]) {
			return ID{}, fieldErr("id", s, ErrInvalidCharacter,
				"%q at position %d is not alphanumeric", s[i], i)
		}
	}

	n, err := decodeAt(s, s[reservedEnd:Len15], reservedEnd)
	if err != nil {
		return ID{}, err
	}

	id := ID{
		prefix:       s[:prefixEnd],
		instance:     s[prefixEnd:instanceEnd],
		reserved:     s[instanceEnd:reservedEnd],
		recordNumber: n,
	}

	if len(s) == Len18 {
		suffix := s[Len15:]
		for i := 0; i < len(suffix); i++ {
			if !isBase62(suffix[i]) {
				return ID{}, fieldErr("checksum", s, ErrInvalidCharacter,
					"%q at position %d is not alphanumeric", suffix[i], Len15+i)
			}
		}
		id.suffix = suffix

		if strict {
			want, _ := Checksum15(s[:Len15])
			if suffix != want {
				return ID{}, fieldErr("checksum", s, ErrChecksumMismatch,
					"got %s, expected %s", suffix, want)
			}
		}
	}

	return id, nil
}

// New builds an id from its parts. An empty reserved defaults to "0".
func New(prefix, instance, reserved string, recordNumber uint64) (ID, error) {
	if reserved == "" {
		reserved = DefaultReserved
	}
	parts := []struct {
		field, value string
		size         int
	}{
		{"object_prefix", prefix, prefixEnd},
		{"instance", instance, instanceEnd - prefixEnd},
		{"reserved", reserved, reservedEnd - instanceEnd},
	}
	for _, p := range parts {
		if len(p.value) != p.size {
			return ID{}, fieldErr(p.field, p.value, ErrInvalidLength,
				"must be %d characters, got %d", p.size, len(p.value))
		}
		for i := 0; i < len(p.value); i++ {
			if !isBase62(p.value[i]) {
				return ID{}, fieldErr(p.field, p.value, ErrInvalidCharacter,
					"%q at position %d is not alphanumeric", p.value[i], i)
			}
		}
	}
	if recordNumber > MaxRecordNumber {
		return ID{}, rangeErr(recordNumber)
	}
	return ID{
		prefix:       prefix,
		instance:     instance,
		reserved:     reserved,
		recordNumber: recordNumber,
	}, nil
}

// WithRecordNumber returns a copy of id carrying n as its record number.
// The parsed suffix is dropped because it no longer describes the id.
func (id ID) WithRecordNumber(n uint64) (ID, error) {
	if id.IsZero() {
		return ID{}, fieldErr("id", "", ErrInvalidLength, "zero id has no object prefix")
	}
	if n > MaxRecordNumber {
		return ID{}, rangeErr(n)
	}
	return ID{
		prefix:       id.prefix,
		instance:     id.instance,
		reserved:     id.reserved,
		recordNumber: n,
	}, nil
}

// IsZero reports whether id is the zero value rather than a parsed or built id.
func (id ID) IsZero() bool { return id.prefix == "" }

// ObjectPrefix returns the 3-character object type tag.
func (id ID) ObjectPrefix() string { return id.prefix }

// Instance returns the 3-character instance segment.
func (id ID) Instance() string { return id.instance }

// Reserved returns the reserved character.
func (id ID) Reserved() string { return id.reserved }

// RecordNumber returns the decoded record number.
func (id ID) RecordNumber() uint64 { return id.recordNumber }

// ParsedChecksum returns the suffix supplied with an 18-character input, or
// "" when the id did not come from one.
func (id ID) ParsedChecksum() string { return id.suffix }

// Template returns the first 7 characters shared by every id enumerated
// from this one.
func (id ID) Template() string {
	return id.prefix + id.instance + id.reserved
}

// ID15 returns the case-sensitive 15-character form, or "" for the zero ID.
func (id ID) ID15() string {
	if id.IsZero() {
		return ""
	}
	// recordNumber is bounded by construction.
	digits, _ := Encode(id.recordNumber, RecordNumberWidth)
	return id.Template() + digits
}

// ID18 returns the 15-character form followed by a freshly computed checksum.
func (id ID) ID18() string {
	if id.IsZero() {
		return ""
	}
	s := id.ID15()
	sum, _ := Checksum15(s)
	return s + sum
}

// Format returns ID18 when as18 is set, ID15 otherwise.
func (id ID) Format(as18 bool) string {
	if as18 {
		return id.ID18()
	}
	return id.ID15()
}

// String implements fmt.Stringer with the 15-character form.
func (id ID) String() string {
	return id.ID15()
}

func rangeErr(n uint64) *FieldError {
	return fieldErr("record_number", strconv.FormatUint(n, 10), ErrRange,
		"must be between 0 and %d", MaxRecordNumber)
}

// CheckRecordNumber reports ErrRange when n is not a valid record number.
func CheckRecordNumber(n uint64) error {
	if n > MaxRecordNumber {
		return rangeErr(n)
	}
	return nil
}
