package sfid

import "strconv"

// ChecksumAlphabet maps a 5-bit chunk mask to its suffix character.
const ChecksumAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"

const (
	// Len15 is the length of the case-sensitive id form.
	Len15 = 15
	// Len18 is the length of the checksummed id form.
	Len18 = 18

	chunkLen = 5
)

// Checksum15 derives the 3-character suffix that turns a 15-character id into
// its 18-character form. Each 5-character chunk yields one suffix character:
// the character at chunk position i sets bit i when it is an ASCII uppercase
// letter.
func Checksum15(id15 string) (string, error) {
	if len(id15) != Len15 {
		return "", fieldErr("id", id15, ErrInvalidLength,
			"checksum requires exactly %d characters, got %s", Len15, strconv.Itoa(len(id15)))
	}

	var out [3]byte
	for chunk := 0; chunk < 3; chunk++ {
		var mask byte
		for i := 0; i < chunkLen; i++ {
			c := id15[chunk*chunkLen+i]
			if c >= 'A' && c <= 'Z' {
				mask |= 1 << i
			}
		}
		out[chunk] = ChecksumAlphabet[mask]
	}
	return string(out[:]), nil
}
