package sfid

// Analysis is a full breakdown of a single id.
type Analysis struct {
	Input              string `json:"input"`
	Is18               bool   `json:"is_18"`
	ID15               string `json:"id15"`
	ID18               string `json:"id18"`
	ObjectPrefix       string `json:"object_prefix"`
	ObjectType         string `json:"object_type"`
	Instance           string `json:"instance"`
	Reserved           string `json:"reserved"`
	RecordNumberBase62 string `json:"record_number_base62"`
	RecordNumber       uint64 `json:"record_number"`
	Checksum           string `json:"checksum"`
	ExpectedChecksum   string `json:"expected_checksum"`
	ChecksumValid      bool   `json:"checksum_valid"`
}

// Analyze parses s permissively and reports every component, including
// whether a supplied 18-character suffix matches the recomputed checksum.
func Analyze(s string) (*Analysis, error) {
	id, err := Parse(s)
	if err != nil {
		return nil, err
	}

	id15 := id.ID15()
	id18 := id.ID18()
	expected := id18[Len15:]

	a := &Analysis{
		Input:              s,
		Is18:               id.suffix != "",
		ID15:               id15,
		ID18:               id18,
		ObjectPrefix:       id.prefix,
		ObjectType:         id.ObjectType(),
		Instance:           id.instance,
		Reserved:           id.reserved,
		RecordNumberBase62: id15[reservedEnd:],
		RecordNumber:       id.recordNumber,
		Checksum:           expected,
		ExpectedChecksum:   expected,
		ChecksumValid:      true,
	}
	if a.Is18 {
		a.Checksum = id.suffix
		a.ChecksumValid = id.suffix == expected
		// Keep the caller's casing for the supplied 18-char form.
		a.ID18 = id15 + id.suffix
	}
	return a, nil
}
