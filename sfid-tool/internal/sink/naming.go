package sink

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const timestampLayout = "20060102-150405"

// NewRunID returns a time-ordered identifier for one run.
func NewRunID(now time.Time) (ulid.ULID, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("failed to generate run id: %w", err)
	}
	return id, nil
}

// DefaultFilename names the output of a run that was given no file:
// <stem>-<YYYYmmdd-HHMMSS>-<run suffix>.txt. The suffix is the tail of the
// run id's entropy so two runs in the same second still differ.
func DefaultFilename(stem string, now time.Time, runID ulid.ULID) string {
	if stem == "" {
		stem = "sfidenum"
	}
	s := runID.String()
	return fmt.Sprintf("%s-%s-%s.txt", stem, now.Format(timestampLayout), strings.ToLower(s[len(s)-6:]))
}

// ResolvePath picks the output path for a run. An explicit outfile wins and
// is used as given; otherwise defaultName is placed under dir.
func ResolvePath(dir, outfile, defaultName string) string {
	if outfile != "" {
		return outfile
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filepath.Base(defaultName))
}
