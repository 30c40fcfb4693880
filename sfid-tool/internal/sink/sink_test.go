package sink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamWritesLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)

	require.NoError(t, s.WriteLine("001Vc00000PHoN1"))
	require.NoError(t, s.WriteLine("001Vc00000PHoN2"))
	require.NoError(t, s.Close())

	assert.Equal(t, "001Vc00000PHoN1\n001Vc00000PHoN2\n", buf.String())
	assert.ErrorIs(t, s.WriteLine("late"), ErrClosed)
}

func TestFileConcurrentWritesDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	f, err := CreateFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	const writers, perWriter = 20, 2000
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				assert.NoError(t, f.WriteLine(fmt.Sprintf("w%02d-%06d", w, i)))
			}
		}(w)
	}
	wg.Wait()
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, writers*perWriter)

	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		require.Len(t, l, len("w00-000000"), "torn line %q", l)
		seen[l] = struct{}{}
	}
	assert.Len(t, seen, writers*perWriter)

	assert.ErrorIs(t, f.WriteLine("late"), ErrClosed)
}

func TestCreateFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\nstale\n"), 0o644))

	f, err := CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, f.WriteLine("fresh"))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(data))
}

func TestCreateFileFailsOnDirectory(t *testing.T) {
	_, err := CreateFile(t.TempDir())
	assert.Error(t, err)
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 30, 5, 0, time.UTC)
	a, err := NewRunID(now)
	require.NoError(t, err)
	b, err := NewRunID(now)
	require.NoError(t, err)

	nameA := DefaultFilename("sfidenum", now, a)
	nameB := DefaultFilename("sfidenum", now, b)

	assert.True(t, strings.HasPrefix(nameA, "sfidenum-20261014-093005-"), nameA)
	assert.True(t, strings.HasSuffix(nameA, ".txt"))
	assert.NotEqual(t, nameA, nameB)
	assert.True(t, strings.HasPrefix(DefaultFilename("", now, a), "sfidenum-"))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "custom.txt", ResolvePath("/data", "custom.txt", "x.txt"))
	assert.Equal(t, filepath.Join("/data", "x.txt"), ResolvePath("/data", "", "x.txt"))
	assert.Equal(t, "x.txt", ResolvePath("", "", "x.txt"))
}
