package appendlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	var lines []string
	require.NoError(t, ReadAll(path, func(line string) error {
		lines = append(lines, line)
		return nil
	}))
	return lines
}

func TestAppend_CreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	require.NoError(t, Append(path, "first"))
	require.NoError(t, Append(path, "second"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(raw))
	assert.Equal(t, []string{"first", "second"}, readLines(t, path))
}

func TestAppend_RejectsMultiline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	assert.ErrorIs(t, Append(path, "a\nb"), ErrMultiline)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAppend_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "log.txt")
	assert.Error(t, Append(path, "x"))
}

func TestReadAll_MissingFileIsEmpty(t *testing.T) {
	assert.Empty(t, readLines(t, filepath.Join(t.TempDir(), "nope.txt")))
}

func TestReadAll_StopsOnCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, Append(path, "a"))
	require.NoError(t, Append(path, "b"))

	stop := errors.New("stop")
	count := 0
	err := ReadAll(path, func(string) error {
		count++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, count)
}
