package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	data, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), data)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestPanicOnError(t *testing.T) {
	require.Equal(t, 7, PanicOnError(7, nil))
	require.Panics(t, func() {
		PanicOnError(0, os.ErrNotExist)
	})
}
