package fileutils

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCloser records writes but fails to close
type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error {
	return errors.New("disk full")
}

func TestSaveLoadGob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, SaveGob(path, []float64{1, 2, 3}))

	var data []float64
	require.NoError(t, LoadGob(path, &data))
	assert.Equal(t, []float64{1, 2, 3}, data)

	assert.Error(t, LoadGob(filepath.Join(t.TempDir(), "missing.bin"), &data))
	assert.Error(t, SaveGob(filepath.Join(t.TempDir(), "no", "dir.bin"), data))
}

func TestSaveGobReportsCloseError(t *testing.T) {
	old := create
	defer func() { create = old }()

	w := &failingCloser{}
	create = func(string) (io.WriteCloser, error) { return w, nil }

	err := SaveGob("data.bin", []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotZero(t, w.Len())
}
