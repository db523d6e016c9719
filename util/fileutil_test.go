package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := PathExists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = PathExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateFileBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "presized.ibd")

	require.NoError(t, CreateFileBySize(path, 1<<20))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20), info.Size())
}
