package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-db/lumen/storage/basic"
)

func TestNewCfgDefaults(t *testing.T) {
	cfg := NewCfg()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "lumen.db", cfg.SpaceFile)
	assert.Equal(t, FlushSynced, cfg.FlushMethod)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromIni(t *testing.T) {
	content := `
[storage]
data_dir        = /var/lib/lumen
space_file      = main.db
flush_method    = mapped
initial_size_mb = 64

[logs]
log_level = debug
log_path  = /var/log/lumen/lumen.log
`
	path := filepath.Join(t.TempDir(), "lumen.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := NewCfg()
	require.NoError(t, cfg.Load(path))

	assert.Equal(t, "/var/lib/lumen", cfg.DataDir)
	assert.Equal(t, "main.db", cfg.SpaceFile)
	assert.Equal(t, FlushMapped, cfg.FlushMethod)
	assert.Equal(t, 64, cfg.InitialSizeMB)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join("/var/lib/lumen", "main.db"), cfg.SpacePath())
}

func TestLoadRejectsUnknownFlushMethod(t *testing.T) {
	content := "[storage]\nflush_method = turbo\n"
	path := filepath.Join(t.TempDir(), "lumen.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := NewCfg()
	err := cfg.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, basic.ErrInvalidFlushMethod)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := NewCfg()
	assert.Error(t, cfg.Load(filepath.Join(t.TempDir(), "missing.ini")))
}
