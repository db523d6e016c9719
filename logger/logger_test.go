package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "lumen.log")
	require.NoError(t, InitLogger(LogConfig{LogPath: logPath, LogLevel: "info"}))
	defer func() {
		require.NoError(t, InitLogger(LogConfig{LogLevel: "info"}))
	}()

	Infof("space %s opened", "lumen.db")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "space lumen.db opened")
	assert.Contains(t, string(data), "[INFO]")
}

func TestInitLoggerStdoutOnlyWhenPathEmpty(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{LogLevel: "debug"}))
	defer func() {
		require.NoError(t, InitLogger(LogConfig{LogLevel: "info"}))
	}()

	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	assert.Equal(t, os.Stdout, Logger.Out)
}
