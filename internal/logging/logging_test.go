package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingDiscard(t *testing.T) {
	logger, cleanup, err := SetupLogging("", slog.LevelDebug)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, logger)
	logger.Info("dropped")
}

func TestSetupLoggingFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "debug.log")
	logger, cleanup, err := SetupLogging(name, slog.LevelInfo)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("rebuild", "objects", 3)
	cleanup()

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "objects=3")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetupLoggingBadPath(t *testing.T) {
	_, _, err := SetupLogging(filepath.Join(t.TempDir(), "nope", "x.log"), slog.LevelInfo)
	assert.Error(t, err)
}
