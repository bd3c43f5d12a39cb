package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_FileOutput tests that log lines reach the configured file
func TestNew_FileOutput(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "roadscout.log")

	log, err := New(Config{Level: "debug", File: logFile})
	require.NoError(t, err)
	defer log.Close()

	log.Info().Str("component", "test").Msg("file output works")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file output works")
	assert.Contains(t, string(data), `"component":"test"`)
}

// TestNew_InvalidLevelFallsBackToInfo tests that a bad level does not fail construction
func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "roadscout.log")

	log, err := New(Config{Level: "nonsense", File: logFile})
	require.NoError(t, err)
	defer log.Close()

	log.Debug().Msg("should be filtered")
	log.Info().Msg("should be kept")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be filtered")
	assert.Contains(t, string(data), "should be kept")
}

// TestClose_NoFile tests that Close is safe without a file writer
func TestClose_NoFile(t *testing.T) {
	log, err := New(Config{Level: "info", Console: true})
	require.NoError(t, err)
	assert.NoError(t, log.Close())
}
