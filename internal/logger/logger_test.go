package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log, cleanup, err := NewWriter(&buf, false, "")
	require.NoError(t, err)
	defer cleanup()
	log.Debug("hidden")
	log.Info("shown", zap.String("chain", "evm"))
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "evm")

	buf.Reset()
	verbose, cleanupVerbose, err := NewWriter(&buf, true, "")
	require.NoError(t, err)
	defer cleanupVerbose()
	verbose.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNewWriterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hexseed.log")
	var buf bytes.Buffer
	log, cleanup, err := NewWriter(&buf, false, path)
	require.NoError(t, err)
	log.Debug("to file only")
	cleanup()
	log.Debug("after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file only"`)
	assert.NotContains(t, string(data), "after close")
	assert.NotContains(t, buf.String(), "to file only")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
