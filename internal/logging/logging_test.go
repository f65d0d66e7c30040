package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"notionhabit/internal/logging"
)

func TestOptionsLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, logging.Options{}.Level())
	assert.Equal(t, zapcore.InfoLevel, logging.Options{Verbose: true}.Level())
	assert.Equal(t, zapcore.DebugLevel, logging.Options{Verbose: true, Debug: true}.Level())
}

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := logging.New(logging.Options{}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closeFn())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_FileKeepsInfo(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.log")

	logger, closeFn, err := logging.New(logging.Options{File: path}, &buf)
	require.NoError(t, err)

	logger.Info("3 habits updated")
	logger.Debug("noise")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3 habits updated")
	assert.NotContains(t, string(data), "noise")
	assert.NotContains(t, buf.String(), "3 habits updated")
}

func TestNew_BadFile(t *testing.T) {
	_, _, err := logging.New(logging.Options{File: filepath.Join(t.TempDir(), "missing", "run.log")}, &bytes.Buffer{})
	assert.Error(t, err)
}
