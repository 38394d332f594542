// SPDX-License-Identifier: MIT
package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/rowtrace/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zapcore.ErrorLevel, logger.ParseLevel("ERROR"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, logger.FormatJSON, logger.ParseFormat("json"))
	assert.Equal(t, logger.FormatConsole, logger.ParseFormat("pretty"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("INFO", logger.FormatJSON, &buf).Named(logger.ComponentTimeline)
	l.Debug("hidden")
	l.Info("applied", zap.String("formula", "R1 ↔ R2"))
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"component":"timeline"`)
	assert.Contains(t, out, `"formula":"R1 ↔ R2"`)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("DEBUG", logger.FormatConsole, &buf)
	l.Debug("step", zap.Int("index", 3))
	assert.Contains(t, buf.String(), " | DEBUG | ")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, logger.OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, logger.OrNop(l))
}
