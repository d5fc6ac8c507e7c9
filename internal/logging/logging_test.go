package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Level(true))
	assert.Equal(t, zapcore.InfoLevel, Level(false))
}

func TestNew_DebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("unassigned record", zap.String("category", "flavor"))
	require.NoError(t, logger.Sync())

	assert.Empty(t, buf.String())
}

func TestNew_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("unassigned record", zap.String("category", "flavor"), zap.Int("start_line", 7))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "unassigned record", entry["msg"])
	assert.Equal(t, "flavor", entry["category"])
	assert.EqualValues(t, 7, entry["start_line"])
	assert.Contains(t, entry, "ts")
}

func TestNew_NoSampling(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	for i := 0; i < 250; i++ {
		logger.Debug("corrupt, unfinished record skipped", zap.Int("line", i))
	}
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 250)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel), "fallback logger should be a no-op")
}
