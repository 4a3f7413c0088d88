package monitor

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	t.Run("counters", func(t *testing.T) {
		s := NewStats("live")
		s.RecordQuery()
		s.RecordQuery()
		s.RecordToolDispatch()
		s.RecordAborted()
		s.RecordModelFailure()

		snap := s.Snapshot()
		assert.Equal(t, int64(2), snap.Queries)
		assert.Equal(t, int64(1), snap.ToolDispatch)
		assert.Equal(t, int64(1), snap.AbortedRuns)
		assert.Equal(t, int64(1), snap.ModelFailures)
		assert.Equal(t, "live", snap.BackendMode)
	})

	t.Run("nil receiver is safe", func(t *testing.T) {
		var s *Stats
		s.RecordQuery()
		s.RecordToolDispatch()
		s.RecordAborted()
		s.RecordModelFailure()
		assert.Equal(t, Snapshot{}, s.Snapshot())
	})
}

func TestCustomHandler_RequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCustomHandler(&buf, slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := WithRequestID(context.Background(), "req123")
	logger.InfoContext(ctx, "processing", "key", "value")

	line := buf.String()
	assert.Contains(t, line, "[req123]")
	assert.Contains(t, line, "processing")
	assert.Contains(t, line, `key="value"`)
}

func TestEnsureRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "outer")
	ctx = EnsureRequestID(ctx, "inner")

	var buf bytes.Buffer
	logger := slog.New(NewCustomHandler(&buf, slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.InfoContext(ctx, "msg")

	require.Contains(t, buf.String(), "[outer]", "existing request ID must win")
}
