package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("rows cleaned", slog.Int("rows", 12))
		logger.Error("write failed", slog.String("path", "out.csv"))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("rows cleaned"))
		assert.True(t, handler.ContainsAttr("path", "out.csv"))
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("keeps attributes bound with With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "pipeline")).Info("step done", slog.String("step", "age"))

		records := handler.GetRecords()
		require.Len(t, records, 1)
		assert.Equal(t, "pipeline", records[0].Attrs["component"])
		assert.Equal(t, "age", records[0].Attrs["step"])
	})

	t.Run("prefixes grouped attributes", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.WithGroup("run").Info("done", slog.Int("rows", 3))

		assert.True(t, handler.ContainsAttr("run.rows", int64(3)))
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")

		handler.Clear()

		assert.Equal(t, 0, handler.Count())
	})
}
