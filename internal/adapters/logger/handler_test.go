package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/costwise/internal/adapters/logger"
)

func newTestHandler(t *testing.T, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	lg, buf := newTestHandler(t, slog.LevelInfo)

	lg.Debug("hidden")
	lg.Info("recomputed")
	lg.Warn("conversion skipped")
	lg.Error("catalog rejected")

	goldie.New(t).Assert(t, "handler_levels", buf.Bytes())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	lg, buf := newTestHandler(t, slog.LevelInfo)

	lg.With("cause", "ingredient_change").WithGroup("keys").Info("invalidated", "stale", 4)

	assert.Equal(t, "invalidated cause=ingredient_change keys.stale=4\n", buf.String())
}

func TestPrettyHandler_EmptyGroup(t *testing.T) {
	lg, buf := newTestHandler(t, slog.LevelInfo)

	lg.WithGroup("").Info("ready", "products", 3)

	assert.Equal(t, "ready products=3\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}
