package telemetry

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/costwise/internal/core/ports"
)

// DefaultSlowThreshold is the recompute duration above which a span is reported.
const DefaultSlowThreshold = 250 * time.Millisecond

// LogBridge implements sdktrace.SpanProcessor, reporting slow spans to a logger.
// Failed spans stay on the trace only. Callers of the engine own the warning for a failed cost.
type LogBridge struct {
	logger    ports.Logger
	threshold time.Duration
}

// NewLogBridge returns a LogBridge reporting spans slower than threshold.
func NewLogBridge(logger ports.Logger, threshold time.Duration) *LogBridge {
	return &LogBridge{logger: logger, threshold: threshold}
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	if elapsed := s.EndTime().Sub(s.StartTime()); elapsed > b.threshold {
		b.logger.Warn(fmt.Sprintf("%s took %s", s.Name(), elapsed.Round(time.Millisecond)))
	}
}

// Shutdown is called when the SDK shuts down.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}

// ForceFlush exports all ended spans that have not yet been exported.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}
