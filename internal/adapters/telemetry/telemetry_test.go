package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/costwise/internal/adapters/telemetry"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports"
	"go.trai.ch/costwise/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
}

func TestOTelTracer_RecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := telemetry.NewProvider(sr)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer(tp)
	_, span := tracer.Start(context.Background(), "recompute product")
	span.SetAttribute("cache.key", domain.ProductKey("cake").String())
	span.SetAttribute("cache.stored", true)
	span.SetAttribute("lines", 2)
	span.SetAttribute("cost", decimal.RequireFromString("9.50"))
	span.SetAttribute("kind", domain.KindProduct)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "recompute product", spans[0].Name())
	assert.Equal(t, telemetry.InstrumentationName, spans[0].InstrumentationScope().Name)

	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.String("cache.key", "product:cake"))
	assert.Contains(t, attrs, attribute.Bool("cache.stored", true))
	assert.Contains(t, attrs, attribute.Int("lines", 2))
	assert.Contains(t, attrs, attribute.String("cost", "9.5"))
	assert.Contains(t, attrs, attribute.String("kind", "product"))
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := telemetry.NewProvider(sr)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "recompute line")
	span.RecordError(nil)
	span.RecordError(domain.ErrUnsupportedConversion)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, domain.ErrUnsupportedConversion.Error(), spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1, "a nil error is ignored")
}

func TestLogBridge_QuietForFailedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	tp := telemetry.NewProvider(telemetry.NewLogBridge(mockLogger, time.Hour))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "recompute product")
	span.RecordError(errors.New("product not found"))
	span.End()
}

func TestLogBridge_ReportsSlowSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "recompute dashboard took")
	})

	tp := telemetry.NewProvider(telemetry.NewLogBridge(mockLogger, 0))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "recompute dashboard")
	time.Sleep(time.Millisecond)
	span.End()
}

func TestLogBridge_QuietForFastSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	tp := telemetry.NewProvider(telemetry.NewLogBridge(mockLogger, time.Hour))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "recompute ingredient")
	span.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "noop")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
