package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer opens spans around cost recomputations.
type Tracer interface {
	// Start opens a span named after the recomputed key.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span covers a single recompute.
type Span interface {
	// End completes the span.
	End()
	// RecordError marks the recompute as failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
