package ports

import "go.trai.ch/costwise/internal/core/domain"

// Metrics records cache activity of the cost engine.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// Invalidated counts keys moved to Stale by an invalidation call.
	Invalidated(cause domain.InvalidationCause, keys int)
	// Hit counts a read served from a Fresh key.
	Hit(kind domain.EntityKind)
	// Miss counts a read that had to recompute.
	Miss(kind domain.EntityKind)
	// Rejected counts a store refused because the key or a dependency moved.
	Rejected(kind domain.EntityKind)
	// Failed counts a recompute that returned an error.
	Failed(kind domain.EntityKind)
}
