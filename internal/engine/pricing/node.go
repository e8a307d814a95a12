package pricing

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/costwise/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/costwise/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/costwise/internal/core/ports"
	"go.trai.ch/costwise/internal/engine/dashboard"
	"go.trai.ch/costwise/internal/engine/invalidation"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.pricing"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			invalidation.NodeID,
			dashboard.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			graph, err := graft.Dep[*invalidation.Graph](ctx)
			if err != nil {
				return nil, err
			}

			aggregator, err := graft.Dep[*dashboard.Aggregator](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			collector, err := graft.Dep[*metrics.Collector](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(graph, aggregator, tracer, collector), nil
		},
	})
}
