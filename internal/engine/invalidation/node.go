package invalidation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/costwise/internal/adapters/metrics" //nolint:depguard // Wired in engine wiring
)

// NodeID is the unique identifier for the invalidation graph Graft node.
const NodeID graft.ID = "engine.invalidation"

func init() {
	graft.Register(graft.Node[*Graph]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{metrics.NodeID},
		Run: func(ctx context.Context) (*Graph, error) {
			collector, err := graft.Dep[*metrics.Collector](ctx)
			if err != nil {
				return nil, err
			}
			return New(collector), nil
		},
	})
}
