package dashboard

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the dashboard aggregator Graft node.
const NodeID graft.ID = "engine.dashboard"

func init() {
	graft.Register(graft.Node[*Aggregator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Aggregator, error) {
			return New(), nil
		},
	})
}
