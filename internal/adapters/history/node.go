package history

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports"
)

// NodeID is the unique identifier for the price history Graft node.
const NodeID graft.ID = "adapter.price_history"

func init() {
	graft.Register(graft.Node[ports.PriceHistory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PriceHistory, error) {
			return NewStore(domain.DefaultHistoryPath()), nil
		},
	})
}
