package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/costwise/internal/adapters/catalog" //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/adapters/history" //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/core/ports"
	"go.trai.ch/costwise/internal/engine/dashboard"
	"go.trai.ch/costwise/internal/engine/pricing"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			catalog.NodeID,
			history.NodeID,
			watcher.NodeID,
			logger.NodeID,
			pricing.NodeID,
			dashboard.NodeID,
			metrics.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.CatalogLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.PriceHistory](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[*pricing.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	aggregator, err := graft.Dep[*dashboard.Aggregator](ctx)
	if err != nil {
		return nil, err
	}

	collector, err := graft.Dep[*metrics.Collector](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, store, w, log, resolver, aggregator, collector), nil
}
