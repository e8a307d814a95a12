// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/costwise/internal/adapters/catalog"
	_ "go.trai.ch/costwise/internal/adapters/history"
	_ "go.trai.ch/costwise/internal/adapters/logger"
	_ "go.trai.ch/costwise/internal/adapters/metrics"
	_ "go.trai.ch/costwise/internal/adapters/telemetry"
	_ "go.trai.ch/costwise/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/costwise/internal/app"
	_ "go.trai.ch/costwise/internal/engine/dashboard"
	_ "go.trai.ch/costwise/internal/engine/invalidation"
	_ "go.trai.ch/costwise/internal/engine/pricing"
)
