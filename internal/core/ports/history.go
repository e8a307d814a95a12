package ports

import (
	"time"

	"go.trai.ch/costwise/internal/core/domain"
)

// PriceHistory defines the interface for storing and retrieving ingredient price changes.
//
//go:generate mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks
type PriceHistory interface {
	// Append stores the given changes.
	Append(changes ...domain.PriceChange) error

	// Since returns every change recorded at or after t, oldest first.
	Since(t time.Time) ([]domain.PriceChange, error)

	// SetRoot anchors the history under the state directory of root.
	SetRoot(root string)
}
