package ports

import "go.trai.ch/costwise/internal/core/domain"

// CatalogLoader defines the interface for loading the cost catalog.
//
//go:generate mockgen -source=catalog_loader.go -destination=mocks/mock_catalog_loader.go -package=mocks
type CatalogLoader interface {
	// Load reads the catalog found from the given working directory.
	Load(cwd string) (*domain.Catalog, error)

	// DiscoverCatalogPath walks up from cwd to find the catalog file.
	DiscoverCatalogPath(cwd string) (string, error)
}
