// Package repositories defines persistence contracts for the domain layer.
package repositories

import (
	"context"

	"github.com/ochairo/toolcrate/internal/domain/entities"
)

// CatalogRepository provides access to the vendor catalog.
type CatalogRepository interface {
	// GetVendor retrieves a vendor definition by key.
	GetVendor(ctx context.Context, key string) (*entities.VendorDefinition, error)

	// ListVendors returns all vendor definitions in catalog order.
	ListVendors(ctx context.Context) ([]*entities.VendorDefinition, error)
}
