package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// CatalogRepository implements repositories.CatalogRepository from a YAML
// catalog file, falling back to the built-in defaults when no usable
// file exists. The catalog is loaded once and cached.
type CatalogRepository struct {
	catalogPath string
	parser      *CatalogParser
	logger      interfaces.Logger

	vendors []*entities.VendorDefinition
	loaded  bool
}

// NewCatalogRepository creates a new YAML-backed catalog repository.
// catalogPath may be empty, in which case only the defaults are served.
func NewCatalogRepository(catalogPath string, logger interfaces.Logger) *CatalogRepository {
	return &CatalogRepository{
		catalogPath: catalogPath,
		parser:      NewCatalogParser(),
		logger:      logger,
	}
}

// GetVendor retrieves a vendor definition by key.
func (r *CatalogRepository) GetVendor(ctx context.Context, key string) (*entities.VendorDefinition, error) {
	vendors, err := r.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range vendors {
		if v.Key == key {
			return v, nil
		}
	}
	return nil, fmt.Errorf("vendor not found: %s", key)
}

// ListVendors returns all vendor definitions in catalog order.
func (r *CatalogRepository) ListVendors(_ context.Context) ([]*entities.VendorDefinition, error) {
	if !r.loaded {
		r.vendors = r.load()
		r.loaded = true
	}
	return r.vendors, nil
}

// load reads the catalog file, falling back to the built-in defaults
// when the file is missing or unusable. A broken catalog never bricks
// provisioning.
func (r *CatalogRepository) load() []*entities.VendorDefinition {
	if r.catalogPath == "" {
		return DefaultVendors()
	}

	if _, err := os.Stat(r.catalogPath); os.IsNotExist(err) {
		r.logger.Debug("no catalog file, using built-in defaults",
			interfaces.F("path", r.catalogPath))
		return DefaultVendors()
	}

	vendors, err := r.parser.ParseFile(r.catalogPath)
	if err != nil {
		r.logger.Warn("catalog file unusable, using built-in defaults",
			interfaces.F("path", r.catalogPath),
			interfaces.F("error", err.Error()))
		return DefaultVendors()
	}

	return vendors
}
