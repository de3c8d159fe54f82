// Package extractors implements per-format archive extraction strategies
// and the dispatcher that selects one per artifact.
package extractors

import (
	"context"
	"strings"

	"github.com/ochairo/toolcrate/internal/domain/entities"
)

// Extractor is one extraction strategy. Extract unpacks archivePath into
// targetDir, creating it if needed; implementations report failure through
// the result rather than panicking.
type Extractor interface {
	// CanExtract reports whether this strategy handles the file.
	CanExtract(fileName string) bool

	// Extract unpacks archivePath into targetDir.
	Extract(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult
}

// Dispatcher routes artifacts to the first strategy that claims them.
// Strategies are checked in registration order; the supported extensions
// are mutually exclusive so order only matters for the tar.xz/7z pair
// (.tar.xz must be tested before the bare extension match).
type Dispatcher struct {
	extractors []Extractor
}

// NewDispatcher creates a dispatcher over the given strategies.
func NewDispatcher(extractors ...Extractor) *Dispatcher {
	return &Dispatcher{extractors: extractors}
}

// ExtractorFor returns the strategy that handles fileName, or nil when
// the format is unsupported.
func (d *Dispatcher) ExtractorFor(fileName string) Extractor {
	for _, e := range d.extractors {
		if e.CanExtract(fileName) {
			return e
		}
	}
	return nil
}

// Extract dispatches to the matching strategy.
func (d *Dispatcher) Extract(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult {
	e := d.ExtractorFor(archivePath)
	if e == nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: "unsupported archive format: " + archivePath,
		}
	}
	return e.Extract(ctx, archivePath, targetDir)
}

func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), suffix)
}
