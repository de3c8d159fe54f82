package extractors

import (
	"context"

	"github.com/ochairo/toolcrate/internal/domain/entities"
)

// VendorExtractor applies per-vendor install settings on top of the
// format dispatcher. Vendors with explicit installer arguments bypass
// the hint table; everything else routes by file extension.
type VendorExtractor struct {
	dispatcher *Dispatcher
	installer  *InstallerExtractor
}

// NewVendorExtractor creates a vendor-aware extraction front.
func NewVendorExtractor(dispatcher *Dispatcher, installer *InstallerExtractor) *VendorExtractor {
	return &VendorExtractor{dispatcher: dispatcher, installer: installer}
}

// ExtractVendor unpacks the vendor's artifact into targetDir.
func (v *VendorExtractor) ExtractVendor(ctx context.Context, def *entities.VendorDefinition, archivePath, targetDir string) *entities.ExtractionResult {
	if def.InstallType == entities.InstallInstaller && len(def.InstallerArgs) > 0 {
		return v.installer.WithArgs(def.InstallerArgs).Extract(ctx, archivePath, targetDir)
	}
	return v.dispatcher.Extract(ctx, archivePath, targetDir)
}
