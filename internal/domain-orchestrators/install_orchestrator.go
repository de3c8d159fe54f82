// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
	"github.com/ochairo/toolcrate/internal/domain/interfaces/repositories"
)

// SourceResolver interface for resolving vendor download sources
type SourceResolver interface {
	Resolve(ctx context.Context, def *entities.VendorDefinition) (*entities.ResolvedSource, error)
}

// Downloader interface for fetching artifacts
type Downloader interface {
	DownloadFile(ctx context.Context, url, destPath string) error
}

// ChecksumVerifier interface for artifact integrity checks
type ChecksumVerifier interface {
	Verify(filePath string, info *entities.ChecksumInfo) *entities.VerificationResult
}

// Extractor interface for unpacking artifacts
type Extractor interface {
	ExtractVendor(ctx context.Context, def *entities.VendorDefinition, archivePath, targetDir string) *entities.ExtractionResult
}

// Configurator interface for post-install configuration
type Configurator interface {
	Configure(def *entities.VendorDefinition, targetDir string) error
}

// scratchDirName is the per-batch download staging area under the
// vendor root.
const scratchDirName = ".downloads"

// InstallOrchestrator coordinates the complete vendor provisioning workflow
type InstallOrchestrator struct {
	catalog      repositories.CatalogRepository
	resolver     SourceResolver
	downloader   Downloader
	verifier     ChecksumVerifier
	extractor    Extractor
	configurator Configurator
	vendorRoot   string
	logger       interfaces.Logger
}

// InstallOrchestratorConfig holds configuration for the orchestrator
type InstallOrchestratorConfig struct {
	// VendorRoot is the directory all vendors are installed under.
	VendorRoot string
}

// NewInstallOrchestrator creates a new install orchestrator
func NewInstallOrchestrator(
	catalog repositories.CatalogRepository,
	resolver SourceResolver,
	downloader Downloader,
	verifier ChecksumVerifier,
	extractor Extractor,
	configurator Configurator,
	config InstallOrchestratorConfig,
	logger interfaces.Logger,
) *InstallOrchestrator {
	vendorRoot := config.VendorRoot
	if vendorRoot == "" {
		vendorRoot = "vendor"
	}

	return &InstallOrchestrator{
		catalog:      catalog,
		resolver:     resolver,
		downloader:   downloader,
		verifier:     verifier,
		extractor:    extractor,
		configurator: configurator,
		vendorRoot:   vendorRoot,
		logger:       logger,
	}
}

// InstallAll provisions every enabled vendor in the catalog. Vendor
// failures are isolated: the batch continues and the aggregate result
// reports them.
func (o *InstallOrchestrator) InstallAll(ctx context.Context) (*entities.BatchResult, error) {
	vendors, err := o.catalog.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	keys := make([]string, 0, len(vendors))
	for _, v := range vendors {
		if v.Enabled {
			keys = append(keys, v.Key)
		}
	}

	return o.Install(ctx, keys...)
}

// Install provisions the named vendors and their dependencies. Each
// vendor's dependencies are installed first, depth-first; a vendor whose
// dependency failed is itself recorded as failed without running its
// pipeline.
func (o *InstallOrchestrator) Install(ctx context.Context, keys ...string) (*entities.BatchResult, error) {
	batch := &entities.BatchResult{}
	state := map[string]*entities.InstallResult{}

	for _, key := range keys {
		if err := o.installWithDependencies(ctx, key, state, map[string]bool{}); err != nil {
			return nil, err
		}
	}

	// Report results in the order vendors were processed.
	for _, r := range stateByOrder(state) {
		batch.Results = append(batch.Results, *r)
		batch.Total++
		switch {
		case r.Skipped:
			batch.Skipped++
		case r.Success:
			batch.Succeeded++
		default:
			batch.Failed++
		}
	}

	o.cleanupScratch()

	o.logger.Info("install batch complete",
		interfaces.F("total", batch.Total),
		interfaces.F("succeeded", batch.Succeeded),
		interfaces.F("skipped", batch.Skipped),
		interfaces.F("failed", batch.Failed))

	return batch, nil
}

// IsInstalled reports whether the vendor's extract directory exists and
// is non-empty. The directory tree itself is the installed-state record;
// there is no separate database to drift out of sync.
func (o *InstallOrchestrator) IsInstalled(def *entities.VendorDefinition) bool {
	entries, err := os.ReadDir(o.targetDir(def))
	return err == nil && len(entries) > 0
}

// installWithDependencies installs key after its dependency closure.
// visiting tracks the active recursion path for cycle detection.
func (o *InstallOrchestrator) installWithDependencies(ctx context.Context, key string, state map[string]*entities.InstallResult, visiting map[string]bool) error {
	if _, done := state[key]; done {
		return nil
	}
	if visiting[key] {
		return fmt.Errorf("dependency cycle involving vendor %s", key)
	}
	visiting[key] = true
	defer delete(visiting, key)

	def, err := o.catalog.GetVendor(ctx, key)
	if err != nil {
		o.record(state, &entities.InstallResult{
			Key:     key,
			Message: fmt.Sprintf("unknown vendor: %v", err),
		})
		return nil
	}

	for _, dep := range def.Dependencies {
		if err := o.installWithDependencies(ctx, dep, state, visiting); err != nil {
			return err
		}
		if depResult := state[dep]; !depResult.Success && !depResult.Skipped {
			o.record(state, &entities.InstallResult{
				Key:     key,
				Message: fmt.Sprintf("dependency %s failed", dep),
			})
			return nil
		}
	}

	o.record(state, o.installOne(ctx, def))
	return nil
}

// installOne runs the full pipeline for a single vendor.
func (o *InstallOrchestrator) installOne(ctx context.Context, def *entities.VendorDefinition) *entities.InstallResult {
	start := time.Now()
	result := &entities.InstallResult{Key: def.Key}

	if o.IsInstalled(def) {
		result.Success = true
		result.Skipped = true
		result.Message = "already installed"
		result.Duration = time.Since(start)
		o.logger.Info("vendor already installed", interfaces.F("vendor", def.Key))
		return result
	}

	o.logger.Info("installing vendor",
		interfaces.F("vendor", def.Key),
		interfaces.F("name", def.Name))

	resolved, err := o.resolver.Resolve(ctx, def)
	if err != nil {
		return fail(result, start, fmt.Sprintf("resolution failed: %v", err))
	}

	archivePath := filepath.Join(o.vendorRoot, scratchDirName, resolved.FileName)
	if err := o.downloader.DownloadFile(ctx, resolved.URL, archivePath); err != nil {
		return fail(result, start, fmt.Sprintf("download failed: %v", err))
	}

	if ok := o.verifyArtifact(def, archivePath, result, start); !ok {
		return result
	}

	targetDir := o.targetDir(def)
	if extraction := o.extractor.ExtractVendor(ctx, def, archivePath, targetDir); !extraction.Success {
		return fail(result, start, fmt.Sprintf("extraction failed: %s", extraction.Message))
	}

	if !o.IsInstalled(def) {
		return fail(result, start, "extraction produced an empty directory")
	}

	if err := o.configurator.Configure(def, targetDir); err != nil {
		// The vendor is installed and usable with its own defaults.
		o.logger.Warn("post-install configuration failed",
			interfaces.F("vendor", def.Key),
			interfaces.F("error", err.Error()))
	}

	result.Success = true
	result.Message = "installed"
	result.Duration = time.Since(start)
	o.logger.Info("vendor installed",
		interfaces.F("vendor", def.Key),
		interfaces.F("duration", result.Duration))
	return result
}

// verifyArtifact applies the vendor's checksum policy. A required
// mismatch fails the vendor before anything touches the target
// directory; an advisory mismatch is logged and installation continues.
func (o *InstallOrchestrator) verifyArtifact(def *entities.VendorDefinition, archivePath string, result *entities.InstallResult, start time.Time) bool {
	verification := o.verifier.Verify(archivePath, def.Checksum)
	if verification.Success {
		return true
	}

	if def.Checksum != nil && def.Checksum.Required {
		fail(result, start, fmt.Sprintf("checksum verification failed: %s", verification.Message))
		return false
	}

	o.logger.Warn("checksum mismatch on advisory checksum, continuing",
		interfaces.F("vendor", def.Key),
		interfaces.F("detail", verification.Message))
	return true
}

func (o *InstallOrchestrator) targetDir(def *entities.VendorDefinition) string {
	return filepath.Join(o.vendorRoot, def.ExtractDir)
}

// cleanupScratch removes the download staging area. Best effort: a
// leftover scratch dir wastes disk but breaks nothing.
func (o *InstallOrchestrator) cleanupScratch() {
	scratch := filepath.Join(o.vendorRoot, scratchDirName)
	if err := os.RemoveAll(scratch); err != nil {
		o.logger.Warn("failed to clean up downloads",
			interfaces.F("path", scratch),
			interfaces.F("error", err.Error()))
	}
}

func (o *InstallOrchestrator) record(state map[string]*entities.InstallResult, r *entities.InstallResult) {
	r.Order = len(state)
	state[r.Key] = r
	if !r.Success && !r.Skipped {
		o.logger.Error("vendor install failed",
			interfaces.F("vendor", r.Key),
			interfaces.F("reason", r.Message))
	}
}

func fail(result *entities.InstallResult, start time.Time, msg string) *entities.InstallResult {
	result.Success = false
	result.Message = msg
	result.Duration = time.Since(start)
	return result
}

// stateByOrder returns results sorted by the order they were recorded.
func stateByOrder(state map[string]*entities.InstallResult) []*entities.InstallResult {
	out := make([]*entities.InstallResult, len(state))
	for _, r := range state {
		out[r.Order] = r
	}
	return out
}
