package extractors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/toolcrate/internal/domain-adapters/gateways"
	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// extractTimeout bounds one 7z invocation.
const extractTimeout = 10 * time.Minute

// SevenZipLocator returns the path of the 7z executable, or an error
// when the tool is not provisioned yet. The default locator looks inside
// the vendor tree so the extractor uses the copy this tool installed.
type SevenZipLocator func() (string, error)

// NewVendorTreeLocator returns a locator that finds 7z inside the vendor
// root's 7-Zip installation.
func NewVendorTreeLocator(vendorRoot string) SevenZipLocator {
	return func() (string, error) {
		candidates := []string{
			filepath.Join(vendorRoot, "7zip", "7z.exe"),
			filepath.Join(vendorRoot, "7zip", "7z"),
		}
		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && !info.IsDir() {
				return c, nil
			}
		}
		return "", fmt.Errorf("7-Zip is not installed under %s", vendorRoot)
	}
}

// SevenZipExtractor unpacks .7z archives by shelling out to a 7z binary.
type SevenZipExtractor struct {
	runner gateways.Runner
	locate SevenZipLocator
	logger interfaces.Logger
}

// NewSevenZipExtractor creates a new 7z extractor.
func NewSevenZipExtractor(runner gateways.Runner, locate SevenZipLocator, logger interfaces.Logger) *SevenZipExtractor {
	return &SevenZipExtractor{runner: runner, locate: locate, logger: logger}
}

// CanExtract reports whether fileName is a 7z archive.
func (s *SevenZipExtractor) CanExtract(fileName string) bool {
	return hasSuffixFold(fileName, ".7z")
}

// Extract unpacks archivePath into targetDir via `7z x`. The 7-Zip vendor
// must already be installed; install ordering puts it first in the batch.
func (s *SevenZipExtractor) Extract(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult {
	result := s.run(ctx, archivePath, targetDir)
	if !result.Success {
		return result
	}

	if err := FlattenSingleDir(targetDir); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to flatten directory: %v", err),
		}
	}
	return result
}

// run performs the raw 7z invocation without flattening, shared with the
// tar.xz two-stage extractor.
func (s *SevenZipExtractor) run(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult {
	binary, err := s.locate()
	if err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("7z extraction requires the 7zip vendor: %v", err),
		}
	}

	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to create target directory: %v", err),
		}
	}

	runResult := s.runner.Run(ctx, gateways.RunSpec{
		Path:    binary,
		Args:    []string{"x", archivePath, "-o" + targetDir, "-y"},
		Timeout: extractTimeout,
	})

	if !runResult.Success {
		s.logger.Debug("7z output",
			interfaces.F("stdout", runResult.Stdout),
			interfaces.F("stderr", runResult.Stderr))
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("7z exited with code %d: %s", runResult.ExitCode, firstLine(runResult.Stderr)),
		}
	}

	s.logger.Debug("7z extraction complete",
		interfaces.F("archive", filepath.Base(archivePath)),
		interfaces.F("duration", runResult.Duration))

	return &entities.ExtractionResult{Success: true, Message: "extracted 7z archive"}
}

func firstLine(s string) string {
	for i, ch := range s {
		if ch == '\n' || ch == '\r' {
			return s[:i]
		}
	}
	return s
}
