package extractors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// TarXzExtractor unpacks .tar.xz archives in two 7z stages: the first
// decompresses the xz layer into an intermediate .tar, the second unpacks
// that tar into the target.
type TarXzExtractor struct {
	sevenZip *SevenZipExtractor
	logger   interfaces.Logger
}

// NewTarXzExtractor creates a new tar.xz extractor over the 7z strategy.
func NewTarXzExtractor(sevenZip *SevenZipExtractor, logger interfaces.Logger) *TarXzExtractor {
	return &TarXzExtractor{sevenZip: sevenZip, logger: logger}
}

// CanExtract reports whether fileName is a tar.xz archive.
func (t *TarXzExtractor) CanExtract(fileName string) bool {
	return hasSuffixFold(fileName, ".tar.xz")
}

// Extract decompresses then unpacks archivePath into targetDir. The
// intermediate .tar lives next to the archive and is removed afterwards;
// failing to remove it is logged, not fatal.
func (t *TarXzExtractor) Extract(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult {
	stageDir := filepath.Dir(archivePath)

	if result := t.sevenZip.run(ctx, archivePath, stageDir); !result.Success {
		return &entities.ExtractionResult{
			Success: false,
			Message: "xz stage failed: " + result.Message,
		}
	}

	tarPath := filepath.Join(stageDir, innerTarName(archivePath))
	if _, err := os.Stat(tarPath); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("xz stage produced no tar file at %s: %v", tarPath, err),
		}
	}

	tarResult := t.sevenZip.run(ctx, tarPath, targetDir)

	if err := os.Remove(tarPath); err != nil {
		t.logger.Warn("failed to remove intermediate tar",
			interfaces.F("path", tarPath),
			interfaces.F("error", err.Error()))
	}

	if !tarResult.Success {
		return &entities.ExtractionResult{
			Success: false,
			Message: "tar stage failed: " + tarResult.Message,
		}
	}

	if err := FlattenSingleDir(targetDir); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to flatten directory: %v", err),
		}
	}

	return &entities.ExtractionResult{Success: true, Message: "extracted tar.xz archive"}
}

// innerTarName maps archive.tar.xz to the archive.tar that 7z writes when
// stripping the xz layer.
func innerTarName(archivePath string) string {
	base := filepath.Base(archivePath)
	if idx := strings.LastIndex(strings.ToLower(base), ".xz"); idx > 0 {
		return base[:idx]
	}
	return base + ".tar"
}
