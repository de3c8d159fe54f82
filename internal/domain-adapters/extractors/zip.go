package extractors

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// ZipExtractor unpacks .zip archives in-process.
type ZipExtractor struct {
	logger interfaces.Logger
}

// NewZipExtractor creates a new zip extractor.
func NewZipExtractor(logger interfaces.Logger) *ZipExtractor {
	return &ZipExtractor{logger: logger}
}

// CanExtract reports whether fileName is a zip archive.
func (z *ZipExtractor) CanExtract(fileName string) bool {
	return hasSuffixFold(fileName, ".zip")
}

// Extract unpacks archivePath into targetDir, overwriting existing files,
// then collapses any single wrapper directory.
func (z *ZipExtractor) Extract(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to open zip archive: %v", err),
		}
	}
	//nolint:errcheck // Defer close on read-only archive
	defer reader.Close()

	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to create target directory: %v", err),
		}
	}

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return &entities.ExtractionResult{
				Success: false,
				Message: fmt.Sprintf("extraction canceled: %v", err),
			}
		}

		if err := z.extractEntry(file, targetDir); err != nil {
			return &entities.ExtractionResult{
				Success: false,
				Message: fmt.Sprintf("failed to extract %s: %v", file.Name, err),
			}
		}
	}

	if err := FlattenSingleDir(targetDir); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to flatten directory: %v", err),
		}
	}

	z.logger.Debug("zip extracted",
		interfaces.F("archive", filepath.Base(archivePath)),
		interfaces.F("entries", len(reader.File)))

	return &entities.ExtractionResult{Success: true, Message: "extracted zip archive"}
}

func (z *ZipExtractor) extractEntry(file *zip.File, targetDir string) error {
	destPath, err := safeJoin(targetDir, file.Name)
	if err != nil {
		return err
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0750)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry: %w", err)
	}
	//nolint:errcheck // Defer close on archive entry
	defer src.Close()

	//nolint:gosec // G304: destination is confined by safeJoin
	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	//nolint:gosec // G110: archive members come from trusted vendor releases
	_, copyErr := io.Copy(dest, src)
	closeErr := dest.Close()
	if copyErr != nil {
		return fmt.Errorf("failed to write file: %w", copyErr)
	}
	return closeErr
}

// safeJoin joins an archive member path to the target directory and
// rejects entries that would escape it (zip-slip).
func safeJoin(targetDir, name string) (string, error) {
	destPath := filepath.Join(targetDir, name)
	if !strings.HasPrefix(destPath, filepath.Clean(targetDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes target directory", name)
	}
	return destPath, nil
}
