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

// msiTimeout bounds one msiexec invocation.
const msiTimeout = 10 * time.Minute

// MsiExtractor unpacks .msi packages with an msiexec administrative
// install, which lays out the package files without registering the
// product on the machine.
type MsiExtractor struct {
	runner gateways.Runner
	logger interfaces.Logger

	// msiexecPath is overridable for tests; empty means "msiexec".
	msiexecPath string
}

// NewMsiExtractor creates a new MSI extractor.
func NewMsiExtractor(runner gateways.Runner, logger interfaces.Logger) *MsiExtractor {
	return &MsiExtractor{runner: runner, logger: logger}
}

// CanExtract reports whether fileName is an MSI package.
func (m *MsiExtractor) CanExtract(fileName string) bool {
	return hasSuffixFold(fileName, ".msi")
}

// Extract performs `msiexec /a <msi> /qn TARGETDIR=<target>`. Admin
// installs of packages authored with a Files/<Product>/ layout bury the
// payload two levels deep; that subtree is promoted to the target root.
func (m *MsiExtractor) Extract(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult {
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to create target directory: %v", err),
		}
	}

	// msiexec requires an absolute TARGETDIR.
	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to resolve target directory: %v", err),
		}
	}

	binary := m.msiexecPath
	if binary == "" {
		binary = "msiexec"
	}

	runResult := m.runner.Run(ctx, gateways.RunSpec{
		Path:    binary,
		Args:    []string{"/a", archivePath, "/qn", "TARGETDIR=" + absTarget},
		Timeout: msiTimeout,
	})

	if !runResult.Success {
		m.logger.Debug("msiexec output",
			interfaces.F("stdout", runResult.Stdout),
			interfaces.F("stderr", runResult.Stderr))
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("msiexec exited with code %d: %s", runResult.ExitCode, firstLine(runResult.Stderr)),
		}
	}

	if err := m.promoteProductTree(targetDir); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to promote product tree: %v", err),
		}
	}

	m.logger.Debug("msi admin install complete",
		interfaces.F("package", filepath.Base(archivePath)))

	return &entities.ExtractionResult{Success: true, Message: "extracted msi package"}
}

// promoteProductTree moves Files/<Product>/* to the target root when the
// admin install produced that layout, then drops the emptied Files shell.
// Packages without a Files directory are left as laid out.
func (m *MsiExtractor) promoteProductTree(targetDir string) error {
	filesDir := filepath.Join(targetDir, "Files")
	info, err := os.Stat(filesDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(filesDir)
	if err != nil {
		return fmt.Errorf("failed to read Files directory: %w", err)
	}

	srcDir := filesDir
	if len(entries) == 1 && entries[0].IsDir() {
		srcDir = filepath.Join(filesDir, entries[0].Name())
	}

	if err := MoveContents(srcDir, targetDir); err != nil {
		return err
	}
	return os.RemoveAll(filesDir)
}
