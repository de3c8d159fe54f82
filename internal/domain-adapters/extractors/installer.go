package extractors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/toolcrate/internal/domain-adapters/gateways"
	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// installerTimeout bounds one silent installer run.
const installerTimeout = 15 * time.Minute

// installerHint describes how to drive one family of .exe installers
// silently. Match is a substring of the lowercased installer file name.
type installerHint struct {
	Match string
	// Args for a silent install; placeholders are substituted per run.
	Args []string
	// Env entries scoped to the child process only.
	Env []string
}

// installerHints maps known installer families to their silent-install
// invocations. First match wins; the trailing empty-match entry is the
// NSIS-style default that most Windows installers honor.
var installerHints = []installerHint{
	{
		Match: "rust",
		Args: []string{
			"-y",
			"--default-toolchain", "stable",
			"--profile", "default",
			"--no-modify-path",
		},
		Env: []string{
			"CARGO_HOME=%TARGETDIR%" + string(os.PathSeparator) + "cargo",
			"RUSTUP_HOME=%TARGETDIR%" + string(os.PathSeparator) + "rustup",
		},
	},
	{
		Match: "",
		Args:  []string{"/S", "/D=%TARGETDIR%"},
	},
}

// InstallerExtractor drives self-extracting .exe installers in silent
// mode, confined to the vendor target directory.
type InstallerExtractor struct {
	runner gateways.Runner
	logger interfaces.Logger

	// args overrides the hint table when set (from the vendor definition).
	args []string
}

// NewInstallerExtractor creates a new installer extractor using the
// built-in hint table.
func NewInstallerExtractor(runner gateways.Runner, logger interfaces.Logger) *InstallerExtractor {
	return &InstallerExtractor{runner: runner, logger: logger}
}

// WithArgs returns a copy of the extractor that uses the given argument
// list instead of the hint table. Placeholders %TARGETDIR% and $TARGETDIR
// are substituted with the vendor target at run time.
func (e *InstallerExtractor) WithArgs(args []string) *InstallerExtractor {
	clone := *e
	clone.args = append([]string(nil), args...)
	return &clone
}

// CanExtract reports whether fileName is an executable installer.
func (e *InstallerExtractor) CanExtract(fileName string) bool {
	return hasSuffixFold(fileName, ".exe")
}

// Extract runs the installer silently with the target directory as its
// install root. Environment entries from the hint apply to the child
// process only.
func (e *InstallerExtractor) Extract(ctx context.Context, archivePath, targetDir string) *entities.ExtractionResult {
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to create target directory: %v", err),
		}
	}

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("failed to resolve target directory: %v", err),
		}
	}

	args, env := e.invocationFor(archivePath, absTarget)

	e.logger.Debug("running silent installer",
		interfaces.F("installer", filepath.Base(archivePath)),
		interfaces.F("args", strings.Join(args, " ")))

	runResult := e.runner.Run(ctx, gateways.RunSpec{
		Path:    archivePath,
		Args:    args,
		Env:     env,
		Timeout: installerTimeout,
	})

	if !runResult.Success {
		e.logger.Debug("installer output",
			interfaces.F("stdout", runResult.Stdout),
			interfaces.F("stderr", runResult.Stderr))
		return &entities.ExtractionResult{
			Success: false,
			Message: fmt.Sprintf("installer exited with code %d: %s", runResult.ExitCode, firstLine(runResult.Stderr)),
		}
	}

	return &entities.ExtractionResult{Success: true, Message: "installer completed"}
}

// invocationFor selects the argument list and child environment for the
// installer, with target-directory placeholders substituted.
func (e *InstallerExtractor) invocationFor(archivePath, absTarget string) ([]string, []string) {
	if len(e.args) > 0 {
		return substituteAll(e.args, absTarget), nil
	}

	name := strings.ToLower(filepath.Base(archivePath))
	for _, hint := range installerHints {
		if hint.Match != "" && !strings.Contains(name, hint.Match) {
			continue
		}
		return substituteAll(hint.Args, absTarget), substituteAll(hint.Env, absTarget)
	}
	return nil, nil
}

func substituteAll(values []string, target string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, "%TARGETDIR%", target)
		v = strings.ReplaceAll(v, "$TARGETDIR", target)
		out[i] = v
	}
	return out
}
