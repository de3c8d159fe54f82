package extractors

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/toolcrate/internal/domain-adapters/gateways"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

func TestMsiAdminInstallPromotesProductTree(t *testing.T) {
	target := filepath.Join(t.TempDir(), "terminal")

	runner := &fakeRunner{
		OnRun: func(spec gateways.RunSpec) *gateways.RunResult {
			// An admin install lays the payload under Files/<Product>/ and
			// leaves the stripped package at the target root.
			mkTree(t, target, map[string]string{
				"Files/Terminal/terminal.exe": "binary",
				"Files/Terminal/res/icon.ico": "icon",
				"terminal-x64.msi":            "stripped package",
			})
			return &gateways.RunResult{Success: true}
		},
	}

	m := NewMsiExtractor(runner, &interfaces.NoOpLogger{})
	result := m.Extract(context.Background(), "/downloads/terminal-x64.msi", target)
	if !result.Success {
		t.Fatalf("Extract() failed: %s", result.Message)
	}

	if len(runner.Specs) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(runner.Specs))
	}
	spec := runner.Specs[0]
	if spec.Args[0] != "/a" || spec.Args[1] != "/downloads/terminal-x64.msi" || spec.Args[2] != "/qn" {
		t.Errorf("unexpected msiexec args: %v", spec.Args)
	}
	if !strings.HasPrefix(spec.Args[3], "TARGETDIR=") {
		t.Errorf("missing TARGETDIR property: %v", spec.Args)
	}
	if !filepath.IsAbs(strings.TrimPrefix(spec.Args[3], "TARGETDIR=")) {
		t.Errorf("TARGETDIR must be absolute: %v", spec.Args[3])
	}

	mustExist(t, filepath.Join(target, "terminal.exe"))
	mustExist(t, filepath.Join(target, "res", "icon.ico"))
	mustNotExist(t, filepath.Join(target, "Files"))
}

func TestMsiAdminInstallWithoutFilesDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "tool")

	runner := &fakeRunner{
		OnRun: func(_ gateways.RunSpec) *gateways.RunResult {
			mkTree(t, target, map[string]string{"bin/tool.exe": "binary"})
			return &gateways.RunResult{Success: true}
		},
	}

	m := NewMsiExtractor(runner, &interfaces.NoOpLogger{})
	result := m.Extract(context.Background(), "/downloads/tool.msi", target)
	if !result.Success {
		t.Fatalf("Extract() failed: %s", result.Message)
	}
	mustExist(t, filepath.Join(target, "bin", "tool.exe"))
}

func TestMsiExtractProcessFailure(t *testing.T) {
	runner := &fakeRunner{
		OnRun: func(_ gateways.RunSpec) *gateways.RunResult {
			return &gateways.RunResult{Success: false, ExitCode: 1603, Stderr: "install failure"}
		},
	}

	m := NewMsiExtractor(runner, &interfaces.NoOpLogger{})
	result := m.Extract(context.Background(), "/downloads/tool.msi", t.TempDir())
	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "1603") {
		t.Errorf("message should carry the exit code: %s", result.Message)
	}
}
