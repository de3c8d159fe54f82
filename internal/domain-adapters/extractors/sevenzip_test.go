package extractors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/toolcrate/internal/domain-adapters/gateways"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

func TestSevenZipExtractInvocation(t *testing.T) {
	target := filepath.Join(t.TempDir(), "runtime")
	runner := &fakeRunner{
		OnRun: func(_ gateways.RunSpec) *gateways.RunResult {
			mkTree(t, target, map[string]string{"bin/runtime.exe": "binary"})
			return &gateways.RunResult{Success: true}
		},
	}
	locate := func() (string, error) { return "/vendor/7zip/7z", nil }

	s := NewSevenZipExtractor(runner, locate, &interfaces.NoOpLogger{})
	result := s.Extract(context.Background(), "/downloads/runtime.7z", target)
	if !result.Success {
		t.Fatalf("Extract() failed: %s", result.Message)
	}

	if len(runner.Specs) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(runner.Specs))
	}
	spec := runner.Specs[0]
	if spec.Path != "/vendor/7zip/7z" {
		t.Errorf("Path = %s", spec.Path)
	}
	want := []string{"x", "/downloads/runtime.7z", "-o" + target, "-y"}
	if strings.Join(spec.Args, " ") != strings.Join(want, " ") {
		t.Errorf("Args = %v, want %v", spec.Args, want)
	}
}

func TestSevenZipExtractMissingBinary(t *testing.T) {
	runner := &fakeRunner{}
	locate := func() (string, error) {
		return "", fmt.Errorf("7-Zip is not installed under /vendor")
	}

	s := NewSevenZipExtractor(runner, locate, &interfaces.NoOpLogger{})
	result := s.Extract(context.Background(), "/downloads/runtime.7z", t.TempDir())
	if result.Success {
		t.Fatal("expected failure when 7z is absent")
	}
	if !strings.Contains(result.Message, "7zip") {
		t.Errorf("failure message should name the missing prerequisite: %s", result.Message)
	}
	if len(runner.Specs) != 0 {
		t.Error("no process should run when the binary is absent")
	}
}

func TestSevenZipExtractProcessFailure(t *testing.T) {
	runner := &fakeRunner{
		OnRun: func(_ gateways.RunSpec) *gateways.RunResult {
			return &gateways.RunResult{
				Success:  false,
				ExitCode: 2,
				Stderr:   "ERROR: CRC failed\nmore detail",
			}
		},
	}
	locate := func() (string, error) { return "/vendor/7zip/7z", nil }

	s := NewSevenZipExtractor(runner, locate, &interfaces.NoOpLogger{})
	result := s.Extract(context.Background(), "/downloads/runtime.7z", t.TempDir())
	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "CRC failed") {
		t.Errorf("message should carry the first stderr line: %s", result.Message)
	}
}

func TestVendorTreeLocator(t *testing.T) {
	root := t.TempDir()

	if _, err := NewVendorTreeLocator(root)(); err == nil {
		t.Error("expected error before 7-Zip is installed")
	}

	mkTree(t, filepath.Join(root, "7zip"), map[string]string{"7z.exe": "binary"})
	path, err := NewVendorTreeLocator(root)()
	if err != nil {
		t.Fatalf("locator failed: %v", err)
	}
	if filepath.Base(path) != "7z.exe" {
		t.Errorf("unexpected path %s", path)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("located path does not exist: %v", statErr)
	}
}
