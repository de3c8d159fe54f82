package extractors

import (
	"context"
	"sync"
	"testing"

	"github.com/ochairo/toolcrate/internal/domain-adapters/gateways"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// fakeRunner records invocations and delegates behavior to OnRun, so
// extraction strategies can be tested without 7z or msiexec present.
type fakeRunner struct {
	mu    sync.Mutex
	Specs []gateways.RunSpec
	OnRun func(spec gateways.RunSpec) *gateways.RunResult
}

func (f *fakeRunner) Run(_ context.Context, spec gateways.RunSpec) *gateways.RunResult {
	f.mu.Lock()
	f.Specs = append(f.Specs, spec)
	f.mu.Unlock()

	if f.OnRun != nil {
		return f.OnRun(spec)
	}
	return &gateways.RunResult{Success: true}
}

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	logger := &interfaces.NoOpLogger{}
	runner := &fakeRunner{}
	locate := func() (string, error) { return "/vendor/7zip/7z", nil }

	sevenZip := NewSevenZipExtractor(runner, locate, logger)
	return NewDispatcher(
		NewTarXzExtractor(sevenZip, logger),
		NewZipExtractor(logger),
		sevenZip,
		NewMsiExtractor(runner, logger),
		NewInstallerExtractor(runner, logger),
	)
}

func TestDispatcherRoutesByExtension(t *testing.T) {
	d := newTestDispatcher(t)

	tests := []struct {
		fileName string
		want     string
	}{
		{"tool-1.0.zip", "*extractors.ZipExtractor"},
		{"Tool-1.0.ZIP", "*extractors.ZipExtractor"},
		{"runtime.7z", "*extractors.SevenZipExtractor"},
		{"base-2024-12-08.tar.xz", "*extractors.TarXzExtractor"},
		{"product-x64.msi", "*extractors.MsiExtractor"},
		{"setup-x64.exe", "*extractors.InstallerExtractor"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			e := d.ExtractorFor(tt.fileName)
			if e == nil {
				t.Fatalf("no extractor for %s", tt.fileName)
			}
			got := typeName(e)
			if got != tt.want {
				t.Errorf("ExtractorFor(%s) = %s, want %s", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestDispatcherExtensionsAreExclusive(t *testing.T) {
	d := newTestDispatcher(t)

	files := []string{"a.zip", "a.7z", "a.tar.xz", "a.msi", "a.exe"}
	for _, f := range files {
		matched := 0
		for _, e := range d.extractors {
			if e.CanExtract(f) {
				matched++
			}
		}
		if matched != 1 {
			t.Errorf("%s matched %d extractors, want exactly 1", f, matched)
		}
	}
}

func TestDispatcherUnsupportedFormat(t *testing.T) {
	d := newTestDispatcher(t)

	if e := d.ExtractorFor("artifact.tar.gz"); e != nil {
		t.Errorf("expected no extractor for tar.gz, got %s", typeName(e))
	}

	result := d.Extract(context.Background(), "artifact.rar", t.TempDir())
	if result.Success {
		t.Error("expected failure for unsupported format")
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *ZipExtractor:
		return "*extractors.ZipExtractor"
	case *SevenZipExtractor:
		return "*extractors.SevenZipExtractor"
	case *TarXzExtractor:
		return "*extractors.TarXzExtractor"
	case *MsiExtractor:
		return "*extractors.MsiExtractor"
	case *InstallerExtractor:
		return "*extractors.InstallerExtractor"
	default:
		return "unknown"
	}
}
