package yaml

import (
	"strings"
	"testing"

	"github.com/ochairo/toolcrate/internal/domain/entities"
)

const sampleCatalog = `
vendors:
  - key: 7zip
    name: 7-Zip
    extract_dir: 7zip
    required: true
    install_type: installer
    source:
      type: static-url
      url: https://www.7-zip.org/a/7z2409-x64.exe
    checksum:
      algorithm: sha256
      value: bdd1a33de78618d16ee4ce148b849932c05d0015491c34887846d431d29f308e
      required: true
  - key: nushell
    name: Nushell
    extract_dir: nushell
    source:
      type: github-release
      owner: nushell
      repo: nushell
      asset_pattern: x86_64-pc-windows-msvc
      asset_pattern_end: .zip
    fallback_url: https://example.com/nu-fallback.zip
  - key: msys2
    name: MSYS2
    extract_dir: msys2
    enabled: false
    dependencies: [7zip]
    source:
      type: web-scrape
      page_url: https://repo.example.com/distrib/
      link_pattern: href="(msys2-base-[0-9]+\.tar\.xz)"
      base_url: https://repo.example.com/distrib/
`

func TestParseCatalog(t *testing.T) {
	p := NewCatalogParser()
	vendors, err := p.Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(vendors) != 3 {
		t.Fatalf("got %d vendors, want 3", len(vendors))
	}

	sevenZip := vendors[0]
	if sevenZip.Key != "7zip" || !sevenZip.Required || !sevenZip.Enabled {
		t.Errorf("7zip parsed wrong: %+v", sevenZip)
	}
	if sevenZip.InstallType != entities.InstallInstaller {
		t.Errorf("InstallType = %s", sevenZip.InstallType)
	}
	if sevenZip.Checksum == nil || !sevenZip.Checksum.Required {
		t.Error("required checksum lost in parsing")
	}

	nushell := vendors[1]
	if nushell.Source.Type != entities.SourceGitHubRelease {
		t.Errorf("Source.Type = %s", nushell.Source.Type)
	}
	if nushell.Source.AssetPatternEnd != ".zip" {
		t.Errorf("AssetPatternEnd = %s", nushell.Source.AssetPatternEnd)
	}
	if nushell.FallbackURL == "" {
		t.Error("fallback URL lost")
	}
	// enabled defaults to true, install_type to archive.
	if !nushell.Enabled || nushell.InstallType != entities.InstallArchive {
		t.Errorf("defaults wrong: enabled=%v install_type=%s", nushell.Enabled, nushell.InstallType)
	}

	msys2 := vendors[2]
	if msys2.Enabled {
		t.Error("explicit enabled: false ignored")
	}
	if len(msys2.Dependencies) != 1 || msys2.Dependencies[0] != "7zip" {
		t.Errorf("Dependencies = %v", msys2.Dependencies)
	}
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "not yaml",
			yaml:    "{{{",
			wantErr: "failed to parse YAML",
		},
		{
			name: "missing extract_dir",
			yaml: `
vendors:
  - key: tool
    source: {type: static-url, url: https://example.com/t.zip}
`,
			wantErr: "extractDir",
		},
		{
			name: "duplicate keys",
			yaml: `
vendors:
  - {key: tool, extract_dir: a, source: {type: static-url, url: https://e.com/a.zip}}
  - {key: tool, extract_dir: b, source: {type: static-url, url: https://e.com/b.zip}}
`,
			wantErr: "duplicate vendor key",
		},
		{
			name: "unknown dependency",
			yaml: `
vendors:
  - {key: tool, extract_dir: a, dependencies: [ghost], source: {type: static-url, url: https://e.com/a.zip}}
`,
			wantErr: "unknown vendor",
		},
		{
			name: "dependency cycle",
			yaml: `
vendors:
  - {key: a, extract_dir: a, dependencies: [b], source: {type: static-url, url: https://e.com/a.zip}}
  - {key: b, extract_dir: b, dependencies: [a], source: {type: static-url, url: https://e.com/b.zip}}
`,
			wantErr: "cycle",
		},
		{
			name: "unsupported checksum algorithm",
			yaml: `
vendors:
  - key: tool
    extract_dir: a
    source: {type: static-url, url: https://e.com/a.zip}
    checksum: {algorithm: crc32, value: abcd}
`,
			wantErr: "unsupported checksum algorithm",
		},
	}

	p := NewCatalogParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultVendorsAreValid(t *testing.T) {
	if err := ValidateCatalog(DefaultVendors()); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}
}

func TestDefaultVendorsOrdering(t *testing.T) {
	vendors := DefaultVendors()
	if len(vendors) == 0 || vendors[0].Key != "7zip" {
		t.Fatal("7zip must come first so later vendors can use it for extraction")
	}
	// 7zip itself must not require an extraction tool.
	if vendors[0].InstallType != entities.InstallInstaller {
		t.Error("7zip must install via its own installer")
	}
}
