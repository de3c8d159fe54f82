package yaml

import "github.com/ochairo/toolcrate/internal/domain/entities"

// DefaultVendors is the built-in catalog, used when no catalog file is
// present. 7-Zip comes first: its silent installer needs no extraction
// tool, and every 7z/tar.xz vendor after it does.
func DefaultVendors() []*entities.VendorDefinition {
	return []*entities.VendorDefinition{
		{
			Key:         "7zip",
			Name:        "7-Zip",
			Description: "Archive tool used to unpack 7z and tar.xz vendors",
			ExtractDir:  "7zip",
			Required:    true,
			Enabled:     true,
			Source: entities.SourceConfig{
				Type: entities.SourceStaticURL,
				URL:  "https://www.7-zip.org/a/7z2409-x64.exe",
			},
			Checksum: &entities.ChecksumInfo{
				Algorithm: "sha256",
				Value:     "bdd1a33de78618d16ee4ce148b849932c05d0015491c34887846d431d29f308e",
				Required:  true,
			},
			InstallType: entities.InstallInstaller,
		},
		{
			Key:         "nushell",
			Name:        "Nushell",
			Description: "Structured-data shell runtime",
			ExtractDir:  "nushell",
			Required:    true,
			Enabled:     true,
			Source: entities.SourceConfig{
				Type:            entities.SourceGitHubRelease,
				Owner:           "nushell",
				Repo:            "nushell",
				AssetPattern:    "x86_64-pc-windows-msvc",
				AssetPatternEnd: ".zip",
			},
			FallbackURL: "https://github.com/nushell/nushell/releases/download/0.101.0/nu-0.101.0-x86_64-pc-windows-msvc.zip",
		},
		{
			Key:         "wezterm",
			Name:        "WezTerm",
			Description: "GPU-accelerated terminal emulator",
			ExtractDir:  "wezterm",
			Enabled:     true,
			Source: entities.SourceConfig{
				Type:            entities.SourceGitHubRelease,
				Owner:           "wez",
				Repo:            "wezterm",
				AssetPattern:    "windows",
				AssetPatternEnd: ".zip",
			},
		},
		{
			Key:          "msys2",
			Name:         "MSYS2",
			Description:  "POSIX toolchain and package manager",
			ExtractDir:   "msys2",
			Enabled:      true,
			Dependencies: []string{"7zip"},
			Source: entities.SourceConfig{
				Type:        entities.SourceWebScrape,
				PageURL:     "https://repo.msys2.org/distrib/x86_64/",
				LinkPattern: `href="(msys2-base-x86_64-[0-9]+\.tar\.xz)"`,
				BaseURL:     "https://repo.msys2.org/distrib/x86_64/",
			},
			FallbackURL: "https://repo.msys2.org/distrib/x86_64/msys2-base-x86_64-20241208.tar.xz",
		},
	}
}
