// Package entities defines core domain models and data structures.
package entities

import "fmt"

// SourceType identifies the resolution strategy for a vendor's download.
type SourceType string

const (
	// SourceStaticURL means the download URL and file name are known up front.
	SourceStaticURL SourceType = "static-url"
	// SourceGitHubRelease resolves the URL from the latest GitHub release asset list.
	SourceGitHubRelease SourceType = "github-release"
	// SourceWebScrape resolves the URL by applying a regex to an HTML index page.
	SourceWebScrape SourceType = "web-scrape"
)

// InstallType distinguishes plain archives from self-running installers.
type InstallType string

const (
	// InstallArchive is the default: the artifact is an archive to unpack.
	InstallArchive InstallType = "archive"
	// InstallInstaller means the artifact is a silent installer executable.
	InstallInstaller InstallType = "installer"
)

// VendorDefinition describes one installable third-party package.
// Definitions are loaded once per process from the catalog and are
// immutable thereafter.
type VendorDefinition struct {
	Key         string
	Name        string
	Description string

	// ExtractDir is the target path relative to the vendor root.
	ExtractDir string

	Required bool
	Enabled  bool

	// Dependencies lists other vendor keys that must be installed first.
	// The keys form a DAG; cycles are a configuration error.
	Dependencies []string

	Source SourceConfig

	// FallbackURL is used when primary resolution fails. Empty means no fallback.
	FallbackURL string

	Checksum *ChecksumInfo

	InstallType InstallType
	// InstallerArgs overrides the built-in installer hint table when set.
	// %TARGETDIR% and $TARGETDIR placeholders are substituted.
	InstallerArgs []string
}

// SourceConfig holds the per-strategy fields for source resolution.
// Only the fields for the configured Type are meaningful.
type SourceConfig struct {
	Type SourceType

	// Static URL fields.
	URL      string
	FileName string

	// GitHub release fields. AssetPattern must appear in the asset name;
	// AssetPatternEnd, when set, must additionally suffix it. Two patterns
	// exist because some publishers embed a version number between a fixed
	// prefix and suffix (e.g. Product_<version>_x64.zip).
	Owner           string
	Repo            string
	AssetPattern    string
	AssetPatternEnd string

	// Web scrape fields. LinkPattern is a regex with one capture group
	// extracting a relative or absolute link from PageURL's body; relative
	// links are joined against BaseURL.
	PageURL     string
	LinkPattern string
	BaseURL     string
}

// ChecksumInfo configures integrity verification for a downloaded artifact.
type ChecksumInfo struct {
	// Algorithm is one of sha256, sha512, sha384, sha1, md5.
	Algorithm string
	// Value is the expected digest in hex.
	Value string
	// Required makes a mismatch fatal for the vendor; otherwise it is
	// warning-only (advisory checksums for legacy/uncertain sources).
	Required bool
}

// ResolvedSource is the output of source resolution: a concrete download
// URL and the file name to store the artifact under. Transient, not persisted.
type ResolvedSource struct {
	URL      string
	FileName string
}

// Validate reports structural problems in a vendor definition.
func (v *VendorDefinition) Validate() error {
	if v.Key == "" {
		return fmt.Errorf("vendor must have a key")
	}
	if v.ExtractDir == "" {
		return fmt.Errorf("vendor %s must have an extractDir", v.Key)
	}
	switch v.Source.Type {
	case SourceStaticURL:
		if v.Source.URL == "" {
			return fmt.Errorf("vendor %s: static source requires a url", v.Key)
		}
	case SourceGitHubRelease:
		if v.Source.Owner == "" || v.Source.Repo == "" {
			return fmt.Errorf("vendor %s: github source requires owner and repo", v.Key)
		}
		if v.Source.AssetPattern == "" {
			return fmt.Errorf("vendor %s: github source requires an assetPattern", v.Key)
		}
	case SourceWebScrape:
		if v.Source.PageURL == "" || v.Source.LinkPattern == "" {
			return fmt.Errorf("vendor %s: web-scrape source requires pageUrl and linkPattern", v.Key)
		}
	default:
		return fmt.Errorf("vendor %s: unknown source type %q", v.Key, v.Source.Type)
	}
	if v.Checksum != nil && v.Checksum.Value != "" {
		if _, ok := SupportedChecksumAlgorithms[v.Checksum.Algorithm]; !ok {
			return fmt.Errorf("vendor %s: unsupported checksum algorithm %q", v.Key, v.Checksum.Algorithm)
		}
	}
	return nil
}

// SupportedChecksumAlgorithms enumerates the digest algorithms the
// verifier implements.
var SupportedChecksumAlgorithms = map[string]struct{}{
	"sha256": {},
	"sha512": {},
	"sha384": {},
	"sha1":   {},
	"md5":    {},
}
