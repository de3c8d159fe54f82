package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
	"github.com/ochairo/toolcrate/internal/domain/interfaces/gateways"
)

// maxScrapeBytes bounds how much of an HTML index page is read.
const maxScrapeBytes = 4 << 20

// SourceResolver turns an abstract vendor description into a concrete
// download URL and file name, failing over to the vendor's fallback URL
// when primary resolution fails.
type SourceResolver struct {
	github     gateways.GitHubGateway
	httpClient *http.Client
	logger     interfaces.Logger
}

// NewSourceResolver creates a resolver backed by the given GitHub gateway.
func NewSourceResolver(github gateways.GitHubGateway, logger interfaces.Logger) *SourceResolver {
	return &SourceResolver{
		github: github,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Resolve produces a ResolvedSource for the vendor. Resolution failures
// fall back to the vendor's FallbackURL; only when that is also absent
// does Resolve return an error.
func (r *SourceResolver) Resolve(ctx context.Context, def *entities.VendorDefinition) (*entities.ResolvedSource, error) {
	var (
		resolved *entities.ResolvedSource
		err      error
	)

	switch def.Source.Type {
	case entities.SourceStaticURL:
		resolved, err = r.resolveStatic(def)
	case entities.SourceGitHubRelease:
		resolved, err = r.resolveGitHubRelease(ctx, def)
	case entities.SourceWebScrape:
		resolved, err = r.resolveWebScrape(ctx, def)
	default:
		err = fmt.Errorf("unknown source type %q", def.Source.Type)
	}

	if err == nil {
		return resolved, nil
	}

	if def.FallbackURL == "" {
		return nil, fmt.Errorf("failed to resolve source for %s: %w", def.Key, err)
	}

	r.logger.Warn("primary resolution failed, using fallback URL",
		interfaces.F("vendor", def.Key),
		interfaces.F("error", err.Error()))

	return &entities.ResolvedSource{
		URL:      def.FallbackURL,
		FileName: fileNameFromURL(def.FallbackURL),
	}, nil
}

// resolveStatic uses the configured URL directly; no resolution needed.
func (r *SourceResolver) resolveStatic(def *entities.VendorDefinition) (*entities.ResolvedSource, error) {
	fileName := def.Source.FileName
	if fileName == "" {
		fileName = fileNameFromURL(def.Source.URL)
	}
	if fileName == "" {
		return nil, fmt.Errorf("cannot derive file name from URL %q", def.Source.URL)
	}

	return &entities.ResolvedSource{URL: def.Source.URL, FileName: fileName}, nil
}

// resolveGitHubRelease queries the latest release (including prereleases)
// and scans its asset list for the configured name patterns.
func (r *SourceResolver) resolveGitHubRelease(ctx context.Context, def *entities.VendorDefinition) (*entities.ResolvedSource, error) {
	release, err := r.github.LatestRelease(ctx, def.Source.Owner, def.Source.Repo)
	if err != nil {
		return nil, err
	}

	asset := matchAsset(release.Assets, def.Source.AssetPattern, def.Source.AssetPatternEnd)
	if asset == nil {
		return nil, fmt.Errorf("no asset matching %q in release %s of %s/%s",
			def.Source.AssetPattern, release.TagName, def.Source.Owner, def.Source.Repo)
	}

	r.logger.Debug("resolved release asset",
		interfaces.F("vendor", def.Key),
		interfaces.F("tag", release.TagName),
		interfaces.F("asset", asset.Name))

	return &entities.ResolvedSource{URL: asset.BrowserDownloadURL, FileName: asset.Name}, nil
}

// matchAsset picks the first asset whose name contains pattern and, when
// patternEnd is set, also ends with it. Matching is case-insensitive:
// publishers vary casing between releases.
func matchAsset(assets []gateways.GitHubAsset, pattern, patternEnd string) *gateways.GitHubAsset {
	lowerPattern := strings.ToLower(pattern)
	lowerEnd := strings.ToLower(patternEnd)

	for i := range assets {
		name := strings.ToLower(assets[i].Name)
		if !strings.Contains(name, lowerPattern) {
			continue
		}
		if lowerEnd != "" && !strings.HasSuffix(name, lowerEnd) {
			continue
		}
		return &assets[i]
	}
	return nil
}

// resolveWebScrape fetches an HTML index page, applies a single regex
// with one capture group to extract a link, and joins it against the
// configured base URL. Used for publishers with no API.
func (r *SourceResolver) resolveWebScrape(ctx context.Context, def *entities.VendorDefinition) (*entities.ResolvedSource, error) {
	re, err := regexp.Compile(def.Source.LinkPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid link pattern: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, def.Source.PageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "toolcrate/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScrapeBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	matches := re.FindSubmatch(body)
	if len(matches) < 2 {
		return nil, fmt.Errorf("no link matching pattern %q on %s", def.Source.LinkPattern, def.Source.PageURL)
	}

	link := string(matches[1])
	resolved, err := joinURL(def.Source.BaseURL, link)
	if err != nil {
		return nil, err
	}

	return &entities.ResolvedSource{URL: resolved, FileName: fileNameFromURL(resolved)}, nil
}

// joinURL resolves a possibly-relative link against a base URL.
func joinURL(base, link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", link, err)
	}
	if ref.IsAbs() {
		return link, nil
	}
	if base == "" {
		return "", fmt.Errorf("relative link %q with no base URL configured", link)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	return baseURL.ResolveReference(ref).String(), nil
}

// fileNameFromURL extracts the last path segment of a URL, without any
// query string.
func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(u.Path)
}
