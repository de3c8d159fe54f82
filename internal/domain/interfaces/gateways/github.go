// Package gateways defines interfaces for external service adapters.
package gateways

import "context"

// GitHubRelease represents a GitHub release
type GitHubRelease struct {
	ID          int64
	TagName     string
	Name        string
	Draft       bool
	Prerelease  bool
	PublishedAt string
	Assets      []GitHubAsset
}

// GitHubAsset represents a downloadable release asset
type GitHubAsset struct {
	ID                 int64
	Name               string
	Size               int64
	BrowserDownloadURL string
}

// GitHubGateway defines the operations source resolution needs from the
// GitHub releases API.
type GitHubGateway interface {
	// LatestRelease returns the most recently published release,
	// including prereleases but excluding drafts.
	LatestRelease(ctx context.Context, owner, repo string) (*GitHubRelease, error)
}
