// Package gateways provides adapters for network, filesystem, and
// child-process concerns used by the installation pipeline.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ochairo/toolcrate/internal/domain/interfaces"
	"github.com/ochairo/toolcrate/internal/domain/interfaces/gateways"
)

const (
	// Max retries for transient errors
	maxRetries = 3
	// Initial backoff duration
	initialBackoff = 1 * time.Second
	// Max backoff duration
	maxBackoff = 32 * time.Second

	// Upper bound on JSON API response size (10 MB).
	maxJSONResponseBytes = 10 << 20

	githubAPIVersion = "2022-11-28"
)

// HTTPGitHubGateway implements gateways.GitHubGateway using the standard
// HTTP client against the GitHub releases API.
type HTTPGitHubGateway struct {
	client    *http.Client
	baseURL   string
	token     string
	userAgent string
	logger    interfaces.Logger
}

// NewHTTPGitHubGateway creates a new GitHub gateway. The token is read
// from GITHUB_TOKEN / GH_TOKEN when present (higher rate limits).
func NewHTTPGitHubGateway(logger interfaces.Logger) *HTTPGitHubGateway {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}

	return &HTTPGitHubGateway{
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
		baseURL:   "https://api.github.com",
		token:     token,
		userAgent: "toolcrate/1.0",
		logger:    logger,
	}
}

// SetBaseURL overrides the API base URL, primarily for test servers.
func (g *HTTPGitHubGateway) SetBaseURL(base string) {
	g.baseURL = strings.TrimRight(base, "/")
}

// githubRelease is the JSON wire format for a release API response.
type githubRelease struct {
	ID          int64         `json:"id"`
	TagName     string        `json:"tag_name"`
	Name        string        `json:"name"`
	Draft       bool          `json:"draft"`
	Prerelease  bool          `json:"prerelease"`
	PublishedAt string        `json:"published_at"`
	Assets      []githubAsset `json:"assets"`
}

// githubAsset is the JSON wire format for a release asset.
type githubAsset struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// LatestRelease returns the most recently published release, including
// prereleases but excluding drafts. The /releases/latest endpoint skips
// prereleases, so the release list is queried instead and the first
// non-draft entry wins (the API returns newest first).
func (g *HTTPGitHubGateway) LatestRelease(ctx context.Context, owner, repo string) (*gateways.GitHubRelease, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=10", g.baseURL, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	req.Header.Set("User-Agent", g.userAgent)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.doWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("GitHub API request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("GitHub API error %d: %s", resp.StatusCode, string(body))
	}

	var apiReleases []githubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&apiReleases); err != nil {
		return nil, fmt.Errorf("failed to decode releases: %w", err)
	}

	for i := range apiReleases {
		if apiReleases[i].Draft {
			continue
		}
		return toRelease(&apiReleases[i]), nil
	}

	return nil, fmt.Errorf("no published releases found for %s/%s", owner, repo)
}

func toRelease(r *githubRelease) *gateways.GitHubRelease {
	assets := make([]gateways.GitHubAsset, len(r.Assets))
	for i, a := range r.Assets {
		assets[i] = gateways.GitHubAsset{
			ID:                 a.ID,
			Name:               a.Name,
			Size:               a.Size,
			BrowserDownloadURL: a.BrowserDownloadURL,
		}
	}

	return &gateways.GitHubRelease{
		ID:          r.ID,
		TagName:     r.TagName,
		Name:        r.Name,
		Draft:       r.Draft,
		Prerelease:  r.Prerelease,
		PublishedAt: r.PublishedAt,
		Assets:      assets,
	}
}

// doWithRetry executes an HTTP request with exponential backoff retry
func (g *HTTPGitHubGateway) doWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := calculateBackoff(attempt - 1)
			select {
			case <-time.After(backoff):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}

		resp, err = g.client.Do(req)
		if err != nil {
			// Network errors are retryable
			if attempt < maxRetries {
				continue
			}
			return nil, err
		}

		// Check rate limit
		if rateLimitErr := g.checkRateLimit(resp); rateLimitErr != nil {
			//nolint:errcheck,gosec // G104: Best effort close on rate limit error
			resp.Body.Close()
			return nil, rateLimitErr
		}

		// Success or non-retryable error
		if !isRetryableError(resp.StatusCode) {
			return resp, nil
		}

		// Retryable error - close body and retry
		//nolint:errcheck,gosec // G104: Best effort close before retry
		resp.Body.Close()

		if attempt < maxRetries {
			continue
		}

		// Max retries reached
		return resp, nil
	}

	return resp, err
}

// checkRateLimit checks GitHub API rate limit headers and returns an
// error if the quota is exhausted.
func (g *HTTPGitHubGateway) checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil // No rate limit header, continue
	}

	remainingInt, err := strconv.Atoi(remaining)
	if err != nil {
		return nil // Invalid header, ignore
	}

	if remainingInt == 0 {
		resetTime := resp.Header.Get("X-RateLimit-Reset")
		if resetTime != "" {
			if resetUnix, err := strconv.ParseInt(resetTime, 10, 64); err == nil {
				resetAt := time.Unix(resetUnix, 0)
				return fmt.Errorf("GitHub API rate limit exceeded (0 remaining), resets at %s", resetAt.Format(time.RFC3339))
			}
		}
		return fmt.Errorf("GitHub API rate limit exceeded (0 remaining)")
	}

	if remainingInt <= 10 {
		g.logger.Warn("GitHub API rate limit low", interfaces.F("remaining", remainingInt))
	}

	return nil
}

// isRetryableError checks if an HTTP status code is retryable
func isRetryableError(statusCode int) bool {
	switch statusCode {
	case http.StatusForbidden, // 403 - rate limit
		http.StatusTooManyRequests,     // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	default:
		return false
	}
}

// calculateBackoff returns the backoff duration for a retry attempt
func calculateBackoff(attempt int) time.Duration {
	backoff := float64(initialBackoff) * math.Pow(2, float64(attempt))
	if backoff > float64(maxBackoff) {
		backoff = float64(maxBackoff)
	}
	return time.Duration(backoff)
}
