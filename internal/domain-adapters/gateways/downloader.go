package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

const (
	// downloadChunkSize bounds how much of the response body is held in
	// memory at a time.
	downloadChunkSize = 32 * 1024

	// progressStepPercent is the coarse reporting interval.
	progressStepPercent = 10
)

// Downloader streams HTTP downloads to disk with progress reporting.
type Downloader struct {
	httpClient *http.Client
	headers    map[string]string
	userAgent  string
	logger     interfaces.Logger
}

// NewDownloader creates a new downloader.
func NewDownloader(logger interfaces.Logger) *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // Long timeout for large downloads
		},
		headers:   make(map[string]string),
		userAgent: "toolcrate/1.0",
		logger:    logger,
	}
}

// SetHeader attaches a custom header (e.g. API version, auth token for
// higher rate limits) to every subsequent request.
func (d *Downloader) SetHeader(key, value string) {
	d.headers[key] = value
}

// DownloadFile streams an HTTP GET for url to destPath, creating parent
// directories as needed. On any failure no partial file is left behind:
// the body is written to a temporary sibling and renamed into place only
// after the full copy succeeds.
func (d *Downloader) DownloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)
	for key, value := range d.headers {
		req.Header.Set(key, value)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	tmpPath := destPath + ".partial"
	//nolint:gosec // G304: destination path comes from the orchestrator
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, copyErr := d.copyWithProgress(ctx, out, resp.Body, resp.ContentLength, filepath.Base(destPath))
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}

	// Content-Length mismatch means a silently truncated body; treat it
	// as a failed download rather than leaving a short file.
	if copyErr == nil && resp.ContentLength > 0 && written != resp.ContentLength {
		copyErr = fmt.Errorf("short download: got %d of %d bytes", written, resp.ContentLength)
	}

	if copyErr != nil {
		//nolint:errcheck,gosec // G104: Best effort cleanup of the partial file
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file: %w", copyErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		//nolint:errcheck,gosec // G104: Best effort cleanup of the partial file
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize download: %w", err)
	}

	d.logger.Debug("download complete",
		interfaces.F("file", filepath.Base(destPath)),
		interfaces.F("bytes", written))
	return nil
}

// copyWithProgress streams body to out in bounded chunks, logging
// percentage progress at coarse intervals when the total size is known.
func (d *Downloader) copyWithProgress(ctx context.Context, out io.Writer, body io.Reader, total int64, name string) (int64, error) {
	buf := make([]byte, downloadChunkSize)
	var written int64
	lastReported := 0

	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			wn, writeErr := out.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, writeErr
			}
			if wn != n {
				return written, io.ErrShortWrite
			}

			if total > 0 {
				percent := int(written * 100 / total)
				if percent >= lastReported+progressStepPercent {
					lastReported = percent - percent%progressStepPercent
					d.logger.Info("downloading",
						interfaces.F("file", name),
						interfaces.F("percent", lastReported))
				}
			}
		}

		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
