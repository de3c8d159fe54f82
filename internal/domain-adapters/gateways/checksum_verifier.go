package gateways

import (
	"crypto/md5"  //nolint:gosec // G501: legacy algorithm supported for advisory checksums
	"crypto/sha1" //nolint:gosec // G505: legacy algorithm supported for advisory checksums
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/ochairo/toolcrate/internal/domain/entities"
)

// ChecksumVerifier computes and compares cryptographic digests of
// downloaded files. Pure Go, no external checksum binary needed.
type ChecksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier() *ChecksumVerifier {
	return &ChecksumVerifier{}
}

// Verify computes the digest of the file at filePath with the configured
// algorithm and compares it against the expected value. When no checksum
// value is configured the result is skipped (verification is opt-in per
// vendor). Expected and actual values are normalized before comparison.
func (v *ChecksumVerifier) Verify(filePath string, info *entities.ChecksumInfo) *entities.VerificationResult {
	if info == nil || info.Value == "" {
		return &entities.VerificationResult{
			Success: true,
			Skipped: true,
			Message: "no checksum configured",
		}
	}

	actual, err := v.Calculate(filePath, info.Algorithm)
	if err != nil {
		return &entities.VerificationResult{
			Success: false,
			Message: fmt.Sprintf("checksum computation failed: %v", err),
		}
	}

	expected := normalizeDigest(info.Value)
	if actual != expected {
		return &entities.VerificationResult{
			Success:  false,
			Expected: expected,
			Actual:   actual,
			Message:  fmt.Sprintf("checksum mismatch: expected %s, got %s", expected, actual),
		}
	}

	return &entities.VerificationResult{
		Success:  true,
		Expected: expected,
		Actual:   actual,
		Message:  "checksum verified",
	}
}

// Calculate computes the hex digest of a file with the given algorithm.
func (v *ChecksumVerifier) Calculate(filePath, algorithm string) (string, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}

	//nolint:gosec // G304: File path is the downloaded artifact under verification
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func newHash(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "sha256", "":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "sha384":
		return sha512.New384(), nil
	case "sha1":
		return sha1.New(), nil //nolint:gosec // G401: advisory-only legacy sources
	case "md5":
		return md5.New(), nil //nolint:gosec // G401: advisory-only legacy sources
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}

// normalizeDigest strips whitespace and common separators and lowercases
// the digest so published values compare structurally.
func normalizeDigest(value string) string {
	var b strings.Builder
	for _, ch := range value {
		switch ch {
		case ' ', '\t', '\n', '\r', ':', '-':
			continue
		}
		b.WriteRune(ch)
	}
	return strings.ToLower(b.String())
}
