package entities

import "time"

// ExtractionResult reports the outcome of one extraction attempt.
type ExtractionResult struct {
	Success bool
	Message string
}

// VerificationResult reports the outcome of checksum verification.
// Skipped is true when the vendor configures no checksum value;
// verification is opt-in per vendor.
type VerificationResult struct {
	Success  bool
	Skipped  bool
	Expected string
	Actual   string
	Message  string
}

// InstallResult is the per-vendor outcome recorded by the orchestrator.
type InstallResult struct {
	Key      string
	Success  bool
	Skipped  bool // already installed, pipeline not run
	Message  string
	Duration time.Duration

	// Order is the position in which the vendor was processed within
	// its batch, dependencies before dependents.
	Order int
}

// BatchResult aggregates the outcomes of one install batch.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Results   []InstallResult
}

// FailureCount returns the number of failed vendors, consumed by the
// command layer to set the process exit code.
func (b *BatchResult) FailureCount() int {
	return b.Failed
}
