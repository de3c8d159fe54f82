package gateways

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// RunSpec describes a child process invocation.
type RunSpec struct {
	Path string
	Args []string
	Dir  string

	// Env entries (KEY=VALUE) appended to the inherited environment for
	// this invocation only; the parent process environment is untouched.
	Env []string

	// Timeout of zero means no limit beyond the caller's context.
	Timeout time.Duration
}

// RunResult captures the outcome of a completed (or failed) invocation.
type RunResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error
}

// Runner executes child processes. Extraction strategies depend on this
// interface so tests can substitute a fake.
type Runner interface {
	Run(ctx context.Context, spec RunSpec) *RunResult
}

// ProcessRunner runs child processes via os/exec. Both output pipes are
// drained concurrently before Wait: an installer that fills a pipe while
// the parent is blocked in Wait deadlocks otherwise.
type ProcessRunner struct{}

// NewProcessRunner creates a new process runner.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run starts the described process and blocks until it exits, the timeout
// elapses, or ctx is canceled.
func (p *ProcessRunner) Run(ctx context.Context, spec RunSpec) *RunResult {
	start := time.Now()

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	//nolint:gosec // G204: command path and args come from the extraction strategies
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(cmd.Environ(), spec.Env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return failedResult(start, fmt.Errorf("failed to open stdout pipe: %w", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return failedResult(start, fmt.Errorf("failed to open stderr pipe: %w", err))
	}

	if err := cmd.Start(); err != nil {
		return failedResult(start, fmt.Errorf("failed to start %s: %w", spec.Path, err))
	}

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go drain(&wg, &outBuf, stdout)
	go drain(&wg, &errBuf, stderr)
	wg.Wait()

	waitErr := cmd.Wait()

	result := &RunResult{
		Success:  waitErr == nil,
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		Duration: time.Since(start),
		Err:      waitErr,
	}

	if ctxErr := ctx.Err(); ctxErr != nil && waitErr != nil {
		result.Err = fmt.Errorf("%s: %w", spec.Path, ctxErr)
	}

	return result
}

func drain(wg *sync.WaitGroup, dst *bytes.Buffer, src io.Reader) {
	defer wg.Done()
	//nolint:errcheck,gosec // G104: Pipe read errors surface through Wait
	io.Copy(dst, src)
}

func failedResult(start time.Time, err error) *RunResult {
	return &RunResult{
		Success:  false,
		ExitCode: -1,
		Duration: time.Since(start),
		Err:      err,
	}
}
