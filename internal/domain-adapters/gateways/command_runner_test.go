package gateways

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestProcessRunnerCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	r := NewProcessRunner()
	result := r.Run(context.Background(), RunSpec{
		Path: "/bin/sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})

	if !result.Success {
		t.Fatalf("expected success, got %v (stderr: %s)", result.Err, result.Stderr)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
	if strings.TrimSpace(result.Stdout) != "out" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "out")
	}
	if strings.TrimSpace(result.Stderr) != "err" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "err")
	}
}

func TestProcessRunnerNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	r := NewProcessRunner()
	result := r.Run(context.Background(), RunSpec{
		Path: "/bin/sh",
		Args: []string{"-c", "exit 3"},
	})

	if result.Success {
		t.Error("expected failure for non-zero exit")
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestProcessRunnerScopedEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	r := NewProcessRunner()
	result := r.Run(context.Background(), RunSpec{
		Path: "/bin/sh",
		Args: []string{"-c", "echo $TOOLCRATE_TEST_VAR"},
		Env:  []string{"TOOLCRATE_TEST_VAR=scoped"},
	})

	if !result.Success {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if strings.TrimSpace(result.Stdout) != "scoped" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "scoped")
	}
}

func TestProcessRunnerTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	r := NewProcessRunner()
	result := r.Run(context.Background(), RunSpec{
		Path:    "/bin/sh",
		Args:    []string{"-c", "sleep 10"},
		Timeout: 100 * time.Millisecond,
	})

	if result.Success {
		t.Error("expected timeout failure")
	}
	if result.Err == nil {
		t.Error("expected an error after timeout")
	}
}

func TestProcessRunnerMissingBinary(t *testing.T) {
	r := NewProcessRunner()
	result := r.Run(context.Background(), RunSpec{
		Path: "/nonexistent/binary",
	})

	if result.Success {
		t.Error("expected failure for missing binary")
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", result.ExitCode)
	}
}
