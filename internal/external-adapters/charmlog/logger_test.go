package charmlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)

	logger.Info("vendor installed", interfaces.F("vendor", "nushell"))

	out := buf.String()
	if !strings.Contains(out, "vendor installed") {
		t.Errorf("message missing from output: %s", out)
	}
	if !strings.Contains(out, "nushell") {
		t.Errorf("field value missing from output: %s", out)
	}
}

func TestLoggerDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)

	logger.Debug("noisy detail")
	if buf.Len() != 0 {
		t.Errorf("debug output should be suppressed: %s", buf.String())
	}
}

func TestLoggerVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true)

	logger.Debug("noisy detail")
	if !strings.Contains(buf.String(), "noisy detail") {
		t.Errorf("verbose logger should emit debug: %s", buf.String())
	}
}
