package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

func weztermDef() *entities.VendorDefinition {
	return &entities.VendorDefinition{Key: "wezterm", Name: "WezTerm", ExtractDir: "wezterm"}
}

func TestConfigureTerminalWritesMarkerAndSettings(t *testing.T) {
	target := t.TempDir()
	c := NewPostInstallConfigurator("", &interfaces.NoOpLogger{})

	if err := c.Configure(weztermDef(), target); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, ".portable")); err != nil {
		t.Errorf("portable marker missing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, "settings.json")) //nolint:gosec // G304: test temp path
	if err != nil {
		t.Fatalf("settings missing: %v", err)
	}
	if strings.Contains(string(data), "%INSTALL_ROOT%") {
		t.Error("placeholder not substituted")
	}
	if !strings.Contains(string(data), "check_for_updates") {
		t.Error("default template content missing")
	}
}

func TestConfigureTerminalKeepsExistingSettings(t *testing.T) {
	target := t.TempDir()
	userSettings := `{"font_size": 16.0}`
	if err := os.WriteFile(filepath.Join(target, "settings.json"), []byte(userSettings), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := NewPostInstallConfigurator("", &interfaces.NoOpLogger{})
	if err := c.Configure(weztermDef(), target); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(target, "settings.json")) //nolint:gosec // G304: test temp path
	if string(data) != userSettings {
		t.Error("existing settings were clobbered")
	}
}

func TestConfigureTerminalUsesTemplateDir(t *testing.T) {
	templateDir := t.TempDir()
	template := `{"theme": "dark", "root": "%INSTALL_ROOT%"}`
	if err := os.WriteFile(filepath.Join(templateDir, "wezterm-settings.json"), []byte(template), 0600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	target := t.TempDir()
	c := NewPostInstallConfigurator(templateDir, &interfaces.NoOpLogger{})
	if err := c.Configure(weztermDef(), target); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, "settings.json")) //nolint:gosec // G304: test temp path
	if err != nil {
		t.Fatalf("settings missing: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"theme": "dark"`) {
		t.Errorf("template content missing: %s", got)
	}
	if strings.Contains(got, "%INSTALL_ROOT%") {
		t.Error("placeholder not substituted in template")
	}
}

func TestConfigureOtherVendorsNoOp(t *testing.T) {
	target := t.TempDir()
	c := NewPostInstallConfigurator("", &interfaces.NoOpLogger{})

	def := &entities.VendorDefinition{Key: "7zip", ExtractDir: "7zip"}
	if err := c.Configure(def, target); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("no files should be written for %s, found %d", def.Key, len(entries))
	}
}
