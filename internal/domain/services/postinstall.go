// Package services contains domain logic that is independent of any
// adapter technology.
package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

// defaultTerminalSettings is written when no settings template is
// provided. %INSTALL_ROOT% is substituted with the vendor target.
const defaultTerminalSettings = `{
  "default_prog": ["%INSTALL_ROOT%\\..\\nushell\\nu.exe"],
  "check_for_updates": false,
  "font_size": 11.0,
  "hide_tab_bar_if_only_one_tab": true
}
`

// PostInstallConfigurator applies vendor-specific finishing touches after
// extraction. Configuration failures never fail the install; the vendor
// works with its own defaults.
type PostInstallConfigurator struct {
	templateDir string
	logger      interfaces.Logger
}

// NewPostInstallConfigurator creates a configurator. templateDir holds
// optional per-vendor settings templates; empty means built-ins only.
func NewPostInstallConfigurator(templateDir string, logger interfaces.Logger) *PostInstallConfigurator {
	return &PostInstallConfigurator{templateDir: templateDir, logger: logger}
}

// Configure runs the post-install step for the vendor, if any. Most
// vendors need none.
func (c *PostInstallConfigurator) Configure(def *entities.VendorDefinition, targetDir string) error {
	switch def.Key {
	case "wezterm":
		return c.configureTerminal(def, targetDir)
	default:
		return nil
	}
}

// configureTerminal switches the terminal emulator to portable mode and
// seeds its settings so state stays inside the vendor tree.
func (c *PostInstallConfigurator) configureTerminal(def *entities.VendorDefinition, targetDir string) error {
	marker := filepath.Join(targetDir, ".portable")
	if err := os.WriteFile(marker, nil, 0600); err != nil {
		return fmt.Errorf("failed to write portable marker: %w", err)
	}

	settingsPath := filepath.Join(targetDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		// Existing settings are user state; never clobber them.
		c.logger.Debug("settings already present, keeping",
			interfaces.F("vendor", def.Key))
		return nil
	}

	template, err := c.loadTemplate(def.Key)
	if err != nil {
		return err
	}

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("failed to resolve target directory: %w", err)
	}
	content := strings.ReplaceAll(template, "%INSTALL_ROOT%", absTarget)

	if err := os.WriteFile(settingsPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	c.logger.Debug("terminal configured for portable mode",
		interfaces.F("vendor", def.Key))
	return nil
}

// loadTemplate returns the on-disk template for the vendor when one is
// configured, otherwise the built-in default.
func (c *PostInstallConfigurator) loadTemplate(key string) (string, error) {
	if c.templateDir == "" {
		return defaultTerminalSettings, nil
	}

	path := filepath.Join(c.templateDir, key+"-settings.json")
	//nolint:gosec // G304: template path is operator-configured
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultTerminalSettings, nil
		}
		return "", fmt.Errorf("failed to read settings template: %w", err)
	}
	return string(data), nil
}
