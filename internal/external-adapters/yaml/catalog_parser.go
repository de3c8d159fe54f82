// Package yaml provides YAML-based catalog parsing and repository implementations.
package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlCatalog represents the raw YAML structure
type yamlCatalog struct {
	Vendors []yamlVendor `yaml:"vendors"`
}

type yamlVendor struct {
	Key           string       `yaml:"key"`
	Name          string       `yaml:"name"`
	Description   string       `yaml:"description"`
	ExtractDir    string       `yaml:"extract_dir"`
	Required      bool         `yaml:"required"`
	Enabled       *bool        `yaml:"enabled"`
	Dependencies  []string     `yaml:"dependencies"`
	Source        yamlSource   `yaml:"source"`
	FallbackURL   string       `yaml:"fallback_url"`
	Checksum      yamlChecksum `yaml:"checksum"`
	InstallType   string       `yaml:"install_type"`
	InstallerArgs []string     `yaml:"installer_args"`
}

type yamlSource struct {
	Type            string `yaml:"type"`
	URL             string `yaml:"url"`
	FileName        string `yaml:"file_name"`
	Owner           string `yaml:"owner"`
	Repo            string `yaml:"repo"`
	AssetPattern    string `yaml:"asset_pattern"`
	AssetPatternEnd string `yaml:"asset_pattern_end"`
	PageURL         string `yaml:"page_url"`
	LinkPattern     string `yaml:"link_pattern"`
	BaseURL         string `yaml:"base_url"`
}

type yamlChecksum struct {
	Algorithm string `yaml:"algorithm"`
	Value     string `yaml:"value"`
	Required  bool   `yaml:"required"`
}

// CatalogParser parses YAML catalog files
type CatalogParser struct{}

// NewCatalogParser creates a new YAML parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// ParseFile parses a YAML catalog file into vendor definitions
func (p *CatalogParser) ParseFile(filePath string) ([]*entities.VendorDefinition, error) {
	//nolint:gosec // G304: filePath is the operator-configured catalog path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into validated vendor definitions
func (p *CatalogParser) Parse(data []byte) ([]*entities.VendorDefinition, error) {
	var catalog yamlCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	vendors := make([]*entities.VendorDefinition, 0, len(catalog.Vendors))
	for i := range catalog.Vendors {
		vendors = append(vendors, convertVendor(&catalog.Vendors[i]))
	}

	if err := ValidateCatalog(vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

func convertVendor(yv *yamlVendor) *entities.VendorDefinition {
	// Vendors are enabled unless the catalog says otherwise.
	enabled := true
	if yv.Enabled != nil {
		enabled = *yv.Enabled
	}

	installType := entities.InstallType(yv.InstallType)
	if installType == "" {
		installType = entities.InstallArchive
	}

	def := &entities.VendorDefinition{
		Key:          yv.Key,
		Name:         yv.Name,
		Description:  yv.Description,
		ExtractDir:   yv.ExtractDir,
		Required:     yv.Required,
		Enabled:      enabled,
		Dependencies: yv.Dependencies,
		Source: entities.SourceConfig{
			Type:            entities.SourceType(yv.Source.Type),
			URL:             yv.Source.URL,
			FileName:        yv.Source.FileName,
			Owner:           yv.Source.Owner,
			Repo:            yv.Source.Repo,
			AssetPattern:    yv.Source.AssetPattern,
			AssetPatternEnd: yv.Source.AssetPatternEnd,
			PageURL:         yv.Source.PageURL,
			LinkPattern:     yv.Source.LinkPattern,
			BaseURL:         yv.Source.BaseURL,
		},
		FallbackURL:   yv.FallbackURL,
		InstallType:   installType,
		InstallerArgs: yv.InstallerArgs,
	}

	if yv.Checksum.Value != "" {
		def.Checksum = &entities.ChecksumInfo{
			Algorithm: yv.Checksum.Algorithm,
			Value:     yv.Checksum.Value,
			Required:  yv.Checksum.Required,
		}
	}

	return def
}

// ValidateCatalog checks the catalog as a whole: every definition is
// structurally valid, keys are unique, and the dependency graph is a DAG
// over known keys.
func ValidateCatalog(vendors []*entities.VendorDefinition) error {
	byKey := make(map[string]*entities.VendorDefinition, len(vendors))
	for _, v := range vendors {
		if err := v.Validate(); err != nil {
			return err
		}
		if _, dup := byKey[v.Key]; dup {
			return fmt.Errorf("duplicate vendor key %s", v.Key)
		}
		byKey[v.Key] = v
	}

	for _, v := range vendors {
		for _, dep := range v.Dependencies {
			if _, ok := byKey[dep]; !ok {
				return fmt.Errorf("vendor %s depends on unknown vendor %s", v.Key, dep)
			}
		}
	}

	// Depth-first cycle check over the dependency graph.
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(vendors))
	var visit func(key string) error
	visit = func(key string) error {
		switch color[key] {
		case gray:
			return fmt.Errorf("dependency cycle involving vendor %s", key)
		case black:
			return nil
		}
		color[key] = gray
		for _, dep := range byKey[key].Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		color[key] = black
		return nil
	}
	for _, v := range vendors {
		if err := visit(v.Key); err != nil {
			return err
		}
	}

	return nil
}
