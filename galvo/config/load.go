package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	// ApplyDefaults fills unset lens and sweep fields from Default().
	ApplyDefaults bool
}

// LoadFromFile loads a ScannerConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*ScannerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &ScannerConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if opts.ApplyDefaults {
		config.applyDefaults()
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

func (c *ScannerConfig) applyDefaults() {
	def := Default()
	if c.Lens.Model == "" {
		c.Lens.Model = def.Lens.Model
	}
	if c.Lens.K == 0 {
		c.Lens.K = def.Lens.K
	}
	if c.Beam.Direction == [3]float64{} {
		c.Beam.Direction = def.Beam.Direction
	}
	if c.Sweep.Steps == 0 {
		c.Sweep = def.Sweep
	}
}

// SaveToFile saves a ScannerConfig to a YAML file
func SaveToFile(config *ScannerConfig, path string) error {
	// Update metadata before saving
	collector, err := NewMetadataCollector()
	if err != nil {
		return fmt.Errorf("creating metadata collector: %w", err)
	}
	collector.PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
