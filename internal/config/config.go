// Package config loads and saves yaml run configuration files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Harsh-Sinha/n-body-simulation/internal/sim"
)

// Config mirrors sim.Config with the file paths a full run needs.
type Config struct {
	Dt                     float64 `yaml:"dt"`
	Length                 float64 `yaml:"length"`
	Theta                  float64 `yaml:"theta"`
	Softening              float64 `yaml:"softening"`
	MaxPointsPerNode       int     `yaml:"max_points_per_node"`
	BulkPartitionThreshold int     `yaml:"bulk_partition_threshold"`
	Workers                int     `yaml:"workers"`
	Parallel               bool    `yaml:"parallel"`

	// Input is the particle config file, Output the playback file to
	// write.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Default returns a config with the simulation defaults filled in.
func Default() *Config {
	base := sim.DefaultConfig()
	return &Config{
		Theta:                  base.Theta,
		Softening:              base.Softening,
		MaxPointsPerNode:       base.MaxPointsPerNode,
		BulkPartitionThreshold: base.BulkPartitionThreshold,
		Workers:                base.Workers,
		Parallel:               base.Parallel,
	}
}

// Load reads a yaml config from path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as yaml to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write config %s: %w", path, err)
	}
	return nil
}

// SimConfig maps the file onto the simulation knobs.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:                     c.Dt,
		Length:                 c.Length,
		Theta:                  c.Theta,
		Softening:              c.Softening,
		MaxPointsPerNode:       c.MaxPointsPerNode,
		BulkPartitionThreshold: c.BulkPartitionThreshold,
		Workers:                c.Workers,
		Parallel:               c.Parallel,
	}
}
