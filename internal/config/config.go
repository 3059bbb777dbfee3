package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circlesim/internal/circles"
	"github.com/san-kum/circlesim/internal/sim"
)

const (
	DefaultN          = 10000
	DefaultIterations = 20
)

type Config struct {
	N          int         `yaml:"circles"`
	Iterations int         `yaml:"iterations"`
	Workers    int         `yaml:"workers"` // 0 means one worker per CPU
	Seed       int64       `yaml:"seed"`    // 0 means derive from wall clock
	Field      FieldConfig `yaml:"field"`
}

type FieldConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
	RMin float64 `yaml:"r_min"`
	RMax float64 `yaml:"r_max"`
}

func DefaultConfig() *Config {
	f := circles.DefaultField()
	return &Config{
		N:          DefaultN,
		Iterations: DefaultIterations,
		Field: FieldConfig{
			XMin: f.XMin, XMax: f.XMax,
			YMin: f.YMin, YMax: f.YMax,
			RMin: f.RMin, RMax: f.RMax,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.N < 0 {
		return fmt.Errorf("config: circles must be non-negative, got %d", c.N)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("config: iterations must be non-negative, got %d", c.Iterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be non-negative, got %d", c.Workers)
	}
	if c.Field.XMax < c.Field.XMin || c.Field.YMax < c.Field.YMin {
		return fmt.Errorf("config: field bounds are inverted")
	}
	if c.Field.RMin <= 0 || c.Field.RMax < c.Field.RMin {
		return fmt.Errorf("config: radius range [%f, %f] is invalid", c.Field.RMin, c.Field.RMax)
	}
	return nil
}

// SimConfig converts to the runner's configuration. Workers and Seed
// zero values are resolved by the caller before running.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		N:          c.N,
		Iterations: c.Iterations,
		Workers:    c.Workers,
		Seed:       c.Seed,
		Field: circles.Field{
			XMin: c.Field.XMin, XMax: c.Field.XMax,
			YMin: c.Field.YMin, YMax: c.Field.YMax,
			RMin: c.Field.RMin, RMax: c.Field.RMax,
		},
	}
}
