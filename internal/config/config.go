package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pulleylab/internal/pulley"
)

// ErrInvalidConfig indicates a configuration that cannot produce a valid
// simulation; it is fatal at construction.
var ErrInvalidConfig = errors.New("config: invalid config")

const (
	// DefaultDt is the coarse tick profile.
	DefaultDt = 0.06
	// FineDt is the fine tick profile used for headless runs.
	FineDt = 0.015

	DefaultDuration = 20.0
	DefaultFloor    = 100.0
	DefaultCeiling  = 0.0

	DefaultKp       = 0.8
	DefaultKi       = 0.02
	DefaultKd       = 2.5
	DefaultSetPoint = 45.0
)

// Config is the root configuration for a simulation session.
type Config struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Floor    float64 `yaml:"floor"`
	Ceiling  float64 `yaml:"ceiling"`

	Pulley     pulley.Params    `yaml:"pulley"`
	Controller ControllerConfig `yaml:"controller"`
}

// ControllerConfig holds the PID gains and target.
type ControllerConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
	SetPoint float64 `yaml:"set_point"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Floor:    DefaultFloor,
		Ceiling:  DefaultCeiling,
		Pulley:   pulley.DefaultParams(),
		Controller: ControllerConfig{
			Enabled:  true,
			Kp:       DefaultKp,
			Ki:       DefaultKi,
			Kd:       DefaultKd,
			SetPoint: DefaultSetPoint,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulation kernel must never see.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if c.Floor <= c.Ceiling {
		return fmt.Errorf("%w: floor %f must lie below ceiling %f", ErrInvalidConfig, c.Floor, c.Ceiling)
	}
	if c.Pulley.DiskRadius <= 0 {
		return fmt.Errorf("%w: disk radius must be positive", ErrInvalidConfig)
	}
	if c.Pulley.FreeStringLength <= 0 {
		return fmt.Errorf("%w: free string length must be positive", ErrInvalidConfig)
	}
	if c.Pulley.PayloadMass <= 0 || c.Pulley.CounterweightMass <= 0 {
		return fmt.Errorf("%w: masses must be positive", ErrInvalidConfig)
	}
	if c.Pulley.InitialPosition < 0 || c.Pulley.InitialPosition > c.Pulley.FreeStringLength {
		return fmt.Errorf("%w: initial position %f outside [0, %f]",
			ErrInvalidConfig, c.Pulley.InitialPosition, c.Pulley.FreeStringLength)
	}
	if c.Pulley.InitialBallonetVolume < 0 {
		return fmt.Errorf("%w: ballonet volume must not be negative", ErrInvalidConfig)
	}
	return nil
}
