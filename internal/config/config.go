package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/motorlab/internal/engine"
)

const (
	DefaultCurrentBandwidth = 200.0
	DefaultSpeedBandwidth   = 10.0
	DefaultReferenceRPM     = 1500.0
)

type Config struct {
	CurrentBandwidth float64 `yaml:"current_bandwidth"`
	SpeedBandwidth   float64 `yaml:"speed_bandwidth"`
	ReferenceRPM     float64 `yaml:"reference_rpm"`
	Dt               float64 `yaml:"dt"`
	Horizon          float64 `yaml:"horizon"`
	RefHold          float64 `yaml:"ref_hold"`
	SatFactor        float64 `yaml:"sat_factor"`
	DampingDiv       float64 `yaml:"damping_div"`
}

func DefaultConfig() *Config {
	return &Config{
		CurrentBandwidth: DefaultCurrentBandwidth,
		SpeedBandwidth:   DefaultSpeedBandwidth,
		ReferenceRPM:     DefaultReferenceRPM,
		Dt:               engine.DefaultDt,
		Horizon:          engine.DefaultHorizon,
		RefHold:          engine.DefaultRefHold,
		SatFactor:        engine.DefaultSatFactor,
		DampingDiv:       engine.DefaultDampingDiv,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// EngineConfig maps the file values onto the engine's run constants.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Dt:         c.Dt,
		Horizon:    c.Horizon,
		RefHold:    c.RefHold,
		SatFactor:  c.SatFactor,
		DampingDiv: c.DampingDiv,
	}
}

// Inputs maps the file values onto the per-run scalars.
func (c *Config) Inputs() engine.Inputs {
	return engine.Inputs{
		CurrentBandwidth: c.CurrentBandwidth,
		SpeedBandwidth:   c.SpeedBandwidth,
		ReferenceRPM:     c.ReferenceRPM,
	}
}
