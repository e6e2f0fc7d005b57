package config

import "github.com/san-kum/motorlab/internal/engine"

var Presets = map[string]*Config{
	"step": {
		CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: 1500,
		Dt: engine.DefaultDt, Horizon: engine.DefaultHorizon,
		RefHold: engine.DefaultRefHold, SatFactor: engine.DefaultSatFactor,
		DampingDiv: engine.DefaultDampingDiv,
	},
	"gentle": {
		CurrentBandwidth: 100, SpeedBandwidth: 5, ReferenceRPM: 600,
		Dt: engine.DefaultDt, Horizon: engine.DefaultHorizon,
		RefHold: engine.DefaultRefHold, SatFactor: engine.DefaultSatFactor,
		DampingDiv: engine.DefaultDampingDiv,
	},
	"saturating": {
		CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: 6000,
		Dt: engine.DefaultDt, Horizon: engine.DefaultHorizon,
		RefHold: engine.DefaultRefHold, SatFactor: engine.DefaultSatFactor,
		DampingDiv: engine.DefaultDampingDiv,
	},
	"reverse": {
		CurrentBandwidth: 200, SpeedBandwidth: 10, ReferenceRPM: -1500,
		Dt: engine.DefaultDt, Horizon: engine.DefaultHorizon,
		RefHold: engine.DefaultRefHold, SatFactor: engine.DefaultSatFactor,
		DampingDiv: engine.DefaultDampingDiv,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
