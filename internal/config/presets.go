package config

// Presets are ready-made scenarios. "coarse" and "fine" differ only in the
// tick profile; the rest exercise the plant in specific regimes.
var Presets = map[string]func() *Config{
	"coarse": func() *Config {
		cfg := DefaultConfig()
		cfg.Dt = DefaultDt
		return cfg
	},
	"fine": func() *Config {
		cfg := DefaultConfig()
		cfg.Dt = FineDt
		return cfg
	},
	"hover": func() *Config {
		// Hold the payload mid-string under closed-loop control.
		cfg := DefaultConfig()
		cfg.Dt = FineDt
		cfg.Controller.SetPoint = cfg.Pulley.FreeStringLength / 2
		return cfg
	},
	"sink": func() *Config {
		// Open loop, payload heavy: drives into the lower clamp.
		cfg := DefaultConfig()
		cfg.Controller.Enabled = false
		cfg.Pulley.PayloadMass = 30
		cfg.Pulley.InitialBallonetVolume = 0
		return cfg
	},
	"lift": func() *Config {
		// Open loop, counterweight heavy: drives into the disk clamp.
		cfg := DefaultConfig()
		cfg.Controller.Enabled = false
		cfg.Pulley.CounterweightMass = 40
		cfg.Pulley.InitialBallonetVolume = 0
		return cfg
	},
}

// GetPreset returns a fresh config for a named preset, or nil.
func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
