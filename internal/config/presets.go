package config

// Presets are ready-made run configurations. "movie" suits frame
// dumping: few circles, many iterations.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"quick": {
		N: 500, Iterations: 10,
		Field: DefaultConfig().Field,
	},
	"movie": {
		N: 200, Iterations: 500,
		Field: DefaultConfig().Field,
	},
	"dense": {
		N: 2000, Iterations: 50,
		Field: FieldConfig{
			XMin: 0, XMax: 500,
			YMin: 0, YMax: 500,
			RMin: 10, RMax: 50,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
