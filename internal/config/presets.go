package config

import "sort"

var Presets = map[string]*Config{
	"slow": {
		Speed: 0.5, IntervalMs: 1500, Language: "javascript", Theme: "minimal",
		DataDir: DefaultDataDir, LogLevel: DefaultLogLevel, Console: true,
	},
	"normal": {
		Speed: 1.0, IntervalMs: 1000, Language: "javascript", Theme: "cyberpunk",
		DataDir: DefaultDataDir, LogLevel: DefaultLogLevel, Console: true,
	},
	"fast": {
		Speed: 3.0, IntervalMs: 500, Language: "javascript", Theme: "retro",
		DataDir: DefaultDataDir, LogLevel: DefaultLogLevel, Console: false,
	},
	"lecture": {
		Speed: 0.5, IntervalMs: 2000, Language: "python", Theme: "ocean",
		DataDir: DefaultDataDir, LogLevel: DefaultLogLevel, Console: true,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
