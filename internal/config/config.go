package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Adapter  string        `toml:"adapter"`
	Region   string        `toml:"region"`
	Profile  string        `toml:"profile"`
	ReadOnly bool          `toml:"read_only"`
	LogLevel string        `toml:"log_level"`
	Timeouts TimeoutConfig `toml:"timeouts"`
}

type TimeoutConfig struct {
	DefaultSeconds int            `toml:"default_seconds"`
	MaxSeconds     int            `toml:"max_seconds"`
	PerTool        map[string]int `toml:"per_tool"`
}

type Overrides struct {
	Adapter  *string
	Region   *string
	Profile  *string
	ReadOnly *bool
	LogLevel *string
}

func DefaultConfig() Config {
	return Config{
		Adapter:  "ec2",
		LogLevel: "info",
	}
}

func Load(path string, overrides Overrides) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		merge(&cfg, fileCfg)
	}
	applyOverrides(&cfg, overrides)
	return cfg, nil
}

func readFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func merge(dst *Config, src Config) {
	if src.Adapter != "" {
		dst.Adapter = src.Adapter
	}
	if src.Region != "" {
		dst.Region = src.Region
	}
	if src.Profile != "" {
		dst.Profile = src.Profile
	}
	if src.ReadOnly {
		dst.ReadOnly = src.ReadOnly
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Timeouts.DefaultSeconds > 0 {
		dst.Timeouts.DefaultSeconds = src.Timeouts.DefaultSeconds
	}
	if src.Timeouts.MaxSeconds > 0 {
		dst.Timeouts.MaxSeconds = src.Timeouts.MaxSeconds
	}
	if len(src.Timeouts.PerTool) > 0 {
		dst.Timeouts.PerTool = map[string]int{}
		for tool, seconds := range src.Timeouts.PerTool {
			dst.Timeouts.PerTool[tool] = seconds
		}
	}
}

func applyOverrides(cfg *Config, overrides Overrides) {
	if overrides.Adapter != nil {
		cfg.Adapter = *overrides.Adapter
	}
	if overrides.Region != nil {
		cfg.Region = *overrides.Region
	}
	if overrides.Profile != nil {
		cfg.Profile = *overrides.Profile
	}
	if overrides.ReadOnly != nil {
		cfg.ReadOnly = *overrides.ReadOnly
	}
	if overrides.LogLevel != nil {
		cfg.LogLevel = *overrides.LogLevel
	}
}
