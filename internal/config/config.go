package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the analyzer settings that can be supplied through a YAML
// file and overridden by command line flags.
type Config struct {
	// MainDoorZone names the zone whose door is treated as the dwelling
	// entrance. Door findings and the going-out habit check key off it.
	MainDoorZone string `yaml:"mainDoorZone"`

	// LogLevel is the default log level, optionally followed by
	// comma-separated per-package overrides ("info,causality=debug").
	LogLevel string `yaml:"logLevel"`

	// OutputFormat selects the report rendering: text, json or yaml.
	OutputFormat string `yaml:"outputFormat"`

	// FaultActor selects how the person blamed for a device fault is
	// chosen: "earliest" keeps the first person who ever entered the
	// zone, "nearest" picks the most recent entry before the fault.
	FaultActor string `yaml:"faultActor"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MainDoorZone: "hallway",
		LogLevel:     "info",
		OutputFormat: "text",
		FaultActor:   "earliest",
	}
}

// Load reads a YAML configuration file using Koanf and validates it.
// Fields absent from the file keep their defaults.
func Load(filepath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(filepath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config from %q: %w", filepath, err)
	}

	config := Default()
	if err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to parse config from %q: %w", filepath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed for %q: %w", filepath, err)
	}

	return config, nil
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	if c.MainDoorZone == "" {
		return fmt.Errorf("mainDoorZone must not be empty")
	}
	switch c.OutputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (expected text, json or yaml)", c.OutputFormat)
	}
	switch c.FaultActor {
	case "earliest", "nearest":
	default:
		return fmt.Errorf("unsupported fault actor mode %q (expected earliest or nearest)", c.FaultActor)
	}
	return nil
}
