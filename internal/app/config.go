package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PresetPath string // .hcl or .json graph document
	SpecsPath  string // extra node spec manifests (hcl files), optional

	OutputPath string // compiled program destination, empty writes to stdout
	MetaPath   string // uniform/diagnostics JSON destination, optional

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PresetPath == "" {
		return nil, errors.New("PresetPath is a required configuration field and cannot be empty")
	}

	// Future validations for other fields can be added here.

	return &cfg, nil
}
