package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SummaryPath string // detailed summary file; empty reads standard input
	OutputPath  string // annotated SVG destination; empty writes standard output
	ThemePath   string // optional HCL theme file or directory

	DotBinary string
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DotBinary == "" {
		return nil, errors.New("DotBinary is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
