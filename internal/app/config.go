package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/manifold/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	UnitPaths []string // declaration files or directories
	Unit      string   // resolve only this unit when set

	Format  string
	Explain bool

	LogFormat   string
	LogLevel    string
	WorkerCount int
	MetricsFile string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.UnitPaths) == 0 {
		return nil, errors.New("UnitPaths is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WorkerCount must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.Format == "" {
		cfg.Format = string(report.FormatText)
	}
	if _, err := report.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}

	return &cfg, nil
}
