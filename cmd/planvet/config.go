// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/planvet/planvet/pkg/logging"
)

// Config is the top-level config.yaml structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the planvet serve command.
type ServerConfig struct {
	// Port the HTTP server listens on. Default: 12310
	Port int `yaml:"port"`

	// GinMode sets the gin framework mode (debug, release, test).
	GinMode string `yaml:"gin_mode"`

	// OTelEndpoint is the OTLP gRPC collector address. Empty disables
	// trace export.
	OTelEndpoint string `yaml:"otel_endpoint"`

	// EnableMetrics exposes prometheus metrics on /metrics.
	EnableMetrics bool `yaml:"enable_metrics"`

	// MaxTasks caps the number of tasks accepted per analysis request.
	MaxTasks int `yaml:"max_tasks"`
}

// LoggingConfig configures the process-wide logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
	JSON  bool   `yaml:"json"`
	Quiet bool   `yaml:"quiet"`
}

// loadConfig reads and parses a YAML config file.
//
// A missing file at the default path is not an error; the zero Config
// stands in and every component applies its own defaults. A missing
// file at an explicitly requested path is an error.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseLogLevel maps a config string to a logging.Level.
func parseLogLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
