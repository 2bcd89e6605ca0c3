// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command planvet analyzes task plans for dependency problems.
//
// Usage:
//
//	planvet analyze plan.json
//	planvet analyze plan.json --json
//	planvet analyze plan.json --markdown
//	planvet serve --port 12310
//
// Configuration is read from config.yaml in the working directory (or
// the path given with --config). Flags override config values.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/planvet/planvet/pkg/logging"
	"github.com/planvet/planvet/services/planner"
)

var (
	config     Config
	configPath string

	rootCmd = &cobra.Command{
		Use:     "planvet",
		Short:   "A CLI to analyze task plans for dependency problems",
		Long:    `Planvet validates task dependency graphs, finds the critical path, and computes parallel execution layers before any work starts.`,
		Version: planner.ServiceVersion,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"Path to the YAML configuration file")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		explicit := cmd.Flags().Changed("config")

		cfg, err := loadConfig(configPath, explicit)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}
		config = cfg

		logger := logging.New(logging.Config{
			Level:   parseLogLevel(config.Logging.Level),
			LogDir:  config.Logging.Dir,
			Service: "planvet",
			JSON:    config.Logging.JSON,
			Quiet:   config.Logging.Quiet,
		})
		logger.Install()
	}
}
