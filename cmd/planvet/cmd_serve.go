// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/planvet/planvet/pkg/ux"
	"github.com/planvet/planvet/services/planner"
)

var (
	servePort          int
	serveOTelEndpoint  string
	serveEnableMetrics bool
	serveMaxTasks      int
)

// serveCmd starts the plan analysis HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the plan analysis HTTP server",
	Long: `Start the HTTP server exposing the plan analysis endpoints.

Endpoints:
  POST /v1/plan/analyze - Analyze a task list, returns the full report
  POST /v1/plan/render  - Analyze a task list, returns a markdown report
  GET  /v1/plan/health  - Liveness probe
  GET  /v1/plan/ready   - Readiness probe
  GET  /metrics         - Prometheus metrics (when enabled)

Examples:
  planvet serve
  planvet serve --port 9090
  planvet serve --otel-endpoint localhost:4317 --metrics`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveOTelEndpoint, "otel-endpoint", "",
		"OTLP gRPC collector address (overrides config)")
	serveCmd.Flags().BoolVar(&serveEnableMetrics, "metrics", false,
		"Expose prometheus metrics on /metrics")
	serveCmd.Flags().IntVar(&serveMaxTasks, "max-tasks", 0,
		"Maximum tasks accepted per request (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := planner.Config{
		Port:          config.Server.Port,
		GinMode:       config.Server.GinMode,
		OTelEndpoint:  config.Server.OTelEndpoint,
		EnableMetrics: config.Server.EnableMetrics,
		MaxTasks:      config.Server.MaxTasks,
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("otel-endpoint") {
		cfg.OTelEndpoint = serveOTelEndpoint
	}
	if cmd.Flags().Changed("metrics") {
		cfg.EnableMetrics = serveEnableMetrics
	}
	if cmd.Flags().Changed("max-tasks") {
		cfg.MaxTasks = serveMaxTasks
	}

	server, err := planner.NewServer(cfg)
	if err != nil {
		ux.Error("Failed to initialize server: " + err.Error())
		os.Exit(1)
	}

	slog.Info("starting planvet server", "port", cfg.Port)
	if err := server.Run(); err != nil {
		ux.Error("Server exited: " + err.Error())
		os.Exit(1)
	}
}
