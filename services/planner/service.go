// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package planner provides the plan analysis HTTP service.
//
// The service exposes endpoints for:
//   - Analyzing a task plan into a structured report
//   - Rendering an analysis as a markdown document
//   - Health and readiness probes
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planvet/planvet/services/planner/graph"
	"github.com/planvet/planvet/services/planner/observability"
)

// ServiceVersion is the planner service version.
const ServiceVersion = "0.1.0"

// ServiceConfig configures the planner service.
type ServiceConfig struct {
	// MaxTasks is the maximum number of tasks accepted per plan.
	// Default: 5000
	MaxTasks int

	// MaxAnalysisDuration bounds a single analysis.
	// Default: 10s
	MaxAnalysisDuration time.Duration
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxTasks:            5000,
		MaxAnalysisDuration: 10 * time.Second,
	}
}

// Service is the plan analysis service.
//
// Thread Safety:
//
//	Service holds no mutable state and is safe for concurrent use.
type Service struct {
	config  ServiceConfig
	metrics *observability.PlannerMetrics
}

// NewService creates a new planner service.
//
// Inputs:
//
//	config - Service configuration
//
// Outputs:
//
//	*Service - The configured service
func NewService(config ServiceConfig) *Service {
	return &Service{config: config}
}

// WithMetrics attaches a metrics instance. A nil-metrics service records
// nothing, which keeps unit tests free of registry state.
func (s *Service) WithMetrics(m *observability.PlannerMetrics) *Service {
	s.metrics = m
	return s
}

// Analyze validates the plan size and runs the full analysis.
//
// Description:
//
//	Rejects oversized plans before any graph work, then delegates to the
//	graph engine. Records throughput, latency, and issue metrics when a
//	metrics instance is attached.
//
// Inputs:
//
//	ctx - Context for cancellation
//	tasks - The plan to analyze. May be nil or empty.
//	endpoint - The metrics label for the calling endpoint.
//
// Outputs:
//
//	*graph.Report - The analysis report
//	error - Non-nil on contract violation or size rejection
//
// Errors:
//
//	ErrPlanTooLarge - Task count exceeds MaxTasks
//	graph.ErrInvalidTask - A task has an empty or whitespace id
//	graph.ErrDuplicateTask - Two tasks share an id
func (s *Service) Analyze(ctx context.Context, tasks []graph.Task, endpoint observability.Endpoint) (*graph.Report, error) {
	start := time.Now()

	if s.config.MaxTasks > 0 && len(tasks) > s.config.MaxTasks {
		s.recordRejection(endpoint, len(tasks), start)
		return nil, fmt.Errorf("%w: %d tasks, limit %d", ErrPlanTooLarge, len(tasks), s.config.MaxTasks)
	}

	if s.config.MaxAnalysisDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.MaxAnalysisDuration)
		defer cancel()
	}

	report, err := graph.Analyze(ctx, tasks)
	if err != nil {
		s.recordRejection(endpoint, len(tasks), start)
		return nil, err
	}

	s.recordReport(endpoint, report, len(tasks), start)

	slog.Debug("plan analyzed",
		"task_count", len(tasks),
		"valid", report.Valid,
		"issue_count", len(report.Issues),
		"duration_ms", time.Since(start).Milliseconds())

	return report, nil
}

func (s *Service) recordRejection(endpoint observability.Endpoint, taskCount int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordAnalysis(endpoint, observability.VerdictRejected, taskCount, time.Since(start).Seconds())
}

func (s *Service) recordReport(endpoint observability.Endpoint, report *graph.Report, taskCount int, start time.Time) {
	if s.metrics == nil {
		return
	}
	verdict := observability.VerdictValid
	if !report.Valid {
		verdict = observability.VerdictInvalid
	}
	s.metrics.RecordAnalysis(endpoint, verdict, taskCount, time.Since(start).Seconds())

	counts := make(map[string]int)
	for _, issue := range report.Issues {
		counts[string(issue.Type)]++
	}
	s.metrics.RecordIssues(counts)
}
