// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the planner service.
//
// Metrics cover analysis throughput (by verdict), issue volume (by issue
// type), analysis latency, and plan size. They are exposed on the /metrics
// endpoint and are safe for concurrent use via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "planvet"

const plannerSubsystem = "planner"

// PlannerMetrics holds all Prometheus metrics for plan analysis.
//
// Initialize once at startup via InitMetrics; registering twice panics on
// duplicate collector registration.
type PlannerMetrics struct {
	// AnalysesTotal counts analysis requests by endpoint and verdict.
	// Labels: endpoint (analyze, render), verdict (valid, invalid, rejected)
	AnalysesTotal *prometheus.CounterVec

	// IssuesTotal counts reported issues by type.
	// Labels: type (missing, circular, orphan, bottleneck)
	IssuesTotal *prometheus.CounterVec

	// AnalysisDurationSeconds measures end-to-end analysis latency.
	// Labels: endpoint (analyze, render)
	AnalysisDurationSeconds *prometheus.HistogramVec

	// PlanTasks measures the size of analyzed plans in tasks.
	PlanTasks prometheus.Histogram
}

// DefaultMetrics is the singleton instance of PlannerMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *PlannerMetrics

// InitMetrics creates and registers all planner metrics with the default
// Prometheus registry.
func InitMetrics() *PlannerMetrics {
	DefaultMetrics = &PlannerMetrics{
		AnalysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: plannerSubsystem,
				Name:      "analyses_total",
				Help:      "Total plan analyses by endpoint and verdict",
			},
			[]string{"endpoint", "verdict"},
		),

		IssuesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: plannerSubsystem,
				Name:      "issues_total",
				Help:      "Total reported plan issues by type",
			},
			[]string{"type"},
		),

		AnalysisDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: plannerSubsystem,
				Name:      "analysis_duration_seconds",
				Help:      "End-to-end plan analysis duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"endpoint"},
		),

		PlanTasks: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: plannerSubsystem,
				Name:      "plan_tasks",
				Help:      "Size of analyzed plans in tasks",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
	}

	return DefaultMetrics
}

// Endpoint represents a planner endpoint for metrics labeling.
type Endpoint string

const (
	// EndpointAnalyze is the JSON analysis endpoint.
	EndpointAnalyze Endpoint = "analyze"

	// EndpointRender is the markdown rendering endpoint.
	EndpointRender Endpoint = "render"
)

// Verdict represents the outcome of an analysis for metrics labeling.
type Verdict string

const (
	// VerdictValid means the plan passed all blocking checks.
	VerdictValid Verdict = "valid"

	// VerdictInvalid means the plan has error-severity issues.
	VerdictInvalid Verdict = "invalid"

	// VerdictRejected means the request never reached analysis
	// (contract violation or plan too large).
	VerdictRejected Verdict = "rejected"
)

// RecordAnalysis records one completed analysis.
func (m *PlannerMetrics) RecordAnalysis(endpoint Endpoint, verdict Verdict, taskCount int, seconds float64) {
	m.AnalysesTotal.WithLabelValues(string(endpoint), string(verdict)).Inc()
	m.AnalysisDurationSeconds.WithLabelValues(string(endpoint)).Observe(seconds)
	m.PlanTasks.Observe(float64(taskCount))
}

// RecordIssues records the issue volume of one report.
func (m *PlannerMetrics) RecordIssues(countByType map[string]int) {
	for typ, count := range countByType {
		m.IssuesTotal.WithLabelValues(typ).Add(float64(count))
	}
}
