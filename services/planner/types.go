// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package planner

import (
	"github.com/planvet/planvet/services/planner/graph"
)

// AnalyzeRequest is the request body for POST /v1/plan/analyze.
type AnalyzeRequest struct {
	// Tasks is the plan to analyze. May be empty.
	Tasks []graph.Task `json:"tasks"`
}

// AnalyzeResponse is the response body for POST /v1/plan/analyze.
type AnalyzeResponse struct {
	// Report is the full analysis result.
	Report *graph.Report `json:"report"`

	// TaskCount is the number of tasks analyzed.
	TaskCount int `json:"task_count"`

	// AnalysisTimeMs is the wall-clock analysis duration.
	AnalysisTimeMs int64 `json:"analysis_time_ms"`
}

// RenderRequest is the request body for POST /v1/plan/render.
type RenderRequest struct {
	// Tasks is the plan to analyze and render. May be empty.
	Tasks []graph.Task `json:"tasks"`
}

// RenderResponse is the response body for POST /v1/plan/render.
type RenderResponse struct {
	// Markdown is the rendered analysis document.
	Markdown string `json:"markdown"`

	// Valid mirrors the report verdict so callers can branch without
	// parsing the document.
	Valid bool `json:"valid"`
}

// HealthResponse is the response body for GET /v1/plan/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ReadyResponse is the response body for GET /v1/plan/ready.
type ReadyResponse struct {
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
}

// ErrorResponse is the standard error body for all planner endpoints.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`

	// Code is a machine-readable error code.
	Code string `json:"code"`
}
