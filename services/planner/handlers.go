// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package planner

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planvet/planvet/services/planner/graph"
	"github.com/planvet/planvet/services/planner/observability"
	"github.com/planvet/planvet/services/planner/render"
)

// Handlers contains the HTTP handlers for the planner service.
type Handlers struct {
	svc *Service
}

// NewHandlers creates handlers for the given service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// HandleAnalyze handles POST /v1/plan/analyze.
//
// Description:
//
//	Analyzes a task plan and returns the structured report: issues,
//	critical path, and parallelization layers.
//
// Request Body:
//
//	AnalyzeRequest
//
// Response:
//
//	200 OK: AnalyzeResponse
//	400 Bad Request: Validation error
//	413 Request Entity Too Large: Plan exceeds the task limit
//	500 Internal Server Error: Processing error
func (h *Handlers) HandleAnalyze(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleAnalyze")

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	logger.Info("Analyzing plan", "task_count", len(req.Tasks))
	start := time.Now()

	report, err := h.svc.Analyze(c.Request.Context(), req.Tasks, observability.EndpointAnalyze)
	if err != nil {
		h.writeAnalysisError(c, logger, err)
		return
	}

	logger.Info("Plan analyzed",
		"valid", report.Valid,
		"issue_count", len(report.Issues),
		"analysis_time_ms", time.Since(start).Milliseconds())

	c.JSON(http.StatusOK, AnalyzeResponse{
		Report:         report,
		TaskCount:      len(req.Tasks),
		AnalysisTimeMs: time.Since(start).Milliseconds(),
	})
}

// HandleRender handles POST /v1/plan/render.
//
// Description:
//
//	Analyzes a task plan and returns the report as a markdown document
//	suitable for human review.
//
// Request Body:
//
//	RenderRequest
//
// Response:
//
//	200 OK: RenderResponse
//	400 Bad Request: Validation error
//	413 Request Entity Too Large: Plan exceeds the task limit
//	500 Internal Server Error: Processing error
func (h *Handlers) HandleRender(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleRender")

	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	logger.Info("Rendering plan analysis", "task_count", len(req.Tasks))

	report, err := h.svc.Analyze(c.Request.Context(), req.Tasks, observability.EndpointRender)
	if err != nil {
		h.writeAnalysisError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, RenderResponse{
		Markdown: render.Markdown(report),
		Valid:    report.Valid,
	})
}

// writeAnalysisError maps analysis errors to HTTP responses.
func (h *Handlers) writeAnalysisError(c *gin.Context, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	errCode := "ANALYSIS_FAILED"

	if errors.Is(err, graph.ErrInvalidTask) {
		statusCode = http.StatusBadRequest
		errCode = "INVALID_TASK"
	} else if errors.Is(err, graph.ErrDuplicateTask) {
		statusCode = http.StatusBadRequest
		errCode = "DUPLICATE_TASK"
	} else if errors.Is(err, ErrPlanTooLarge) {
		statusCode = http.StatusRequestEntityTooLarge
		errCode = "PLAN_TOO_LARGE"
	}

	logger.Error("Analysis failed", "error", err)
	c.JSON(statusCode, ErrorResponse{
		Error: err.Error(),
		Code:  errCode,
	})
}

// HandleHealth handles GET /v1/plan/health.
//
// Response:
//
//	200 OK: HealthResponse
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
	})
}

// HandleReady handles GET /v1/plan/ready.
//
// The planner has no external dependencies, so readiness follows liveness.
//
// Response:
//
//	200 OK: ReadyResponse
func (h *Handlers) HandleReady(c *gin.Context) {
	c.JSON(http.StatusOK, ReadyResponse{
		Ready:   true,
		Version: ServiceVersion,
	})
}

// getOrCreateRequestID returns the inbound X-Request-ID or generates one,
// echoing it on the response either way.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
