// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("planner.graph")

// Analyze runs the full structural analysis over a task list.
//
// Description:
//
//	Builds one TaskGraph and runs the Validator, CriticalPathAnalyzer, and
//	LayeringEngine against it; the three are order-independent and share no
//	mutable state. The composite Report is always complete: even for an
//	invalid graph the critical path and layering are best-effort populated
//	(see the always-total layering policy).
//
//	Two calls with identical input yield byte-identical reports.
//
// Inputs:
//
//	ctx - Context, used for tracing only; the analysis itself is pure,
//	      synchronous, and in-memory.
//	tasks - The task list. May be empty; an empty plan yields a valid,
//	        empty report.
//
// Outputs:
//
//	*Report - The composite analysis. Nil only when err is non-nil.
//	error - Non-nil only for input contract violations (ErrInvalidTask,
//	        ErrDuplicateTask). Dangling references, cycles, orphans, and
//	        bottlenecks are never errors; they surface as Issues.
func Analyze(ctx context.Context, tasks []Task) (*Report, error) {
	_, span := tracer.Start(ctx, "graph.Analyze")
	defer span.End()
	span.SetAttributes(attribute.Int("task_count", len(tasks)))

	if err := checkContract(tasks); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	g := NewTaskGraph(tasks)
	issues := NewValidator(g).Validate()
	criticalPath := NewCriticalPathAnalyzer(g).CriticalPath()
	parallelization := NewLayeringEngine(g).Layers()

	report := &Report{
		Issues:          issues,
		CriticalPath:    criticalPath,
		Parallelization: parallelization,
	}
	report.Valid = report.ErrorCount() == 0

	span.SetAttributes(
		attribute.Bool("valid", report.Valid),
		attribute.Int("issue_count", len(report.Issues)),
		attribute.Int("critical_path_length", len(report.CriticalPath)),
		attribute.Int("layer_count", len(report.Parallelization.ExecutionLayers)),
		attribute.Int("max_parallel", report.Parallelization.MaxParallel),
	)
	span.SetStatus(codes.Ok, "")

	return report, nil
}

// checkContract rejects task lists that violate the input contract: every
// entry needs a usable id and ids must be unique. Anything beyond that is
// the Validator's territory.
func checkContract(tasks []Task) error {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: task at index %d", ErrInvalidTask, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateTask, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
