// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// IssueType classifies a structural finding.
type IssueType string

const (
	// IssueMissingDependency flags a declared dependency id that resolves
	// to no task in the list.
	IssueMissingDependency IssueType = "missing"

	// IssueCircularDependency flags a dependency cycle.
	IssueCircularDependency IssueType = "circular"

	// IssueOrphanTask flags a task with neither dependencies nor dependents.
	IssueOrphanTask IssueType = "orphan"

	// IssueBottleneckTask flags a task an unusually large share of the plan
	// depends on.
	IssueBottleneckTask IssueType = "bottleneck"
)

// Severity grades how seriously an issue affects the plan.
type Severity string

const (
	// SeverityError marks findings that make the plan structurally invalid.
	SeverityError Severity = "error"

	// SeverityWarning marks advisory findings worth a human look.
	SeverityWarning Severity = "warning"

	// SeverityInfo marks purely informational findings.
	SeverityInfo Severity = "info"
)

// Issue is a single structural finding about the task list.
type Issue struct {
	Type       IssueType `json:"type"`
	Severity   Severity  `json:"severity"`
	Tasks      []string  `json:"tasks"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion"`
}

// Parallelization describes how the plan partitions into execution layers.
//
// ExecutionLayers is an ordered partition of the full task set: every task
// appears in exactly one layer, and for an acyclic graph every task sits in
// a strictly later layer than all of its dependencies. MaxParallel is the
// width of the widest layer.
type Parallelization struct {
	MaxParallel     int        `json:"max_parallel"`
	ExecutionLayers [][]string `json:"execution_layers"`
}

// Report is the composite analysis result for one task list.
//
// Valid is true exactly when no error-severity issue was found; warnings and
// info findings never invalidate a plan. CriticalPath and Parallelization
// are always populated on a best-effort basis, even for invalid graphs.
type Report struct {
	Valid           bool            `json:"valid"`
	Issues          []Issue         `json:"issues"`
	CriticalPath    []string        `json:"critical_path"`
	Parallelization Parallelization `json:"parallelization"`
}

// ErrorCount returns the number of error-severity issues in the report.
func (r *Report) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// IssuesOfType returns the issues of the given type, in report order.
func (r *Report) IssuesOfType(t IssueType) []Issue {
	matched := make([]Issue, 0)
	for _, issue := range r.Issues {
		if issue.Type == t {
			matched = append(matched, issue)
		}
	}
	return matched
}
