// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package render turns analysis reports into human-readable text.
//
// The markdown renderer is the review surface for plan analysis: it lists
// issues grouped by severity, prints the critical path as an arrow chain,
// and lays the execution layers out as a table. Output is deterministic for
// a given report.
package render

import (
	"fmt"
	"strings"

	"github.com/planvet/planvet/services/planner/graph"
)

// severityOrder fixes the rendering order of issue groups.
var severityOrder = []graph.Severity{
	graph.SeverityError,
	graph.SeverityWarning,
	graph.SeverityInfo,
}

var severityHeadings = map[graph.Severity]string{
	graph.SeverityError:   "Errors",
	graph.SeverityWarning: "Warnings",
	graph.SeverityInfo:    "Notes",
}

// Markdown renders a report as a markdown document.
//
// Description:
//
//	Sections: a verdict line, issues grouped by severity (omitted when the
//	plan is clean), the critical path, and an execution-layer table with the
//	max-parallel callout. Intended for human review in chat or PR surfaces.
//
// Inputs:
//
//	report - The analysis report. Must not be nil.
//
// Outputs:
//
//	string - The markdown document, terminated by a newline.
func Markdown(report *graph.Report) string {
	var b strings.Builder

	b.WriteString("# Plan Analysis\n\n")
	if report.Valid {
		b.WriteString("**Verdict:** valid plan\n")
	} else {
		fmt.Fprintf(&b, "**Verdict:** invalid plan (%d blocking issue(s))\n", report.ErrorCount())
	}

	writeIssues(&b, report)
	writeCriticalPath(&b, report)
	writeLayers(&b, report)

	return b.String()
}

func writeIssues(b *strings.Builder, report *graph.Report) {
	if len(report.Issues) == 0 {
		return
	}
	b.WriteString("\n## Issues\n")
	for _, severity := range severityOrder {
		group := issuesWithSeverity(report.Issues, severity)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n### %s\n\n", severityHeadings[severity])
		for _, issue := range group {
			fmt.Fprintf(b, "- **%s** [%s]: %s\n  - Suggestion: %s\n",
				issue.Type, strings.Join(issue.Tasks, ", "), issue.Message, issue.Suggestion)
		}
	}
}

func writeCriticalPath(b *strings.Builder, report *graph.Report) {
	b.WriteString("\n## Critical Path\n\n")
	if len(report.CriticalPath) == 0 {
		b.WriteString("No critical path (the plan has no dependency roots).\n")
		return
	}
	fmt.Fprintf(b, "%s (%d sequential steps)\n",
		strings.Join(report.CriticalPath, " -> "), len(report.CriticalPath))
}

func writeLayers(b *strings.Builder, report *graph.Report) {
	b.WriteString("\n## Execution Layers\n\n")
	layers := report.Parallelization.ExecutionLayers
	if len(layers) == 0 {
		b.WriteString("No tasks to schedule.\n")
		return
	}
	fmt.Fprintf(b, "Up to **%d** tasks can run in parallel.\n\n", report.Parallelization.MaxParallel)
	b.WriteString("| Layer | Tasks |\n|---|---|\n")
	for i, layer := range layers {
		fmt.Fprintf(b, "| %d | %s |\n", i, strings.Join(layer, ", "))
	}
}

func issuesWithSeverity(issues []graph.Issue, severity graph.Severity) []graph.Issue {
	matched := make([]graph.Issue, 0)
	for _, issue := range issues {
		if issue.Severity == severity {
			matched = append(matched, issue)
		}
	}
	return matched
}
