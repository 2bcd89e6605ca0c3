// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planvet/planvet/pkg/ux"
	"github.com/planvet/planvet/services/planner/graph"
	"github.com/planvet/planvet/services/planner/render"
)

var (
	analyzeJSONOutput     bool
	analyzeMarkdownOutput bool
	analyzeFailOnIssues   bool
)

// analyzeCmd runs a one-shot analysis of a plan file.
var analyzeCmd = &cobra.Command{
	Use:   "analyze PLAN_FILE",
	Short: "Analyze a task plan file for dependency problems",
	Long: `Analyze a JSON task plan and report missing dependencies, circular
dependencies, orphaned tasks, bottlenecks, the critical path, and the
parallel execution layers.

The plan file is either a JSON object with a "tasks" array or a bare
JSON array of tasks:

  {"tasks": [{"id": "A", "dependencies": []}, {"id": "B", "dependencies": ["A"]}]}

Examples:
  planvet analyze plan.json
  planvet analyze plan.json --json
  planvet analyze plan.json --markdown > report.md
  planvet analyze plan.json --fail-on-issues`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSONOutput, "json", false,
		"Output the raw report as JSON for scripting")
	analyzeCmd.Flags().BoolVar(&analyzeMarkdownOutput, "markdown", false,
		"Output the report as markdown")
	analyzeCmd.Flags().BoolVar(&analyzeFailOnIssues, "fail-on-issues", false,
		"Exit with status 1 when the plan has blocking issues")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, err := loadPlanFile(args[0])
	if err != nil {
		ux.Error("Failed to load plan: " + err.Error())
		os.Exit(2)
	}

	report, err := graph.Analyze(ctx, tasks)
	if err != nil {
		ux.Error("Analysis failed: " + err.Error())
		os.Exit(2)
	}

	switch {
	case analyzeJSONOutput:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			ux.Error("Failed to encode report: " + err.Error())
			os.Exit(2)
		}
		fmt.Println(string(out))
	case analyzeMarkdownOutput:
		fmt.Print(render.Markdown(report))
	default:
		printReport(report)
	}

	if analyzeFailOnIssues && !report.Valid {
		os.Exit(1)
	}
}

// loadPlanFile reads a plan file, accepting both the request envelope
// form {"tasks": [...]} and a bare task array.
func loadPlanFile(path string) ([]graph.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Tasks []graph.Task `json:"tasks"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Tasks != nil {
		return envelope.Tasks, nil
	}

	var tasks []graph.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("plan file is neither a task envelope nor a task array: %w", err)
	}
	return tasks, nil
}

// printReport writes a styled report to the terminal.
func printReport(report *graph.Report) {
	ux.Title("Plan Analysis")
	fmt.Println()

	if report.Valid {
		ux.Success("Valid plan")
	} else {
		blocking := report.ErrorCount()
		ux.Error(fmt.Sprintf("Invalid plan (%d blocking issue(s))", blocking))
	}

	if len(report.Issues) > 0 {
		fmt.Println()
		ux.Title("Issues")
		for _, issue := range report.Issues {
			severity := string(issue.Severity)
			icon := ux.SeverityIcon(severity)
			style := ux.SeverityStyle(severity)
			fmt.Printf("%s %s [%s]: %s\n",
				icon.Render(),
				style.Render(string(issue.Type)),
				strings.Join(issue.Tasks, ", "),
				issue.Message)
			if issue.Suggestion != "" {
				ux.Muted("  " + issue.Suggestion)
			}
		}
	}

	fmt.Println()
	if len(report.CriticalPath) > 0 {
		ux.Box("Critical Path",
			fmt.Sprintf("%s\n%d sequential steps",
				strings.Join(report.CriticalPath, " "+string(ux.IconArrow)+" "),
				len(report.CriticalPath)))
	} else {
		ux.Muted("No critical path (the plan has no dependency roots).")
	}

	fmt.Println()
	if len(report.Parallelization.ExecutionLayers) > 0 {
		ux.Title("Execution Layers")
		ux.Info(fmt.Sprintf("Up to %d tasks can run in parallel.",
			report.Parallelization.MaxParallel))
		for i, layer := range report.Parallelization.ExecutionLayers {
			fmt.Printf("  %s Layer %d: %s\n",
				ux.IconBullet.Render(), i, strings.Join(layer, ", "))
		}
	} else {
		ux.Muted("No tasks to schedule.")
	}
}
