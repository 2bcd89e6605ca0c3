// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sort"
	"testing"
)

func analyze(t *testing.T, tasks []Task) *Report {
	t.Helper()
	report, err := Analyze(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return report
}

func TestAnalyzeDiamond(t *testing.T) {
	// Scenario: A(deps:[]), B(deps:[A]), C(deps:[A]), D(deps:[B,C]).
	report := analyze(t, diamondTasks())

	if !report.Valid {
		t.Error("Valid = false, want true")
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %v, want none", report.Issues)
	}
	if len(report.CriticalPath) != 3 {
		t.Errorf("critical path %v has length %d, want 3", report.CriticalPath, len(report.CriticalPath))
	}
	if report.Parallelization.MaxParallel != 2 {
		t.Errorf("MaxParallel = %d, want 2", report.Parallelization.MaxParallel)
	}
	wantLayers := [][]string{{"A"}, {"B", "C"}, {"D"}}
	for i, want := range wantLayers {
		if !slices.Equal(report.Parallelization.ExecutionLayers[i], want) {
			t.Errorf("layer %d = %v, want %v", i, report.Parallelization.ExecutionLayers[i], want)
		}
	}
}

func TestAnalyzeCircularPlan(t *testing.T) {
	// Scenario: A(deps:[B]), B(deps:[A]).
	report := analyze(t, []Task{task("A", "B"), task("B", "A")})

	if report.Valid {
		t.Error("Valid = true, want false")
	}
	circular := report.IssuesOfType(IssueCircularDependency)
	if len(circular) != 1 {
		t.Fatalf("circular issues = %d, want exactly 1", len(circular))
	}
	got := append([]string(nil), circular[0].Tasks...)
	sort.Strings(got)
	if !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("cycle tasks = %v, want {A, B}", circular[0].Tasks)
	}
	// Fail-open: the report still partitions both tasks.
	if len(report.Parallelization.ExecutionLayers) != 1 {
		t.Errorf("layers = %v, want one catch-all layer", report.Parallelization.ExecutionLayers)
	}
}

func TestAnalyzeMissingDependency(t *testing.T) {
	// Scenario: A(deps:["UNKNOWN"]), no other tasks.
	report := analyze(t, []Task{task("A", "UNKNOWN")})

	if report.Valid {
		t.Error("Valid = true, want false")
	}
	missing := report.IssuesOfType(IssueMissingDependency)
	if len(missing) != 1 {
		t.Fatalf("missing issues = %d, want 1", len(missing))
	}
	if !slices.Equal(missing[0].Tasks, []string{"A", "UNKNOWN"}) {
		t.Errorf("tasks = %v, want [A UNKNOWN]", missing[0].Tasks)
	}
}

func TestAnalyzeOrphansDoNotInvalidate(t *testing.T) {
	// Scenario: two isolated tasks.
	report := analyze(t, []Task{task("A"), task("B")})

	if !report.Valid {
		t.Error("Valid = false, want true (orphans are advisory)")
	}
	if got := len(report.IssuesOfType(IssueOrphanTask)); got != 2 {
		t.Errorf("orphan issues = %d, want 2", got)
	}
}

func TestAnalyzeEmptyPlan(t *testing.T) {
	report := analyze(t, nil)

	if !report.Valid {
		t.Error("Valid = false, want true")
	}
	if len(report.Issues) != 0 || len(report.CriticalPath) != 0 {
		t.Errorf("empty plan produced %v / %v", report.Issues, report.CriticalPath)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	// Identical input must produce byte-identical output regardless of the
	// order tasks arrive in.
	tasks := []Task{
		task("D", "B", "C"),
		task("B", "A"),
		task("C", "A"),
		task("A"),
		task("X", "GHOST"),
	}
	shuffled := []Task{tasks[3], tasks[0], tasks[4], tasks[1], tasks[2]}

	first, err := json.Marshal(analyze(t, tasks))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(analyze(t, tasks))
	if err != nil {
		t.Fatal(err)
	}
	reordered, err := json.Marshal(analyze(t, shuffled))
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("two calls with identical input differ")
	}
	if string(first) != string(reordered) {
		t.Errorf("reordered input changed the report:\n%s\n%s", first, reordered)
	}
}

func TestAnalyzeCriticalPathAtLeastLayerChain(t *testing.T) {
	tasks := []Task{
		task("A"),
		task("B", "A"),
		task("C", "B"),
		task("D", "A"),
	}
	report := analyze(t, tasks)

	if len(report.CriticalPath) < len(report.Parallelization.ExecutionLayers) {
		t.Errorf("critical path length %d < layer count %d",
			len(report.CriticalPath), len(report.Parallelization.ExecutionLayers))
	}
}

func TestAnalyzeContractViolations(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  error
	}{
		{"blank id", []Task{task(" ")}, ErrInvalidTask},
		{"empty id", []Task{task("")}, ErrInvalidTask},
		{"duplicate id", []Task{task("A"), task("A")}, ErrDuplicateTask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Analyze(context.Background(), tt.tasks)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Analyze() error = %v, want %v", err, tt.want)
			}
			if report != nil {
				t.Error("Analyze() returned a report alongside a contract error")
			}
		})
	}
}

func TestAnalyzeDescriptiveFieldsAreIgnored(t *testing.T) {
	plain := analyze(t, diamondTasks())

	decorated := diamondTasks()
	for i := range decorated {
		decorated[i].Title = "title"
		decorated[i].Role = "backend"
		decorated[i].Complexity = "high"
	}
	withMeta := analyze(t, decorated)

	if plain.Valid != withMeta.Valid ||
		!slices.Equal(plain.CriticalPath, withMeta.CriticalPath) ||
		plain.Parallelization.MaxParallel != withMeta.Parallelization.MaxParallel {
		t.Error("title/role/complexity changed the analysis result")
	}
}
