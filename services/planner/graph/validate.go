// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Bottleneck detection thresholds.
const (
	// bottleneckMinDependents is the floor below which a task is never
	// flagged as a bottleneck, regardless of plan size.
	bottleneckMinDependents = 3

	// bottleneckFraction is the share of the total task count at which a
	// task's dependent count becomes suspicious. The effective threshold is
	// max(bottleneckMinDependents, floor(total * bottleneckFraction)).
	bottleneckFraction = 0.20
)

// Validator runs the structural checks over a TaskGraph.
//
// Description:
//
//	Four independent checks: missing dependencies, cycles, orphan tasks,
//	and bottleneck tasks. Each produces typed, severity-tagged issues;
//	none of them mutates the graph or aborts on findings. Check order and
//	issue order within a check are deterministic.
//
// Thread Safety:
//
//	Validator holds no mutable state between calls and is safe for
//	concurrent use.
type Validator struct {
	graph *TaskGraph
}

// NewValidator creates a validator for the given graph.
func NewValidator(g *TaskGraph) *Validator {
	return &Validator{graph: g}
}

// Validate runs all checks and returns the combined issue list.
//
// Outputs:
//
//	[]Issue - Missing-dependency issues first, then cycles, orphans, and
//	          bottlenecks. Never nil; empty for a clean graph.
func (v *Validator) Validate() []Issue {
	issues := make([]Issue, 0)
	issues = append(issues, v.checkMissingDependencies()...)
	issues = append(issues, v.checkCycles()...)
	issues = append(issues, v.checkOrphans()...)
	issues = append(issues, v.checkBottlenecks()...)
	return issues
}

// checkMissingDependencies reports every dependency edge whose target id
// resolves to no task. One issue per distinct (task, missing id) pair;
// duplicate declarations of the same dependency collapse into one issue.
func (v *Validator) checkMissingDependencies() []Issue {
	issues := make([]Issue, 0)
	for _, id := range v.graph.TaskIDs() {
		reported := make(map[string]bool)
		for _, dep := range v.graph.DependenciesOf(id) {
			if v.graph.Exists(dep) || reported[dep] {
				continue
			}
			reported[dep] = true
			issues = append(issues, Issue{
				Type:     IssueMissingDependency,
				Severity: SeverityError,
				Tasks:    []string{id, dep},
				Message: fmt.Sprintf("task %q depends on %q, which does not exist in the plan",
					id, dep),
				Suggestion: "remove the dependency or add the missing task",
			})
		}
	}
	return issues
}

// cycleSearch carries the DFS state for cycle detection.
//
// The state is an explicit object threaded through the recursion instead of
// package-level containers, so the search is reentrant and testable in
// isolation. visited is global across roots; onStack and stack track the
// current branch only.
type cycleSearch struct {
	graph    *TaskGraph
	visited  map[string]bool
	onStack  map[string]bool
	stack    []string
	reported map[string]bool // canonical cycle keys already emitted
	issues   []Issue
}

// checkCycles finds dependency cycles by depth-first search along forward
// (predecessor -> dependent) edges.
//
// Every task not yet globally visited is tried as a DFS root, because a
// graph may contain several disjoint cycles. A cycle discovered from two
// different entry points would be reported twice, so each cycle is reduced
// to a canonical key (its sorted ids) and only the first report per key is
// kept.
func (v *Validator) checkCycles() []Issue {
	s := &cycleSearch{
		graph:    v.graph,
		visited:  make(map[string]bool),
		onStack:  make(map[string]bool),
		reported: make(map[string]bool),
		issues:   make([]Issue, 0),
	}
	for _, id := range v.graph.TaskIDs() {
		if !s.visited[id] {
			s.walk(id)
		}
	}
	return s.issues
}

// walk visits one node, recursing into its dependents. Revisiting a node
// that is on the current stack closes a cycle: the cycle is the suffix of
// the stack from that node onward.
func (s *cycleSearch) walk(id string) {
	s.visited[id] = true
	s.onStack[id] = true
	s.stack = append(s.stack, id)

	for _, next := range s.graph.DependentsOf(id) {
		if s.onStack[next] {
			s.recordCycle(next)
			continue
		}
		if !s.visited[next] {
			s.walk(next)
		}
	}

	s.stack = s.stack[:len(s.stack)-1]
	s.onStack[id] = false
}

// recordCycle emits an issue for the cycle closing at start, unless an
// identical cycle was already reported from another DFS root.
func (s *cycleSearch) recordCycle(start string) {
	from := 0
	for i, id := range s.stack {
		if id == start {
			from = i
			break
		}
	}
	cycle := append([]string(nil), s.stack[from:]...)

	key := canonicalCycleKey(cycle)
	if s.reported[key] {
		return
	}
	s.reported[key] = true

	s.issues = append(s.issues, Issue{
		Type:     IssueCircularDependency,
		Severity: SeverityError,
		Tasks:    cycle,
		Message: fmt.Sprintf("circular dependency: %s -> %s",
			strings.Join(cycle, " -> "), start),
		Suggestion: "break the cycle by removing or inverting one of its dependencies",
	})
}

// canonicalCycleKey reduces a cycle to an order-independent identity.
func canonicalCycleKey(cycle []string) string {
	ids := append([]string(nil), cycle...)
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}

// checkOrphans reports tasks with neither declared dependencies nor
// dependents. A single-task plan is never orphaned.
func (v *Validator) checkOrphans() []Issue {
	issues := make([]Issue, 0)
	if v.graph.Len() <= 1 {
		return issues
	}
	for _, id := range v.graph.TaskIDs() {
		if len(v.graph.DependenciesOf(id)) > 0 || len(v.graph.DependentsOf(id)) > 0 {
			continue
		}
		issues = append(issues, Issue{
			Type:     IssueOrphanTask,
			Severity: SeverityWarning,
			Tasks:    []string{id},
			Message:  fmt.Sprintf("task %q is isolated: nothing depends on it and it depends on nothing", id),
			Suggestion: "connect the task to the plan or confirm it is intentionally standalone",
		})
	}
	return issues
}

// checkBottlenecks reports tasks whose dependent count reaches
// max(bottleneckMinDependents, floor(total * bottleneckFraction)).
// Self-references do not count as dependents here.
func (v *Validator) checkBottlenecks() []Issue {
	issues := make([]Issue, 0)
	total := v.graph.Len()
	threshold := int(float64(total) * bottleneckFraction)
	if threshold < bottleneckMinDependents {
		threshold = bottleneckMinDependents
	}

	for _, id := range v.graph.TaskIDs() {
		count := 0
		for _, dependent := range v.graph.DependentsOf(id) {
			if dependent != id {
				count++
			}
		}
		if count < threshold {
			continue
		}
		issues = append(issues, Issue{
			Type:     IssueBottleneckTask,
			Severity: SeverityInfo,
			Tasks:    []string{id},
			Message: fmt.Sprintf("task %q blocks %d of %d tasks in the plan",
				id, count, total),
			Suggestion: "consider splitting the task or parallelizing its dependents",
		})
	}
	return issues
}
