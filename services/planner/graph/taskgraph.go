// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"slices"
	"sort"
)

// Task is one unit of planned work in an AI-generated plan.
//
// Only ID and Dependencies carry meaning for the analysis. Title, Role, and
// Complexity are carried through for diagnostics and rendering but are never
// consumed by the engine. Dependency ids may contain duplicates, reference
// the task itself, or reference tasks absent from the list; all of that is
// tolerated input, not a contract violation.
type Task struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Role         string   `json:"role,omitempty"`
	Complexity   string   `json:"complexity,omitempty"`
	Dependencies []string `json:"dependencies"`
}

// TaskGraph is a read-only dependency graph derived from a task list.
//
// Description:
//
//	The graph indexes every task by id and derives the reverse adjacency
//	("who depends on me") once at construction. Dependency ids that do not
//	resolve to a known task are silently skipped here; reporting them is the
//	Validator's concern. "B depends on A" is the directed edge A -> B.
//
// Thread Safety:
//
//	TaskGraph is immutable after construction and safe for concurrent use.
type TaskGraph struct {
	// nodes maps task id to the task itself.
	nodes map[string]Task

	// dependents maps a task id to the sorted, de-duplicated ids of tasks
	// that declare it as a dependency (reverse edges).
	dependents map[string][]string

	// order holds all task ids in lexicographic order so traversals are
	// reproducible independent of map iteration.
	order []string
}

// NewTaskGraph builds a graph from a flat task list.
//
// Description:
//
//	Scans the list once to index tasks by id, then once more to populate the
//	reverse adjacency. Construction never fails: unresolved dependency ids
//	are skipped, duplicate declared dependencies collapse into a single
//	reverse edge, and self-references are kept as real edges.
//
// Inputs:
//
//	tasks - The task list. May be nil or empty. Ids are assumed unique;
//	        Analyze enforces that before construction.
//
// Outputs:
//
//	*TaskGraph - The derived graph. Never nil.
func NewTaskGraph(tasks []Task) *TaskGraph {
	g := &TaskGraph{
		nodes:      make(map[string]Task, len(tasks)),
		dependents: make(map[string][]string),
		order:      make([]string, 0, len(tasks)),
	}

	for _, t := range tasks {
		g.nodes[t.ID] = t
		g.order = append(g.order, t.ID)
	}
	sort.Strings(g.order)

	for _, id := range g.order {
		for _, dep := range g.nodes[id].Dependencies {
			if _, ok := g.nodes[dep]; !ok {
				continue // unresolved reference, Validator reports it
			}
			if slices.Contains(g.dependents[dep], id) {
				continue // duplicate declared dependency
			}
			g.dependents[dep] = append(g.dependents[dep], id)
		}
	}
	// order iteration above appends in lexicographic order already, but a
	// final sort keeps the invariant independent of how edges were added.
	for dep := range g.dependents {
		sort.Strings(g.dependents[dep])
	}

	return g
}

// Len returns the number of tasks in the graph.
func (g *TaskGraph) Len() int {
	return len(g.nodes)
}

// Exists reports whether a task with the given id is in the graph.
func (g *TaskGraph) Exists(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Task returns the task with the given id.
func (g *TaskGraph) Task(id string) (Task, bool) {
	t, ok := g.nodes[id]
	return t, ok
}

// TaskIDs returns all task ids in lexicographic order.
//
// The returned slice is shared; callers must not modify it.
func (g *TaskGraph) TaskIDs() []string {
	return g.order
}

// DependenciesOf returns the dependency ids a task declares, in declaration
// order and including duplicates and unresolved references. Returns nil for
// an unknown id.
func (g *TaskGraph) DependenciesOf(id string) []string {
	return g.nodes[id].Dependencies
}

// DependentsOf returns the sorted ids of tasks that declare the given task
// as a dependency. Returns nil when nothing depends on it.
func (g *TaskGraph) DependentsOf(id string) []string {
	return g.dependents[id]
}

// Roots returns the ids of tasks declaring zero dependencies, sorted.
func (g *TaskGraph) Roots() []string {
	roots := make([]string, 0)
	for _, id := range g.order {
		if len(g.nodes[id].Dependencies) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Sinks returns the ids of tasks nothing depends on, sorted.
func (g *TaskGraph) Sinks() []string {
	sinks := make([]string, 0)
	for _, id := range g.order {
		if len(g.dependents[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	return sinks
}
