// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import "slices"

// CriticalPathAnalyzer computes the longest dependency chain in a plan.
//
// Description:
//
//	The critical path is the longest chain of tasks connected end-to-end by
//	dependency edges, measured strictly by task count. Complexity and role
//	fields are deliberately not weighted in; this bounds the minimum number
//	of sequential steps, not wall-clock time.
//
//	The search walks forward from every root (task with no dependencies),
//	at each node taking the longest path any dependent returns. A per-branch
//	path set makes the walk terminate on cyclic graphs, so the analyzer is
//	safe to run before (or without) validation. Ties between equal-length
//	paths resolve to the lexicographically smallest id sequence.
//
// Thread Safety:
//
//	CriticalPathAnalyzer holds no mutable state between calls and is safe
//	for concurrent use.
type CriticalPathAnalyzer struct {
	graph *TaskGraph
}

// NewCriticalPathAnalyzer creates an analyzer for the given graph.
func NewCriticalPathAnalyzer(g *TaskGraph) *CriticalPathAnalyzer {
	return &CriticalPathAnalyzer{graph: g}
}

// CriticalPath returns the longest dependency chain, root first.
//
// Outputs:
//
//	[]string - Task ids where every consecutive pair is a real dependency
//	           edge. Empty (never nil) when the graph has no roots, which
//	           includes the empty graph and fully cyclic graphs.
func (a *CriticalPathAnalyzer) CriticalPath() []string {
	best := []string{}
	onPath := make(map[string]bool)
	for _, root := range a.graph.Roots() {
		best = preferPath(a.longestFrom(root, onPath), best)
	}
	return best
}

// longestFrom returns the longest forward chain starting at id. onPath holds
// the ids on the current branch so a cyclic edge is skipped instead of
// recursed into.
func (a *CriticalPathAnalyzer) longestFrom(id string, onPath map[string]bool) []string {
	onPath[id] = true
	defer delete(onPath, id)

	var best []string
	for _, next := range a.graph.DependentsOf(id) {
		if onPath[next] {
			continue
		}
		best = preferPath(a.longestFrom(next, onPath), best)
	}
	return append([]string{id}, best...)
}

// preferPath picks the better of two candidate chains: the longer one, or on
// equal length the lexicographically smaller id sequence.
func preferPath(candidate, current []string) []string {
	switch {
	case len(candidate) > len(current):
		return candidate
	case len(candidate) < len(current):
		return current
	case slices.Compare(candidate, current) < 0:
		return candidate
	default:
		return current
	}
}
