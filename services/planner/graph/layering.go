// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// LayeringEngine partitions a plan into maximum-parallelism execution layers.
//
// Description:
//
//	Greedy levelization: layer 0 is every task declaring no dependencies;
//	each subsequent layer is every not-yet-assigned task whose every
//	declared dependency sits in a strictly earlier layer. A dependency on a
//	missing task, or on a task caught in a cycle, can never be satisfied.
//
//	The engine follows an always-total policy: when an iteration finds no
//	qualifying task but tasks remain unassigned (the hallmark of a cycle or
//	an unresolved missing-dependency chain), all remaining tasks are placed
//	into one final catch-all layer instead of looping forever. Every input
//	task therefore lands in exactly one layer, even for invalid graphs, so
//	downstream consumers never see a partial partition.
//
// Thread Safety:
//
//	LayeringEngine holds no mutable state between calls and is safe for
//	concurrent use.
type LayeringEngine struct {
	graph *TaskGraph
}

// NewLayeringEngine creates a layering engine for the given graph.
func NewLayeringEngine(g *TaskGraph) *LayeringEngine {
	return &LayeringEngine{graph: g}
}

// Layers computes the execution layers and the maximum parallelism.
//
// Outputs:
//
//	Parallelization - Ordered layers (ids sorted within each layer) and the
//	                  width of the widest layer. Layers are empty, never
//	                  nil, for an empty graph.
func (e *LayeringEngine) Layers() Parallelization {
	layers := make([][]string, 0)
	assigned := make(map[string]bool, e.graph.Len())
	remaining := e.graph.Len()

	for remaining > 0 {
		layer := make([]string, 0)
		for _, id := range e.graph.TaskIDs() {
			if assigned[id] {
				continue
			}
			if e.satisfied(id, assigned) {
				layer = append(layer, id)
			}
		}

		if len(layer) == 0 {
			// Stuck: cycle or missing-dependency chain. Catch-all layer.
			for _, id := range e.graph.TaskIDs() {
				if !assigned[id] {
					layer = append(layer, id)
				}
			}
			layers = append(layers, layer)
			break
		}

		for _, id := range layer {
			assigned[id] = true
		}
		remaining -= len(layer)
		layers = append(layers, layer)
	}

	maxParallel := 0
	for _, layer := range layers {
		if len(layer) > maxParallel {
			maxParallel = len(layer)
		}
	}

	return Parallelization{
		MaxParallel:     maxParallel,
		ExecutionLayers: layers,
	}
}

// satisfied reports whether every declared dependency of id was assigned in
// an earlier iteration. Unresolved ids and self-references are never
// satisfied.
func (e *LayeringEngine) satisfied(id string, assigned map[string]bool) bool {
	for _, dep := range e.graph.DependenciesOf(id) {
		if !assigned[dep] {
			return false
		}
	}
	return true
}
