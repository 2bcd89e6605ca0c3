// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"slices"
	"testing"
)

func criticalPath(tasks []Task) []string {
	return NewCriticalPathAnalyzer(NewTaskGraph(tasks)).CriticalPath()
}

func TestCriticalPathLinearChain(t *testing.T) {
	got := criticalPath([]Task{
		task("A"),
		task("B", "A"),
		task("C", "B"),
	})
	if !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("CriticalPath() = %v, want [A B C]", got)
	}
}

func TestCriticalPathDiamondPrefersLexicographicTie(t *testing.T) {
	// A -> B -> D and A -> C -> D have equal length; the tie-break picks
	// the lexicographically smaller sequence.
	got := criticalPath(diamondTasks())
	if !slices.Equal(got, []string{"A", "B", "D"}) {
		t.Fatalf("CriticalPath() = %v, want [A B D]", got)
	}
}

func TestCriticalPathPicksLongerBranch(t *testing.T) {
	got := criticalPath([]Task{
		task("A"),
		task("B", "A"),
		task("C", "A"),
		task("D", "C"),
		task("E", "D"),
	})
	if !slices.Equal(got, []string{"A", "C", "D", "E"}) {
		t.Fatalf("CriticalPath() = %v, want [A C D E]", got)
	}
}

func TestCriticalPathAcrossMultipleRoots(t *testing.T) {
	got := criticalPath([]Task{
		task("R1"),
		task("R2"),
		task("X", "R2"),
		task("Y", "X"),
	})
	if !slices.Equal(got, []string{"R2", "X", "Y"}) {
		t.Fatalf("CriticalPath() = %v, want [R2 X Y]", got)
	}
}

func TestCriticalPathEveryPairIsARealEdge(t *testing.T) {
	tasks := []Task{
		task("A"),
		task("B", "A"),
		task("C", "A", "B"),
		task("D", "C"),
		task("E", "B"),
	}
	g := NewTaskGraph(tasks)
	path := NewCriticalPathAnalyzer(g).CriticalPath()

	for i := 0; i+1 < len(path); i++ {
		if !slices.Contains(g.DependentsOf(path[i]), path[i+1]) {
			t.Fatalf("path %v: %s -> %s is not a dependency edge", path, path[i], path[i+1])
		}
	}
}

func TestCriticalPathTerminatesOnCyclicGraph(t *testing.T) {
	// The root leads into a cycle; without per-branch tracking the walk
	// would loop forever. The analyzer runs without the Validator here on
	// purpose.
	got := criticalPath([]Task{
		task("A"),
		task("B", "A", "C"),
		task("C", "B"),
	})

	if len(got) == 0 {
		t.Fatal("CriticalPath() = empty, want a best-effort path from A")
	}
	if got[0] != "A" {
		t.Fatalf("CriticalPath() = %v, want path starting at root A", got)
	}
}

func TestCriticalPathNoRoots(t *testing.T) {
	// Fully cyclic graph has no roots; best effort is an empty path.
	got := criticalPath([]Task{
		task("A", "B"),
		task("B", "A"),
	})
	if len(got) != 0 {
		t.Fatalf("CriticalPath() = %v, want empty for a rootless graph", got)
	}
}

func TestCriticalPathEmptyGraph(t *testing.T) {
	got := criticalPath(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("CriticalPath() = %#v, want non-nil empty slice", got)
	}
}
