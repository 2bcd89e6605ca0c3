// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package graph analyzes AI-generated task plans as dependency graphs.
//
// The package turns a flat task list into an in-memory dependency graph and
// derives a structural report from it: validation issues (missing references,
// cycles, orphans, bottlenecks), the critical path, and maximum-parallelism
// execution layers.
//
// # Error Model
//
// Two kinds of "wrong" input are kept strictly apart:
//
//   - Contract violations (empty or duplicate task ids) are caller bugs and
//     are returned as errors from Analyze. No report is produced.
//   - Data validity problems (dangling references, cycles, orphans,
//     bottlenecks) are expected input and never raise. They are captured as
//     Issue entries in a successfully returned Report, and the analyzers
//     still produce a best-effort critical path and layering.
//
// # Determinism
//
// Every traversal iterates task ids in lexicographic order and every tie is
// broken lexicographically, so two calls with the same task list produce
// byte-identical reports regardless of input ordering.
//
// # Lifecycle
//
// All state is allocated per Analyze call and discarded afterwards. Nothing
// is cached, persisted, or mutated; tasks are taken by value. The package is
// safe for concurrent use.
package graph

import "errors"

// Sentinel errors for input contract violations.
var (
	// ErrInvalidTask is returned when a task has no usable id.
	ErrInvalidTask = errors.New("task has no usable id")

	// ErrDuplicateTask is returned when two tasks share the same id.
	ErrDuplicateTask = errors.New("duplicate task id")
)
