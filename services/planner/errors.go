// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package planner

import "errors"

// Service-level errors. Contract errors from the graph package
// (graph.ErrInvalidTask, graph.ErrDuplicateTask) pass through unchanged.
var (
	// ErrPlanTooLarge indicates the task list exceeds the configured limit.
	ErrPlanTooLarge = errors.New("plan exceeds the configured task limit")
)
