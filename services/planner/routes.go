// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package planner

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all planner routes with the router.
//
// Description:
//
//	Registers all /v1/plan/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Endpoints:
//
//	POST /v1/plan/analyze - Analyze a task plan
//	POST /v1/plan/render - Render a plan analysis as markdown
//	GET  /v1/plan/health - Health check
//	GET  /v1/plan/ready - Readiness check
//
// Example:
//
//	service := planner.NewService(planner.DefaultServiceConfig())
//	handlers := planner.NewHandlers(service)
//
//	v1 := router.Group("/v1")
//	planner.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	plan := rg.Group("/plan")
	{
		plan.POST("/analyze", handlers.HandleAnalyze)
		plan.POST("/render", handlers.HandleRender)

		plan.GET("/health", handlers.HandleHealth)
		plan.GET("/ready", handlers.HandleReady)
	}
}
