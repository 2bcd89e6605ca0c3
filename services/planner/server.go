// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/planvet/planvet/services/planner/observability"
)

// Server defines the contract for the planner HTTP server.
//
// Thread Safety:
//
//	Implementations must be safe for concurrent use. Run() blocks and
//	should only be called once per instance.
type Server interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	Run() error

	// Router returns the underlying Gin engine for testing.
	Router() *gin.Engine
}

// Config holds planner server configuration options.
//
// All fields are optional; zero values use defaults applied by NewServer.
type Config struct {
	// Port is the HTTP server port. Default: 12310
	Port int

	// OTelEndpoint is the OpenTelemetry collector endpoint.
	// If empty, tracing export is disabled.
	OTelEndpoint string

	// EnableMetrics enables the Prometheus /metrics endpoint.
	// Default: false
	EnableMetrics bool

	// GinMode sets the Gin framework mode.
	// Valid values: "debug", "release", "test"
	GinMode string

	// MaxTasks is the maximum number of tasks accepted per plan.
	// Default: 5000
	MaxTasks int
}

// server implements Server for production use.
//
// Coordinates HTTP routing via Gin, the analysis service, OpenTelemetry
// tracing, and Prometheus metrics. All fields are read-only after
// NewServer returns.
type server struct {
	config        Config
	router        *gin.Engine
	svc           *Service
	tracerCleanup func(context.Context)
}

// NewServer creates a new planner Server with the given configuration.
//
// Description:
//
//	Applies defaults, initializes tracing and metrics, builds the analysis
//	service, and registers all routes. The returned server is ready to Run.
//
// Inputs:
//
//	cfg - Server configuration. Zero values use defaults.
//
// Outputs:
//
//	Server - Ready-to-run planner server
//	error - Non-nil if tracer initialization fails
func NewServer(cfg Config) (Server, error) {
	s := &server{
		config: applyConfigDefaults(cfg),
	}

	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	cleanup, err := s.initTracer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	s.tracerCleanup = cleanup

	serviceConfig := DefaultServiceConfig()
	serviceConfig.MaxTasks = s.config.MaxTasks
	s.svc = NewService(serviceConfig)

	if s.config.EnableMetrics {
		s.svc.WithMetrics(observability.InitMetrics())
		slog.Info("Initialized Prometheus metrics for plan analysis")
	}

	s.initRouter()

	return s, nil
}

// Run starts the HTTP server and blocks until shutdown or error.
func (s *server) Run() error {
	defer s.cleanup()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting planner server", "port", s.config.Port)

	return s.router.Run(addr)
}

// Router returns the underlying Gin engine for testing.
func (s *server) Router() *gin.Engine {
	return s.router
}

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12310
	}
	if cfg.MaxTasks == 0 {
		cfg.MaxTasks = DefaultServiceConfig().MaxTasks
	}
	return cfg
}

// initTracer initializes OpenTelemetry distributed tracing.
//
// Sets up an OTLP trace exporter when an endpoint is configured. With no
// endpoint, spans stay on the default no-op provider and this is free.
func (s *server) initTracer() (func(context.Context), error) {
	if s.config.OTelEndpoint == "" {
		slog.Info("OTel endpoint not configured, trace export disabled")
		return func(context.Context) {}, nil
	}

	ctx := context.Background()

	conn, err := grpc.NewClient(s.config.OTelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("planner-service")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}

	return cleanup, nil
}

// initRouter sets up the Gin HTTP router with all routes.
func (s *server) initRouter() {
	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("planner-service"))

	if s.config.EnableMetrics {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	handlers := NewHandlers(s.svc)
	v1 := s.router.Group("/v1")
	RegisterRoutes(v1, handlers)
}

// cleanup releases resources held by the server.
func (s *server) cleanup() {
	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}

// Compile-time interface compliance.
var _ Server = (*server)(nil)
