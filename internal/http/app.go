// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"tradie_receptionist/platform/config"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/metrics"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.DashboardAuthConfig
	config.RateLimitConfig
}

// App holds the fully initialized application dependencies.
// It is populated by the serve command (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Metrics is served on /metrics. May be nil.
	Metrics *metrics.Metrics
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
