// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// The router stays decoupled from individual endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router context.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared route groups for module registration.
type RouterContext struct {
	// Engine is the root Gin engine for routes mounted at the top level.
	Engine *gin.Engine
	// Webhooks is the /webhook group, rate limited per client IP.
	Webhooks *gin.RouterGroup
	// API is the /api group, behind the optional dashboard bearer token.
	API *gin.RouterGroup
}
