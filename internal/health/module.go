// Package health serves the liveness endpoint.
package health

import (
	apphttp "tradie_receptionist/internal/http"
	"tradie_receptionist/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// OperatorCounter reports how many operators are loaded.
type OperatorCounter interface {
	Count() int
}

// Response is the health check body.
type Response struct {
	Status        string `json:"status"`
	TradiesLoaded int    `json:"tradies_loaded"`
}

// Module serves GET /health.
type Module struct {
	operators OperatorCounter
}

// NewModule creates the health module.
func NewModule(ops OperatorCounter) *Module {
	return &Module{operators: ops}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "health"
}

// RegisterRoutes mounts the health endpoint at the top level.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/health", m.handleHealth)
}

func (m *Module) handleHealth(c *gin.Context) {
	httpkit.OK(c, Response{Status: "ok", TradiesLoaded: m.operators.Count()})
}

var _ apphttp.Module = (*Module)(nil)
