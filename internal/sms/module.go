package sms

import (
	apphttp "tradie_receptionist/internal/http"
	"tradie_receptionist/platform/config"
	"tradie_receptionist/platform/logger"

	"github.com/gin-gonic/gin"
)

// Module is the inbound SMS bounded context module implementing http.Module.
type Module struct {
	handler   *Handler
	signature gin.HandlerFunc
}

// NewModule creates the inbound SMS module.
func NewModule(ops OperatorLookup, callers LastCallerSource, notifier *Notifier, cfg config.SignatureConfig, log *logger.Logger) *Module {
	return &Module{
		handler:   NewHandler(ops, callers, notifier, log),
		signature: SignatureMiddleware(cfg, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sms"
}

// RegisterRoutes mounts the inbound SMS webhook.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Webhooks.POST("/sms-incoming", m.signature, m.handler.HandleIncoming)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
