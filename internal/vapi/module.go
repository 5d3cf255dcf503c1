package vapi

import (
	"tradie_receptionist/internal/calls"
	apphttp "tradie_receptionist/internal/http"
	"tradie_receptionist/internal/sms"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/metrics"
)

// Module is the voice webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates the voice webhook module.
func NewModule(ops OperatorLookup, store *calls.Store, notifier *sms.Notifier, log *logger.Logger, met *metrics.Metrics) *Module {
	svc := NewService(ops, store, notifier, log, met)
	return &Module{handler: NewHandler(svc, log)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "vapi"
}

// RegisterRoutes mounts the voice webhook.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Webhooks.POST("/vapi", m.handler.HandleWebhook)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
