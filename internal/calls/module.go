package calls

import (
	apphttp "tradie_receptionist/internal/http"
)

// Module is the calls bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	store   *Store
}

// NewModule creates the calls module around a shared store.
func NewModule(store *Store) *Module {
	return &Module{handler: NewHandler(store), store: store}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "calls"
}

// Store exposes the call log to the webhook and scheduler wiring.
func (m *Module) Store() *Store {
	return m.store
}

// RegisterRoutes mounts the dashboard query routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/calls/:tradieId", m.handler.HandleListCalls)
	ctx.API.GET("/spam-stats/:tradieId", m.handler.HandleSpamStats)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
