// Package dashboard serves the organizer participant list and detail pages.
package dashboard

import (
	"net/http"

	"github.com/louisbranch/galien/internal/participant"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// Gateway loads participants and applies organizer actions.
type Gateway interface {
	participant.Reader
	participant.Actions
}

// Module provides dashboard routes.
type Module struct {
	gateway Gateway
}

// New returns a dashboard module whose gateway is not configured.
func New() Module {
	return Module{}
}

// NewWithGateway returns a dashboard module backed by gateway.
func NewWithGateway(gateway Gateway) Module {
	return Module{gateway: gateway}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Healthy reports whether the module has a configured gateway.
func (m Module) Healthy() bool {
	return m.gateway != nil
}

// Mount wires dashboard route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	gateway := m.gateway
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(gateway), deps))
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
