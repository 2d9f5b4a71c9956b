// Package registration serves the multi-step registration form.
package registration

import (
	"context"
	"errors"
	"net/http"

	"github.com/louisbranch/galien/internal/registration"
	"github.com/louisbranch/galien/internal/registration/drafttoken"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// Workflow is the registration behavior the form drives.
type Workflow interface {
	LoadOrStart(ctx context.Context, draftID string) (registration.Draft, error)
	Next(ctx context.Context, draft registration.Draft, input registration.Application) (registration.Draft, error)
	Previous(ctx context.Context, draft registration.Draft, input registration.Application) (registration.Draft, error)
	Submit(ctx context.Context, draft registration.Draft, input registration.Application) (string, registration.Draft, error)
	Flow(draft registration.Draft) *registration.Flow
	IsSubmitting(draftID string) bool
}

// Module provides the registration routes.
type Module struct {
	workflow Workflow
	tokens   *drafttoken.Codec
}

// New returns a registration module. A nil workflow serves an unavailable
// form.
func New(workflow Workflow, tokens *drafttoken.Codec) Module {
	return Module{workflow: workflow, tokens: tokens}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "registration" }

// Healthy reports whether the module has a working workflow.
func (m Module) Healthy() bool {
	return m.workflow != nil
}

// Mount wires registration route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if m.tokens == nil {
		return module.Mount{}, errors.New("registration draft token codec is required")
	}
	workflow := m.workflow
	if workflow == nil {
		workflow = unavailableWorkflow{}
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(workflow, m.tokens), deps))
	return module.Mount{Prefix: routepath.RegisterPrefix, Handler: mux}, nil
}
