package modules

import (
	"github.com/louisbranch/galien/internal/services/web/modules/dashboard"
	"github.com/louisbranch/galien/internal/services/web/modules/public"
	"github.com/louisbranch/galien/internal/services/web/modules/registration"
)

// DefaultModules returns the web modules in mount order.
func DefaultModules(deps Dependencies) []Module {
	return []Module{
		public.New(),
		registration.New(deps.Registration, deps.DraftTokens),
		dashboard.NewWithGateway(deps.Participants),
	}
}
