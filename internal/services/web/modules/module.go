// Package modules defines web module registry helpers.
package modules

import (
	"github.com/louisbranch/galien/internal/registration/drafttoken"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/modules/dashboard"
	"github.com/louisbranch/galien/internal/services/web/modules/registration"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the domain collaborators required to compose the web
// module registry. Each field is typed as the narrow interface defined by
// the consuming module. Nil fields mount the module in its unavailable
// state.
type Dependencies struct {
	Registration registration.Workflow
	DraftTokens  *drafttoken.Codec
	Participants dashboard.Gateway
}
