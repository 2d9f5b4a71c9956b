// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/services/web/platform/csrf"
	"github.com/louisbranch/galien/internal/services/web/platform/flash"
	"github.com/louisbranch/galien/internal/services/web/platform/metrics"
	"github.com/louisbranch/galien/internal/services/web/platform/requestmeta"
)

// Dependencies carries the request-scoped collaborators every module shares.
// Zero values are usable: pages render in the default locale and forms carry
// no XSRF token.
type Dependencies struct {
	Localization *i18n.Provider
	CSRF         *csrf.Protector
	Flash        flash.Store
	Metrics      *metrics.Metrics
	RequestMeta  requestmeta.SchemePolicy
}

// CSRFToken returns the form token for a POST to action.
func (d Dependencies) CSRFToken(r *http.Request, action string) string {
	if d.CSRF == nil {
		return ""
	}
	return d.CSRF.Token(r, action)
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability. Modules backed by a gateway implement this so
// the health endpoint reflects missing collaborators.
type HealthReporter interface {
	Healthy() bool
}
