package app

import (
	"net/http"

	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/platform/httpx"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// BuildRootHandler composes the modules and adds the health, metrics and
// static asset endpoints.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	root, err := Compose(ComposeInput{
		Dependencies: cfg.Dependencies,
		Modules:      cfg.Modules,
	})
	if err != nil {
		return nil, err
	}
	root.Handle("GET "+routepath.Health, healthHandler(cfg.Modules))
	if cfg.Dependencies.Metrics != nil {
		root.Handle("GET "+routepath.Metrics, cfg.Dependencies.Metrics.Handler())
	}
	if cfg.StaticFS != nil {
		root.Handle(routepath.Static, http.StripPrefix(routepath.Static, http.FileServer(http.FS(cfg.StaticFS))))
	}
	return root, nil
}

type healthStatus struct {
	Status  string          `json:"status"`
	Modules map[string]bool `json:"modules"`
}

// healthHandler reports 503 when any module backed by a collaborator is
// mounted in its unavailable state.
func healthHandler(modules []module.Module) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status := healthStatus{Status: "ok", Modules: map[string]bool{}}
		code := http.StatusOK
		for _, feature := range modules {
			reporter, ok := feature.(module.HealthReporter)
			if !ok {
				continue
			}
			healthy := reporter.Healthy()
			status.Modules[feature.ID()] = healthy
			if !healthy {
				status.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		_ = httpx.WriteJSON(w, code, status)
	})
}
