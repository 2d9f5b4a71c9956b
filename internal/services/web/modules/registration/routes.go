package registration

import (
	"net/http"

	"github.com/louisbranch/galien/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Register, h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Register, h.handleFormPost)
	mux.HandleFunc(http.MethodGet+" "+routepath.RegisterComplete, h.handleComplete)
	mux.HandleFunc(routepath.RegisterPrefix+"{rest...}", h.WriteNotFound)
}
