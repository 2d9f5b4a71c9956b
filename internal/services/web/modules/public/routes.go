package public

import (
	"net/http"

	"github.com/louisbranch/galien/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(routepath.Root, h.WriteNotFound)
}
