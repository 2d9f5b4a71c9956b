package public

import (
	"net/http"

	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/platform/modulehandler"
	webtemplates "github.com/louisbranch/galien/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps)}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	h.WritePage(w, r, loc, loc.T("home.title"), http.StatusOK, webtemplates.HomePage(loc))
}
