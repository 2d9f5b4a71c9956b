// Package modulehandler provides a composable base for web module handlers.
//
// Modules share request localization, page rendering, flash notices and
// error handling. This package extracts that shared scaffold so modules
// embed it rather than duplicating it.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/galien/internal/platform/i18n"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/platform/csrf"
	"github.com/louisbranch/galien/internal/services/web/platform/flash"
	webi18n "github.com/louisbranch/galien/internal/services/web/platform/i18n"
	"github.com/louisbranch/galien/internal/services/web/platform/pagerender"
	"github.com/louisbranch/galien/internal/services/web/platform/weberror"
)

// Base carries the shared collaborators used by module handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// Dependencies returns the module dependencies the base was built with.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// PageLocalizer resolves the request localizer.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) i18n.Localizer {
	return webi18n.ResolveLocalizer(w, r, b.deps.Localization)
}

// CSRFField is the form field that carries the token.
func (Base) CSRFField() string {
	return csrf.FieldName
}

// CSRFToken returns the token for a form posting to action.
func (b Base) CSRFToken(r *http.Request, action string) string {
	return b.deps.CSRFToken(r, action)
}

// Notify stores a flash notice for the next rendered page.
func (b Base) Notify(w http.ResponseWriter, r *http.Request, notice flash.Notice) {
	b.deps.Flash.Write(w, r, notice)
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}

// WriteNotFound renders a 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// WritePage renders a full module page (HTMX-aware).
func (b Base) WritePage(
	w http.ResponseWriter,
	r *http.Request,
	loc i18n.Localizer,
	title string,
	statusCode int,
	fragment templ.Component,
) {
	if err := pagerender.WriteModulePage(w, r, b.deps, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Localizer:  loc,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}
