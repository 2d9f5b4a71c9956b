// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/galien/internal/platform/i18n"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/galien/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/galien/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	// Localizer is resolved from the request when left zero.
	Localizer i18n.Localizer
	Fragment  templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a module page using shared layout rendering contracts.
func WriteModulePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}
	loc := page.Localizer
	if loc == (i18n.Localizer{}) {
		loc = webi18n.ResolveLocalizer(w, r, deps.Localization)
	}

	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := webtemplates.MainContent().Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		pageCtx := webtemplates.PageContext{
			Locale: loc.Locale(),
			Loc:    loc,
			Toast:  resolveFlashToast(w, r, deps, loc),
		}
		if r != nil && r.URL != nil {
			pageCtx.CurrentPath = r.URL.Path
			pageCtx.CurrentQuery = r.URL.RawQuery
		}
		if err := webtemplates.Layout(page.Title, pageCtx).Render(ctx, &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, deps module.Dependencies, loc i18n.Localizer) *webtemplates.Toast {
	notice, ok := deps.Flash.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(loc.T(notice.Key))
	if message == "" {
		return nil
	}
	return &webtemplates.Toast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
