package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// Layout renders the full document around the children in ctx.
func Layout(title string, page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		appName := T(page.Loc, "core.app_name")
		fullTitle := appName
		if title = strings.TrimSpace(title); title != "" && title != appName {
			fullTitle = title + " | " + appName
		}
		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", pageLocale(page).String())
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(fullTitle)
		h.raw(`</title><link rel="stylesheet"`)
		h.attr("href", routepath.Static+"galien.css")
		h.raw(`><script defer`)
		h.attr("src", routepath.Static+"galien.js")
		h.raw(`></script></head><body>`)
		h.component(ctx, Header(page))
		if page.Toast != nil {
			h.raw(`<div role="status" id="toast"`)
			h.attr("class", "toast toast-"+page.Toast.Kind)
			h.raw(`>`)
			h.text(page.Toast.Message)
			h.raw(`</div>`)
		}
		h.component(ctx, MainContent())
		h.raw(`</body></html>`)
		return h.err
	})
}

// MainContent renders the children in ctx inside the main landmark. HTMX
// requests receive only this part.
func MainContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<main id="main">`)
		h.component(ctx, templ.GetChildren(ctx))
		h.raw(`</main>`)
		return h.err
	})
}

// Header renders the site navigation, the dashboard link and the language
// toggle.
func Header(page PageContext) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		location := page.Location()
		h.raw(`<header class="site-header"><a class="brand"`)
		h.attr("href", routepath.Root)
		h.raw(`>`)
		h.text(T(page.Loc, "core.app_name"))
		h.raw(`</a><nav`)
		h.attr("aria-label", T(page.Loc, "nav.toggle_menu"))
		h.raw(`><ul>`)
		for _, link := range NavLinks() {
			active := routepath.IsActive(link.Path, location)
			h.raw(`<li><a`)
			h.attr("href", link.Path)
			h.attr("class", classes("nav-link", activeClass(active)))
			if active {
				h.attr("aria-current", "page")
			}
			h.raw(`>`)
			h.text(T(page.Loc, link.LabelKey))
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav>`)

		dashboardActive := location.Path == routepath.Dashboard || strings.HasPrefix(location.Path, routepath.DashboardPrefix)
		h.raw(`<a id="dashboard-link"`)
		h.attr("href", routepath.DashboardList(routepath.DefaultSlug))
		h.attr("class", classes("dashboard-link", activeClass(dashboardActive)))
		h.raw(`>`)
		h.text(T(page.Loc, "nav.dashboard"))
		h.raw(`</a>`)

		toggle := ToggleLanguage(page)
		h.raw(`<a id="language-toggle" class="language-toggle"`)
		h.attr("href", toggle.URL)
		h.attr("hreflang", toggle.Locale.String())
		h.raw(`>`)
		h.text(toggle.Label)
		h.raw(`</a></header>`)
		return h.err
	})
}

func activeClass(active bool) string {
	if active {
		return "active"
	}
	return ""
}
