package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// HomePage renders the public landing page.
func HomePage(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section id="home" class="hero"><h1>`)
		h.text(T(loc, "home.title"))
		h.raw(`</h1><p>`)
		h.text(T(loc, "home.tagline"))
		h.raw(`</p><a class="button primary"`)
		h.attr("href", routepath.Register)
		h.raw(`>`)
		h.text(T(loc, "home.cta_register"))
		h.raw(`</a></section>`)
		return h.err
	})
}
