package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// ErrorPageTitle returns the document title for an error status.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if statusCode == http.StatusNotFound {
		return T(loc, "web.error.page_title_not_found")
	}
	return T(loc, "web.error.page_title_server_error")
}

// ErrorState renders the error page body for statusCode.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		titleKey, messageKey := "web.error.title_server_error", "web.error.message_server_error"
		if statusCode == http.StatusNotFound {
			titleKey, messageKey = "web.error.title_not_found", "web.error.message_not_found"
		}
		h.raw(`<section id="error-state" class="error-state"`)
		h.attr("data-status", strconv.Itoa(statusCode))
		h.raw(`><h1>`)
		h.text(T(loc, titleKey))
		h.raw(`</h1><p>`)
		h.text(T(loc, messageKey))
		h.raw(`</p><a`)
		h.attr("href", routepath.Root)
		h.raw(`>`)
		h.text(T(loc, "nav.home"))
		h.raw(`</a></section>`)
		return h.err
	})
}
