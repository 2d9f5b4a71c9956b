// Package i18n resolves request localizers for web handlers.
package i18n

import (
	"net/http"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/services/shared/i18nhttp"
)

// ResolveLocalizer returns the localizer for the request locale. A locale
// chosen through the lang query parameter is persisted in the language
// cookie so later pages keep it.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, provider *i18n.Provider) i18n.Localizer {
	if provider == nil {
		provider = i18n.NewProvider(i18n.DefaultLocale)
	}
	locale, persist := i18nhttp.ResolveLocale(r, provider.Current())
	if persist {
		i18nhttp.SetLanguageCookie(w, locale)
	}
	return provider.Localizer(locale)
}
