// Package i18nhttp resolves the UI locale of an HTTP request.
package i18nhttp

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "galien_lang"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Locale i18n.Locale
	Label  string
	URL    string
	Active bool
}

// ResolveLocale picks the request locale from the lang query parameter, the
// language cookie, Accept-Language and finally fallback. The bool reports
// whether the query parameter chose it and should be persisted.
func ResolveLocale(r *http.Request, fallback i18n.Locale) (i18n.Locale, bool) {
	if !fallback.Valid() {
		fallback = i18n.DefaultLocale
	}
	if r == nil {
		return fallback, false
	}

	if raw := strings.TrimSpace(r.URL.Query().Get(LangParam)); raw != "" {
		if locale, ok := i18n.ParseLocale(raw); ok {
			return locale, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if locale, ok := i18n.ParseLocale(cookie.Value); ok {
			return locale, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			if locale, ok := i18n.MatchTags(tags); ok {
				return locale, false
			}
		}
	}

	return fallback, false
}

// SetLanguageCookie persists the selected locale on the response.
func SetLanguageCookie(w http.ResponseWriter, locale i18n.Locale) {
	if w == nil || !locale.Valid() {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    locale.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageURL returns path and query with the lang parameter replaced.
func LanguageURL(path string, rawQuery string, locale i18n.Locale) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, locale.String())
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// BuildLanguageOptions returns one option per supported locale for the
// current URL.
func BuildLanguageOptions(active i18n.Locale, path string, rawQuery string, label func(i18n.Locale) string) []LanguageOption {
	locales := i18n.SupportedLocales()
	options := make([]LanguageOption, 0, len(locales))
	for _, locale := range locales {
		text := locale.String()
		if label != nil {
			if resolved := strings.TrimSpace(label(locale)); resolved != "" {
				text = resolved
			}
		}
		options = append(options, LanguageOption{
			Locale: locale,
			Label:  text,
			URL:    LanguageURL(path, rawQuery, locale),
			Active: locale == active,
		})
	}
	return options
}

// LanguageKeyLabel maps a locale to its catalog label key.
func LanguageKeyLabel(locale i18n.Locale) string {
	return "core.lang." + locale.String()
}
