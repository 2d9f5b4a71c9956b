package templates

import (
	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/services/shared/i18nhttp"
)

// LanguageOption represents a supported language option in the UI.
type LanguageOption = i18nhttp.LanguageOption

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	return i18nhttp.BuildLanguageOptions(pageLocale(page), page.CurrentPath, page.CurrentQuery, func(locale i18n.Locale) string {
		return T(page.Loc, i18nhttp.LanguageKeyLabel(locale))
	})
}

// ToggleLanguage returns the option that switches to the other locale.
func ToggleLanguage(page PageContext) LanguageOption {
	other := pageLocale(page).Other()
	for _, option := range LanguageOptions(page) {
		if option.Locale == other {
			return option
		}
	}
	return LanguageOption{Locale: other, Label: other.String(), URL: i18nhttp.LanguageURL(page.CurrentPath, page.CurrentQuery, other)}
}

func pageLocale(page PageContext) i18n.Locale {
	if page.Locale.Valid() {
		return page.Locale
	}
	return i18n.DefaultLocale
}
