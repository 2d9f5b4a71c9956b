// Package i18n owns the supported UI locales and the translation lookups
// shared by every web surface.
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies one supported UI language.
type Locale string

const (
	// LocaleFR is French, the default UI language.
	LocaleFR Locale = "fr"
	// LocaleEN is English.
	LocaleEN Locale = "en"

	// DefaultLocale is used when nothing else selects a language.
	DefaultLocale = LocaleFR
)

// ErrUnsupportedLocale reports a locale outside the supported set.
var ErrUnsupportedLocale = errors.New("unsupported locale")

var (
	tagFR = language.MustParse("fr-FR")
	tagEN = language.MustParse("en-US")

	supportedTags = []language.Tag{tagFR, tagEN}
	matcher       = language.NewMatcher(supportedTags)
)

// SupportedLocales returns the selectable locales in display order.
func SupportedLocales() []Locale {
	return []Locale{LocaleFR, LocaleEN}
}

// Valid reports whether the locale is supported.
func (l Locale) Valid() bool {
	return l == LocaleFR || l == LocaleEN
}

// String returns the short locale code.
func (l Locale) String() string {
	return string(l)
}

// Tag returns the regional language tag used for catalogs and printers.
func (l Locale) Tag() language.Tag {
	if l == LocaleEN {
		return tagEN
	}
	return tagFR
}

// CatalogLocale returns the catalog directory name for the locale.
func (l Locale) CatalogLocale() string {
	return l.Tag().String()
}

// Other returns the opposite locale for the two-language toggle.
func (l Locale) Other() Locale {
	if l == LocaleEN {
		return LocaleFR
	}
	return LocaleEN
}

// ParseLocale accepts short codes ("fr") and regional tags ("en-GB").
func ParseLocale(raw string) (Locale, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", false
	}
	return LocaleForTag(tag)
}

// LocaleForTag maps a language tag onto a supported locale by base language.
func LocaleForTag(tag language.Tag) (Locale, bool) {
	base, _ := tag.Base()
	switch base.String() {
	case "fr":
		return LocaleFR, true
	case "en":
		return LocaleEN, true
	default:
		return "", false
	}
}

// MatchTags picks the best supported locale for an Accept-Language list.
func MatchTags(tags []language.Tag) (Locale, bool) {
	if len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return LocaleForTag(supportedTags[index])
}
