package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   Locale
		wantOK bool
	}{
		{raw: "fr", want: LocaleFR, wantOK: true},
		{raw: "fr-CA", want: LocaleFR, wantOK: true},
		{raw: " en ", want: LocaleEN, wantOK: true},
		{raw: "en-GB", want: LocaleEN, wantOK: true},
		{raw: "de", wantOK: false},
		{raw: "", wantOK: false},
		{raw: "!!", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseLocale(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseLocale(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestLocaleTagAndOther(t *testing.T) {
	t.Parallel()

	if got := LocaleFR.CatalogLocale(); got != "fr-FR" {
		t.Fatalf("fr catalog locale = %q, want fr-FR", got)
	}
	if got := LocaleEN.CatalogLocale(); got != "en-US" {
		t.Fatalf("en catalog locale = %q, want en-US", got)
	}
	if LocaleFR.Other() != LocaleEN || LocaleEN.Other() != LocaleFR {
		t.Fatal("expected fr and en to toggle onto each other")
	}
	if Locale("de").Valid() {
		t.Fatal("expected de to be invalid")
	}
}

func TestMatchTagsPrefersSupportedLanguage(t *testing.T) {
	t.Parallel()

	tags, _, err := language.ParseAcceptLanguage("de-DE,en;q=0.8,fr;q=0.5")
	if err != nil {
		t.Fatalf("parse accept-language: %v", err)
	}
	got, ok := MatchTags(tags)
	if !ok || got != LocaleEN {
		t.Fatalf("MatchTags = %q, %v; want en, true", got, ok)
	}
	if _, ok := MatchTags(nil); ok {
		t.Fatal("expected empty tag list to report no match")
	}
}
