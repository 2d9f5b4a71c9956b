package participant

import (
	"testing"

	"github.com/louisbranch/galien/internal/platform/i18n"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		locale i18n.Locale
		want   string
	}{
		{name: "english", raw: "2023-09-15T10:30:00Z", locale: i18n.LocaleEN, want: "September 15, 2023, 10:30 AM"},
		{name: "french", raw: "2023-09-15T10:30:00Z", locale: i18n.LocaleFR, want: "15 septembre 2023 à 10:30"},
		{name: "afternoon english", raw: "2024-02-01T15:05:00Z", locale: i18n.LocaleEN, want: "February 1, 2024, 3:05 PM"},
		{name: "offset normalized to utc", raw: "2023-09-15T12:30:00+02:00", locale: i18n.LocaleFR, want: "15 septembre 2023 à 10:30"},
		{name: "date only english", raw: "2023-09-15", locale: i18n.LocaleEN, want: "September 15, 2023"},
		{name: "date only french", raw: " 2023-09-15 ", locale: i18n.LocaleFR, want: "15 septembre 2023"},
		{name: "impossible date only", raw: "2023-02-30", locale: i18n.LocaleEN, want: UnknownDate},
		{name: "malformed", raw: "not-a-date", locale: i18n.LocaleEN, want: UnknownDate},
		{name: "empty", raw: "", locale: i18n.LocaleFR, want: UnknownDate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatTimestamp(tc.raw, tc.locale); got != tc.want {
				t.Fatalf("FormatTimestamp(%q, %s) = %q, want %q", tc.raw, tc.locale, got, tc.want)
			}
		})
	}
}
