package participant

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/galien/internal/platform/i18n"
)

// UnknownDate is returned for timestamps that cannot be parsed.
const UnknownDate = "unknown date"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatTimestamp renders an ISO-8601 timestamp as a long date with time of
// day in UTC, using the month names and layout of locale. A date without a
// time of day, such as "2023-09-15", renders as the long date alone.
func FormatTimestamp(raw string, locale i18n.Locale) string {
	return formatTimestamp(defaultProvider, raw, locale)
}

var defaultProvider = i18n.NewProvider(i18n.DefaultLocale)

func formatTimestamp(provider *i18n.Provider, raw string, locale i18n.Locale) string {
	parsed, ok := parseTimestamp(raw)
	if !ok {
		if day, err := time.Parse(time.DateOnly, strings.TrimSpace(raw)); err == nil {
			month := provider.Translate("core.date.month."+strconv.Itoa(int(day.Month())), locale)
			return fmt.Sprintf(provider.Translate("core.date.day", locale), day.Day(), month, day.Year())
		}
		return UnknownDate
	}
	parsed = parsed.UTC()

	month := provider.Translate("core.date.month."+strconv.Itoa(int(parsed.Month())), locale)
	layout := provider.Translate("core.date.time_layout", locale)
	template := provider.Translate("core.date.long", locale)
	return fmt.Sprintf(template, parsed.Day(), month, parsed.Year(), parsed.Format(layout))
}

func parseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
