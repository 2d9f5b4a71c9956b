// Package terms renders the registration terms from embedded Markdown.
package terms

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

//go:embed terms_*.md
var sources embed.FS

var (
	renderOnce sync.Once
	rendered   map[i18n.Locale]string
	renderErr  error
)

// HTML returns the sanitized terms for locale.
func HTML(locale i18n.Locale) (string, error) {
	renderOnce.Do(func() {
		rendered, renderErr = renderAll()
	})
	if renderErr != nil {
		return "", renderErr
	}
	if !locale.Valid() {
		locale = i18n.DefaultLocale
	}
	return rendered[locale], nil
}

func renderAll() (map[i18n.Locale]string, error) {
	md := goldmark.New()
	policy := bluemonday.UGCPolicy()
	out := make(map[i18n.Locale]string, len(i18n.SupportedLocales()))
	for _, locale := range i18n.SupportedLocales() {
		source, err := sources.ReadFile("terms_" + locale.String() + ".md")
		if err != nil {
			return nil, fmt.Errorf("read terms %s: %w", locale, err)
		}
		html, err := Render(md, policy, source)
		if err != nil {
			return nil, fmt.Errorf("render terms %s: %w", locale, err)
		}
		out[locale] = html
	}
	return out, nil
}

// Render converts Markdown to HTML and strips anything policy disallows.
func Render(md goldmark.Markdown, policy *bluemonday.Policy, source []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}
