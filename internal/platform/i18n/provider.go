package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/galien/internal/platform/i18n/catalog"
	"golang.org/x/text/message"
)

// Provider holds the process-wide current locale and resolves catalog keys.
//
// Request handlers should not mutate the current locale; they thread a
// Localizer built for the request instead.
type Provider struct {
	mu      sync.RWMutex
	current Locale
	bundle  *catalog.Bundle
}

// NewProvider builds a provider over the embedded catalogs. Unsupported
// initial locales fall back to DefaultLocale.
func NewProvider(initial Locale) *Provider {
	return NewProviderWithBundle(initial, catalog.Default())
}

// NewProviderWithBundle builds a provider over an explicit catalog bundle.
func NewProviderWithBundle(initial Locale, bundle *catalog.Bundle) *Provider {
	if !initial.Valid() {
		initial = DefaultLocale
	}
	return &Provider{current: initial, bundle: bundle}
}

// Current returns the active locale.
func (p *Provider) Current() Locale {
	if p == nil {
		return DefaultLocale
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// SetLocale replaces the active locale.
func (p *Provider) SetLocale(locale Locale) error {
	if !locale.Valid() {
		return fmt.Errorf("set locale %q: %w", locale, ErrUnsupportedLocale)
	}
	p.mu.Lock()
	p.current = locale
	p.mu.Unlock()
	return nil
}

// Toggle switches between the two supported locales and returns the new one.
func (p *Provider) Toggle() Locale {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = p.current.Other()
	return p.current
}

// Translate returns the text for key in locale. Missing keys fall back to
// the base catalog locale and then to the key itself.
func (p *Provider) Translate(key string, locale Locale) string {
	if !locale.Valid() {
		locale = p.Current()
	}
	var bundle *catalog.Bundle
	if p != nil {
		bundle = p.bundle
	}
	if value, ok := bundle.Message(locale.CatalogLocale(), key); ok {
		return value
	}
	return key
}

// Localizer returns a request-scoped translator for locale.
func (p *Provider) Localizer(locale Locale) Localizer {
	if !locale.Valid() {
		locale = p.Current()
	}
	return Localizer{
		locale:   locale,
		provider: p,
		printer:  message.NewPrinter(locale.Tag()),
	}
}

// Localizer translates keys for one locale. The zero value translates with
// DefaultLocale and the embedded catalogs.
type Localizer struct {
	locale   Locale
	provider *Provider
	printer  *message.Printer
}

// Locale returns the localizer's locale.
func (l Localizer) Locale() Locale {
	if !l.locale.Valid() {
		return DefaultLocale
	}
	return l.locale
}

// T translates key, formatting args into the message when present.
func (l Localizer) T(key string, args ...any) string {
	provider := l.provider
	if provider == nil {
		provider = defaultProvider()
	}
	template := provider.Translate(strings.TrimSpace(key), l.Locale())
	if len(args) == 0 {
		return template
	}
	printer := l.printer
	if printer == nil {
		printer = message.NewPrinter(l.Locale().Tag())
	}
	return printer.Sprintf(template, args...)
}

// Sprintf implements the printer contract expected by page templates.
func (l Localizer) Sprintf(key message.Reference, args ...any) string {
	if value, ok := key.(string); ok {
		return l.T(value, args...)
	}
	return fmt.Sprint(key)
}

var (
	defaultProviderOnce sync.Once
	defaultProviderInst *Provider
)

func defaultProvider() *Provider {
	defaultProviderOnce.Do(func() {
		defaultProviderInst = NewProvider(DefaultLocale)
	})
	return defaultProviderInst
}
