// Package catalog loads the embedded YAML message catalogs and registers them
// with golang.org/x/text/message.
//
// Catalogs live at locales/<locale>/<namespace>.yaml. Each file repeats its
// locale and namespace so a misplaced file fails loudly instead of shadowing
// another locale.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

const catalogGlob = "locales/*/*.yaml"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type entry struct {
	namespace string
	value     string
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	// locale -> key -> entry
	locales map[string]map[string]entry
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads and validates every catalog file in catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, catalogGlob)
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]entry{}}
	for _, p := range paths {
		raw, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("decode catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s has no catalogs", BaseLocale)
	}
	if err := b.checkNamespaces(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	wantLocale := path.Base(path.Dir(p))
	wantNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	switch {
	case locale == "":
		return errors.New("locale is required")
	case locale != wantLocale:
		return fmt.Errorf("locale %q does not match directory %q", locale, wantLocale)
	}
	namespace := strings.TrimSpace(file.Namespace)
	switch {
	case namespace == "":
		return errors.New("namespace is required")
	case namespace != wantNamespace:
		return fmt.Errorf("namespace %q does not match file name %q", namespace, wantNamespace)
	}
	if len(file.Messages) == 0 {
		return errors.New("messages are required")
	}

	messages, ok := b.locales[locale]
	if !ok {
		messages = map[string]entry{}
		b.locales[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.New("message key cannot be blank")
		}
		if prev, dup := messages[key]; dup {
			return fmt.Errorf("key %q already defined in namespace %q", key, prev.namespace)
		}
		messages[key] = entry{namespace: namespace, value: value}
	}
	return nil
}

// checkNamespaces rejects keys prefixed with a namespace name they were not
// declared in, e.g. a "core.*" key inside web.yaml.
func (b *Bundle) checkNamespaces() error {
	for locale, messages := range b.locales {
		namespaces := map[string]bool{}
		for _, e := range messages {
			namespaces[e.namespace] = true
		}
		for key, e := range messages {
			prefix, _, found := strings.Cut(key, ".")
			if found && namespaces[prefix] && prefix != e.namespace {
				return fmt.Errorf("locale %s: key %q belongs in namespace %q, found in %q", locale, key, prefix, e.namespace)
			}
		}
	}
	return nil
}

// Register makes every message available to x/text printers, under both the
// full locale tag and its base language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tags, err := registrationTags(locale)
		if err != nil {
			return err
		}
		for key, e := range b.locales[locale] {
			for _, tag := range tags {
				if err := message.SetString(tag, key, e.value); err != nil {
					return fmt.Errorf("register %s %q: %w", tag, key, err)
				}
			}
		}
	}
	return nil
}

func registrationTags(locale string) ([]language.Tag, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	tags := []language.Tag{tag}
	if base, confidence := tag.Base(); confidence != language.No {
		if baseTag := language.Make(base.String()); baseTag.String() != tag.String() {
			tags = append(tags, baseTag)
		}
	}
	return tags, nil
}

// HasLocale reports whether any catalog was loaded for locale.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales lists loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LocaleMessages returns a copy of every message for locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	return b.collect(locale, func(entry) bool { return true })
}

// NamespaceMessages returns a copy of the messages one namespace defines for locale.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	namespace = strings.TrimSpace(namespace)
	return b.collect(locale, func(e entry) bool { return e.namespace == namespace })
}

func (b *Bundle) collect(locale string, keep func(entry) bool) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	for key, e := range b.locales[strings.TrimSpace(locale)] {
		if keep(e) {
			out[key] = e.value
		}
	}
	return out
}

// Message looks key up in locale, then in BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	key = strings.TrimSpace(key)
	if b == nil || key == "" {
		return "", false
	}
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		if e, ok := b.locales[candidate][key]; ok {
			return e.value, true
		}
	}
	return "", false
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
