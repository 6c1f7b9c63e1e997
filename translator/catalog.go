package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// CATALOG — Bilingual UI-label lookup
// ============================================================================
// Translations are flat key → string maps per locale. The English and French
// dashboard catalogs are embedded; options add or override entries. Nested
// YAML maps are flattened with dots ("legend.title").
//
// A Catalog is immutable after New and safe for concurrent use.
// ============================================================================

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog holds translations for every loaded locale.
type Catalog struct {
	messages          map[Locale]map[string]string
	fallback          Locale
	missingKeyHandler func(locale Locale, key string)
}

// Option configures a Catalog during construction.
type Option func(*Catalog) error

// New builds a catalog from the embedded dashboard translations plus opts.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		messages: make(map[Locale]map[string]string),
		fallback: DefaultLocale,
	}

	if err := c.loadFS(embedded, "locales"); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.fallback == "" {
		return nil, ErrEmptyLocale
	}
	return c, nil
}

// WithYAML merges a YAML document into the catalog for locale.
func WithYAML(locale Locale, data []byte) Option {
	return func(c *Catalog) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		return c.mergeYAML(locale, data, "inline")
	}
}

// WithMessages merges flat translations for locale.
func WithMessages(locale Locale, messages map[string]string) Option {
	return func(c *Catalog) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		for k, v := range messages {
			c.set(locale, k, v)
		}
		return nil
	}
}

// WithFallback sets the locale consulted when a key is missing.
func WithFallback(locale Locale) Option {
	return func(c *Catalog) error {
		if locale == "" {
			return ErrEmptyLocale
		}
		c.fallback = locale
		return nil
	}
}

// WithMissingKeyHandler registers a callback for keys found in no locale.
func WithMissingKeyHandler(handler func(locale Locale, key string)) Option {
	return func(c *Catalog) error {
		c.missingKeyHandler = handler
		return nil
	}
}

// T returns the translation of key in locale, then in the fallback locale,
// then the key itself.
func (c *Catalog) T(locale Locale, key string) string {
	if msg, ok := c.messages[locale][key]; ok {
		return msg
	}
	if locale != c.fallback {
		if msg, ok := c.messages[c.fallback][key]; ok {
			return msg
		}
	}
	if c.missingKeyHandler != nil {
		c.missingKeyHandler(locale, key)
	}
	return key
}

// Has reports whether locale defines key itself.
func (c *Catalog) Has(locale Locale, key string) bool {
	_, ok := c.messages[locale][key]
	return ok
}

// Locales returns loaded locales, fallback first, the rest sorted.
func (c *Catalog) Locales() []Locale {
	others := make([]string, 0, len(c.messages))
	for l := range c.messages {
		if l != c.fallback {
			others = append(others, string(l))
		}
	}
	sort.Strings(others)

	out := []Locale{c.fallback}
	for _, l := range others {
		out = append(out, Locale(l))
	}
	return out
}

// Keys returns the sorted keys defined for locale.
func (c *Catalog) Keys(locale Locale) []string {
	keys := make([]string, 0, len(c.messages[locale]))
	for k := range c.messages[locale] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// For binds the catalog to one locale.
func (c *Catalog) For(locale Locale) *Translator {
	if locale == "" {
		locale = c.fallback
	}
	return &Translator{catalog: c, locale: locale}
}

// ============================================================================
// LOADING
// ============================================================================

func (c *Catalog) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading %q: %w", dir, err)
	}
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		name := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %q: %w", name, err)
		}
		locale := Locale(strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
		if err := c.mergeYAML(locale, data, name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) mergeYAML(locale Locale, data []byte, source string) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parsing %s: %s", ErrInvalidCatalog, source, err)
	}
	for k, v := range flatten(raw, "") {
		c.set(locale, k, v)
	}
	return nil
}

func (c *Catalog) set(locale Locale, key, value string) {
	m, ok := c.messages[locale]
	if !ok {
		m = make(map[string]string)
		c.messages[locale] = m
	}
	m[key] = value
}

func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			for nk, nv := range flatten(val, key) {
				out[nk] = nv
			}
		case string:
			out[key] = val
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out
}
