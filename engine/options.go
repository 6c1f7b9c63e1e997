package engine

import (
	"io"
	"log/slog"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Render()
// ============================================================================

// Translator resolves a UI-label key to a display string in one locale.
type Translator interface {
	T(key string) string
}

// NumberFormatter is implemented by translators that format numbers for
// their locale. Builders fall back to FormatCount otherwise.
type NumberFormatter interface {
	FormatNumber(v float64) string
}

// TranslatorFunc adapts a plain function to Translator.
type TranslatorFunc func(key string) string

func (f TranslatorFunc) T(key string) string { return f(key) }

// identityTranslator returns keys unchanged.
var identityTranslator = TranslatorFunc(func(key string) string { return key })

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Translator Translator
	Palette    []string
	Logger     *slog.Logger
}

// WithTranslator sets the label lookup used for titles and series names.
func WithTranslator(t Translator) Option {
	return func(c *config) {
		if t != nil {
			c.Translator = t
		}
	}
}

// WithPalette overrides the chart colour palette.
func WithPalette(colors []string) Option {
	return func(c *config) {
		if len(colors) > 0 {
			c.Palette = colors
		}
	}
}

// WithLogger sets the structured logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Translator: identityTranslator,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// formatNumber uses the translator's locale formatting when available.
func formatNumber(t Translator, v float64) string {
	if nf, ok := t.(NumberFormatter); ok {
		return nf.FormatNumber(v)
	}
	return FormatCount(v)
}
