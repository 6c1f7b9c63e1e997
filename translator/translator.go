// Package translator resolves dashboard UI labels in English and French and
// formats enrolment figures for the selected locale.
package translator

import (
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Translator is a Catalog bound to one locale. It satisfies
// engine.Translator and engine.NumberFormatter.
type Translator struct {
	catalog *Catalog
	locale  Locale
}

// T translates key in the bound locale.
func (t *Translator) T(key string) string {
	return t.catalog.T(t.locale, key)
}

// Locale returns the bound locale.
func (t *Translator) Locale() Locale {
	return t.locale
}

// Toggle returns a translator for the other dashboard language.
func (t *Translator) Toggle() *Translator {
	return t.catalog.For(t.locale.Toggle())
}

// FormatNumber formats v with the locale's grouping and decimal separators,
// keeping at most two fraction digits.
func (t *Translator) FormatNumber(v float64) string {
	p := message.NewPrinter(t.locale.Tag())
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}
