package translator

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported display language.
type Locale string

const (
	English Locale = "en"
	French  Locale = "fr"
)

// DefaultLocale is used when nothing better matches.
const DefaultLocale = English

// Locales lists the supported locales. Order matches the matcher below.
var Locales = []Locale{English, French}

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// ParseLocale maps a BCP 47 tag or Accept-Language value to a supported
// locale. Regional variants match their base language ("fr-CA" → fr);
// anything unrecognized yields DefaultLocale.
func ParseLocale(s string) Locale {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(Locales) {
		return DefaultLocale
	}
	return Locales[idx]
}

// Toggle returns the other dashboard language.
func (l Locale) Toggle() Locale {
	if l == French {
		return English
	}
	return French
}

// Tag returns the language tag used for number formatting.
func (l Locale) Tag() language.Tag {
	tag, err := language.Parse(string(l))
	if err != nil {
		return language.English
	}
	return tag
}

func (l Locale) String() string { return string(l) }
