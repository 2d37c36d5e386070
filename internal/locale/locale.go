// Package locale resolves the output language used for AI prompts.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported output language.
type Locale string

const (
	English Locale = "en"
	Dutch   Locale = "nl"

	Default = English
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Dutch})

// Parse maps a BCP 47 tag such as "nl-BE" or "en_US" onto a
// supported locale. An empty string yields the default.
func Parse(s string) (Locale, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return Default, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported locale %q (supported: en, nl)", s)
	}
	if idx == 1 {
		return Dutch, nil
	}
	return English, nil
}

// MustParse is Parse that falls back to the default locale.
func MustParse(s string) Locale {
	l, err := Parse(s)
	if err != nil {
		return Default
	}
	return l
}

// LanguageName is the English name of the language, as used in prompts.
func (l Locale) LanguageName() string {
	if l == Dutch {
		return "Dutch"
	}
	return "English"
}

// Tag returns the language tag for the locale.
func (l Locale) Tag() language.Tag {
	if l == Dutch {
		return language.Dutch
	}
	return language.English
}

func (l Locale) String() string { return string(l) }
