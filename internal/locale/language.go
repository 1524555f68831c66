package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Language is one of the supported display languages.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"

	Default = Spanish
)

var ErrUnsupportedLanguage = errors.New("locale: unsupported language")

var (
	supported = map[language.Tag]Language{
		language.Spanish: Spanish,
		language.English: English,
	}
	tags = map[Language]language.Tag{
		Spanish: language.Spanish,
		English: language.English,
	}
)

// Supported lists the languages in display order.
func Supported() []Language {
	return []Language{Spanish, English}
}

// ParseLanguage accepts BCP 47 spellings of a supported language ("es",
// "EN") and rejects regional variants and anything else.
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	lng, ok := supported[tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return lng, nil
}

func (l Language) Valid() bool {
	_, ok := tags[l]
	return ok
}

// Tag returns the BCP 47 tag, or language.Und for unsupported values.
func (l Language) Tag() language.Tag {
	if tag, ok := tags[l]; ok {
		return tag
	}
	return language.Und
}
