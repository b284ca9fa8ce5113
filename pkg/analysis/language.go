package analysis

import (
	"regexp"
	"strings"
)

// Language is the coarse script family of a message
type Language string

const (
	LanguageJapanese Language = "ja"
	LanguageEnglish  Language = "en"
	LanguageMixed    Language = "mixed"
	LanguageOther    Language = "other"
)

var (
	japaneseScript = regexp.MustCompile(`[\x{3040}-\x{30FF}\x{4E00}-\x{9FFF}]`)
	latinScript    = regexp.MustCompile(`[A-Za-z]`)
)

// ClassifyLanguage looks only at which scripts occur. Digits, punctuation and
// emoji count as neither script.
func ClassifyLanguage(text string) Language {
	t := strings.TrimSpace(text)
	hasJa := japaneseScript.MatchString(t)
	hasEn := latinScript.MatchString(t)

	switch {
	case hasJa && !hasEn:
		return LanguageJapanese
	case hasEn && !hasJa:
		return LanguageEnglish
	case hasJa && hasEn:
		return LanguageMixed
	default:
		return LanguageOther
	}
}
