package analysis

import (
	"regexp"
	"strings"
)

// Tone represents the emotional register of a user message
type Tone string

const (
	ToneNormal Tone = "normal"
	ToneAngry  Tone = "angry"
	ToneInsult Tone = "insult"
)

// Insult words are matched as plain substrings, in this order.
var insultWords = []string{
	"死ね", "しね",
	"バカ", "ばか",
	"アホ",
	"クズ",
	"ゴミ",
	"きもい", "キモい",
	"うざい", "うぜえ",
	"カス",
	"黙れ", "だまれ",
	"消えろ",
	"クソ",
	"ふざけるな", "ふざけんな",
}

var angryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`なんだよ`),
	regexp.MustCompile(`意味わからん`),
	regexp.MustCompile(`使えね[えぇ]?`),
	regexp.MustCompile(`最悪`),
}

// ClassifyTone returns insult when any insult word appears, angry when a
// frustrated reaction matches, and normal otherwise.
func ClassifyTone(text string) Tone {
	t := strings.TrimSpace(text)

	for _, w := range insultWords {
		if strings.Contains(t, w) {
			return ToneInsult
		}
	}

	for _, p := range angryPatterns {
		if p.MatchString(t) {
			return ToneAngry
		}
	}

	return ToneNormal
}

// IsApologetic reports whether replies to this tone open with an apology
func (t Tone) IsApologetic() bool {
	return t == ToneAngry || t == ToneInsult
}
