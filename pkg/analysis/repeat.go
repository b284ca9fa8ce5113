package analysis

import (
	"regexp"
	"strings"
)

// ORDER MATTERS: the first matching pattern wins
var repeatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(さっき|前の|先ほど|さきほど).*(もう一度|もういちど|教えて|おしえて)`),
	regexp.MustCompile(`もう一度(教えて)?`),
	regexp.MustCompile(`さっきの(回答|やつ)?(もう一回|もう一度)`),
}

// IsRepeatRequest reports whether the user is asking to hear the previous answer again
func IsRepeatRequest(text string) bool {
	t := strings.TrimSpace(text)
	for _, p := range repeatPatterns {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}
