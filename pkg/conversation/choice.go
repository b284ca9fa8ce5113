package conversation

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// parseChoice converts a reply such as "2" or "２" into a zero-based index.
// ok is false for anything that is not made only of decimal digits.
func parseChoice(text string) (idx int, ok bool) {
	s := width.Fold.String(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// too many digits to be any candidate
		return 0, false
	}
	return n - 1, true
}
