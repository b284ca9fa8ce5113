package matcher

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/pmezard/go-difflib/difflib"
)

// EditRatio is the normalized indel similarity 2*LCS/(|a|+|b|) over code
// points. This equals 1 - d/(|a|+|b|) for the Levenshtein distance d with
// substitutions costing 2. Two empty strings are identical.
func EditRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1.0
	}
	return float64(2*edlib.LCS(a, b)) / float64(total)
}

// BlockRatio is the Ratcliff/Obershelp matching-blocks ratio over code points
func BlockRatio(a, b string) float64 {
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
