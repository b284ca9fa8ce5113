// Package analysis classifies incoming messages. Every function here is pure
// and total, so callers may run it outside of any per-user lock.
package analysis

// Signals is everything the router needs to know about a message before it
// touches conversation state.
type Signals struct {
	Tone     Tone
	Language Language
	Repeat   bool
}

// Analyze runs all classifiers over the same text
func Analyze(text string) Signals {
	return Signals{
		Tone:     ClassifyTone(text),
		Language: ClassifyLanguage(text),
		Repeat:   IsRepeatRequest(text),
	}
}
