package matcher

// AcceptThreshold is the minimum similarity at which a FAQ answer is used
const AcceptThreshold = 0.6

// Entry is one question/answer pair of the FAQ corpus
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Match is the best entry found for a query
type Match struct {
	Question   string
	Answer     string
	Similarity float64
	Found      bool
}

// Accepted reports whether the match is good enough to answer with
func (m Match) Accepted() bool {
	return m.Found && m.Answer != "" && m.Similarity >= AcceptThreshold
}

// FaqMatcher picks the corpus entry closest to a query. Implementations may
// replace the linear scan with an index as long as ties keep the earliest entry.
type FaqMatcher interface {
	Best(query string, corpus []Entry) Match
}

// LinearMatcher scores every entry with EditRatio
type LinearMatcher struct{}

// NewLinearMatcher creates a matcher that scans the whole corpus
func NewLinearMatcher() *LinearMatcher {
	return &LinearMatcher{}
}

// Best keeps an entry only when it beats the best similarity so far, so
// zero-similarity entries are never selected and ties go to the first entry.
func (m *LinearMatcher) Best(query string, corpus []Entry) Match {
	best := Match{}
	for _, e := range corpus {
		sim := EditRatio(query, e.Question)
		if sim > best.Similarity {
			best = Match{
				Question:   e.Question,
				Answer:     e.Answer,
				Similarity: sim,
				Found:      true,
			}
		}
	}
	return best
}
