package matcher

import "sort"

// MaxSuggestions is how many candidate labels a clarification prompt offers
const MaxSuggestions = 3

// DefaultSuggestionPool lists the topics offered when nothing matched
var DefaultSuggestionPool = []string{
	"営業時間",
	"試合会場",
	"駐車場",
	"選手登録期限",
	"試合日程",
	"雨天時の対応",
	"エントリー",
	"試合球の規定",
	"緊急連絡先",
}

// Suggestion is a scored pool label
type Suggestion struct {
	Label string
	Score float64
}

// SuggestionRanker orders pool labels by how closely they resemble a message
type SuggestionRanker struct {
	pool []string
}

// NewSuggestionRanker creates a ranker over pool. A nil pool uses
// DefaultSuggestionPool; an empty non-nil pool never suggests anything.
func NewSuggestionRanker(pool []string) *SuggestionRanker {
	if pool == nil {
		pool = DefaultSuggestionPool
	}
	return &SuggestionRanker{pool: pool}
}

// Rank returns at most MaxSuggestions labels sorted by score descending, then
// label descending. Labels with a zero score are still returned.
func (r *SuggestionRanker) Rank(text string) []Suggestion {
	scored := make([]Suggestion, 0, len(r.pool))
	for _, label := range r.pool {
		scored = append(scored, Suggestion{Label: label, Score: BlockRatio(text, label)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Label > scored[j].Label
	})

	if len(scored) > MaxSuggestions {
		scored = scored[:MaxSuggestions]
	}
	return scored
}

// Labels is Rank without the scores
func (r *SuggestionRanker) Labels(text string) []string {
	ranked := r.Rank(text)
	labels := make([]string, len(ranked))
	for i, s := range ranked {
		labels[i] = s.Label
	}
	return labels
}
