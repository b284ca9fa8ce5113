package matcher

import "strings"

// Topic is a canonical FAQ key together with the phrasings that map onto it
type Topic struct {
	Key      string
	Synonyms []string
}

// DefaultTopics is scanned in declaration order; the first synonym found wins.
var DefaultTopics = []Topic{
	{Key: "営業時間", Synonyms: []string{"何時から", "何時まで", "受付時間", "営業", "オープン", "クローズ"}},
	{Key: "試合会場", Synonyms: []string{"会場", "球場", "グラウンド", "住所", "アクセス", "地図", "最寄駅"}},
	{Key: "駐車場", Synonyms: []string{"駐車", "パーキング", "車", "台数", "駐車料金", "満車", "混雑"}},
	{Key: "選手登録期限", Synonyms: []string{"選手登録", "登録表", "提出期限", "締切", "いつまで"}},
	{Key: "試合日程", Synonyms: []string{"日程", "スケジュール", "カレンダー", "予定", "試合いつ"}},
	{Key: "雨天時の対応", Synonyms: []string{"雨", "雨天", "中止", "荒天", "天候", "開催可否"}},
	{Key: "エントリー", Synonyms: []string{"参加申し込み", "申込", "エントリーフォーム", "申請"}},
	{Key: "試合球の規定", Synonyms: []string{"試合球", "ボール", "球種", "何号", "ボール規定"}},
	{Key: "緊急連絡先", Synonyms: []string{"緊急連絡", "連絡先", "電話番号", "連絡方法"}},
}

// SynonymNormalizer rewrites free text to a canonical topic key
type SynonymNormalizer struct {
	topics []Topic
}

// NewSynonymNormalizer creates a normalizer over topics. A nil slice uses DefaultTopics.
func NewSynonymNormalizer(topics []Topic) *SynonymNormalizer {
	if topics == nil {
		topics = DefaultTopics
	}
	return &SynonymNormalizer{topics: topics}
}

// Normalize returns the key of the first topic that has a synonym contained
// in text, or text unchanged when nothing matches.
func (n *SynonymNormalizer) Normalize(text string) string {
	key, ok := n.Lookup(text)
	if !ok {
		return text
	}
	return key
}

// Lookup is Normalize that also reports whether a topic was found
func (n *SynonymNormalizer) Lookup(text string) (string, bool) {
	for _, topic := range n.topics {
		for _, syn := range topic.Synonyms {
			if strings.Contains(text, syn) {
				return topic.Key, true
			}
		}
	}
	return "", false
}
