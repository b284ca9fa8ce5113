package response

import (
	"fmt"
	"strings"
)

// Fixed reply texts
const (
	MessageChoiceHeader   = "すみません、よくわかりませんでした。次のどれが近いですか？"
	MessageChoiceFooter   = "番号でお答えください。"
	MessageInvalidChoice  = "番号でお答えください。（例：1）"
	MessageNotSupported   = "申し訳ありませんが、その質問には対応しておりません。\n後ほど担当者から返信いたします"
	MessageNoPriorContext = "直前の会話がありません。お手数ですが、もう一度質問してください"
	MessageJapaneseOnly   = "恐れ入りますが、\n日本語でのお問い合わせをお願いいたします。"
	greetingReplySuffix   = "！いつもありがとうございます。"
	apologyAngryTemplate  = "ご不便をおかけしているようで申し訳ありません。\n状況を整理しながら、できる限り丁寧にご案内いたします。\n"
	apologyInsultTemplate = "ご不快な思いをさせてしまい申し訳ありません。内容を一部控えめにご案内いたします。\n大変申し訳ありませんが、丁寧な言葉でお問い合わせいただけると助かります"
)

// Greetings are checked as substrings in this order
var Greetings = []string{
	"こんにちは",
	"おはようございます",
	"こんばんわ",
	"お疲れ様です",
	"お世話になります",
}

// DetectGreeting returns the first greeting contained in text
func DetectGreeting(text string) (string, bool) {
	for _, g := range Greetings {
		if strings.Contains(text, g) {
			return g, true
		}
	}
	return "", false
}

// GreetingReply echoes the greeting back with a thank-you
func GreetingReply(greeting string) string {
	return greeting + greetingReplySuffix
}

// ChoicePrompt renders the numbered clarification list, numbering from 1
func ChoicePrompt(labels []string) string {
	lines := make([]string, 0, len(labels)+2)
	lines = append(lines, MessageChoiceHeader)
	for i, label := range labels {
		lines = append(lines, fmt.Sprintf("・%d. %s", i+1, label))
	}
	lines = append(lines, MessageChoiceFooter)
	return strings.Join(lines, "\n")
}
