package response

import (
	"strings"
	"testing"

	"faq-chatbot-be/pkg/analysis"

	"github.com/stretchr/testify/assert"
)

func firstChoice(int) int { return 0 }

func lastChoice(n int) int { return n - 1 }

func TestComposerNatural(t *testing.T) {
	c := NewComposer(firstChoice)

	assert.Equal(t, Openers[0]+"\n本文\n"+Closers[0], c.Natural("  本文\n", true, true))
	assert.Equal(t, "本文\n"+Closers[0], c.Natural("本文", false, true))
	assert.Equal(t, Openers[0]+"\n本文", c.Natural("本文", true, false))
	assert.Equal(t, "本文", c.Natural("本文", false, false))
}

func TestComposerUsesChooser(t *testing.T) {
	c := NewComposer(lastChoice)

	got := c.Full(analysis.ToneNormal, "本文")
	assert.Equal(t, Openers[len(Openers)-1]+"\n本文\n"+Closers[len(Closers)-1], got)
}

func TestComposerWrapApologies(t *testing.T) {
	c := NewComposer(firstChoice)

	t.Run("angry", func(t *testing.T) {
		got := c.Wrap(analysis.ToneAngry, "本文", true, false)
		assert.True(t, strings.HasPrefix(got, "ご不便をおかけしているようで申し訳ありません。"))
		assert.Contains(t, got, "\n本文\n")
		assert.True(t, strings.HasSuffix(got, Closers[0]))
		assert.NotContains(t, got, Openers[0])
	})

	t.Run("insult", func(t *testing.T) {
		got := c.Wrap(analysis.ToneInsult, "本文", false, false)
		assert.True(t, strings.HasPrefix(got, apologyInsultTemplate+"\n本文"))
		assert.True(t, strings.HasSuffix(got, Closers[0]))
	})

	t.Run("normal respects flags", func(t *testing.T) {
		assert.Equal(t, "本文", c.Wrap(analysis.ToneNormal, "本文", false, false))
	})
}

func TestRandomChooserStaysInRange(t *testing.T) {
	c := NewComposer(nil)
	for i := 0; i < 50; i++ {
		got := c.Full(analysis.ToneNormal, "本文")
		lines := strings.Split(got, "\n")
		assert.Len(t, lines, 3)
		assert.Contains(t, Openers, lines[0])
		assert.Contains(t, Closers, lines[2])
	}
}

func TestSeededChooserIsReproducible(t *testing.T) {
	a := NewComposer(SeededChooser(42))
	b := NewComposer(SeededChooser(42))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Full(analysis.ToneNormal, "本文"), b.Full(analysis.ToneNormal, "本文"))
	}
}

func TestChoicePrompt(t *testing.T) {
	want := "すみません、よくわかりませんでした。次のどれが近いですか？\n" +
		"・1. 駐車場\n" +
		"・2. 試合会場\n" +
		"番号でお答えください。"
	assert.Equal(t, want, ChoicePrompt([]string{"駐車場", "試合会場"}))
}

func TestDetectGreeting(t *testing.T) {
	g, ok := DetectGreeting("皆さんこんにちは、お世話になります")
	assert.True(t, ok)
	assert.Equal(t, "こんにちは", g)
	assert.Equal(t, "こんにちは！いつもありがとうございます。", GreetingReply(g))

	_, ok = DetectGreeting("駐車場はありますか")
	assert.False(t, ok)
}
