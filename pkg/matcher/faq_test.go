package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditRatio(t *testing.T) {
	assert.Equal(t, 1.0, EditRatio("", ""))
	assert.Equal(t, 1.0, EditRatio("営業時間", "営業時間"))
	assert.Equal(t, 0.0, EditRatio("abc", ""))
	assert.InDelta(t, 8.0/14.0, EditRatio("営業時間", "営業時間は何時ですか"), 1e-9)
	assert.InDelta(t, 0.75, EditRatio("abcx", "abcd"), 1e-9)
	assert.Equal(t, EditRatio("駐車場", "駐車場はありますか"), EditRatio("駐車場はありますか", "駐車場"))
}

func TestLinearMatcherBest(t *testing.T) {
	m := NewLinearMatcher()

	t.Run("exact hit", func(t *testing.T) {
		corpus := []Entry{
			{Question: "駐車場", Answer: "30台あります"},
			{Question: "営業時間", Answer: "9時から17時です"},
		}
		got := m.Best("営業時間", corpus)
		assert.True(t, got.Accepted())
		assert.Equal(t, "9時から17時です", got.Answer)
		assert.Equal(t, 1.0, got.Similarity)
	})

	t.Run("below threshold", func(t *testing.T) {
		corpus := []Entry{{Question: "駐車場はありますか", Answer: "あります"}}
		got := m.Best("駐車場", corpus)
		assert.True(t, got.Found)
		assert.InDelta(t, 0.5, got.Similarity, 1e-9)
		assert.False(t, got.Accepted())
	})

	t.Run("tie keeps first entry", func(t *testing.T) {
		corpus := []Entry{
			{Question: "abcd", Answer: "first"},
			{Question: "abce", Answer: "second"},
		}
		got := m.Best("abcx", corpus)
		assert.Equal(t, "first", got.Answer)
	})

	t.Run("zero similarity never selected", func(t *testing.T) {
		got := m.Best("xyz", []Entry{{Question: "abc", Answer: "a"}})
		assert.False(t, got.Found)
		assert.Equal(t, 0.0, got.Similarity)
		assert.False(t, got.Accepted())
	})

	t.Run("empty answer is not accepted", func(t *testing.T) {
		got := m.Best("abc", []Entry{{Question: "abc", Answer: ""}})
		assert.True(t, got.Found)
		assert.False(t, got.Accepted())
	})

	t.Run("empty corpus", func(t *testing.T) {
		got := m.Best("営業時間", nil)
		assert.False(t, got.Found)
	})
}
