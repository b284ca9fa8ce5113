package analysis

import "testing"

func TestClassifyTone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Tone
	}{
		{name: "plain question", text: "駐車場はありますか", want: ToneNormal},
		{name: "empty", text: "", want: ToneNormal},
		{name: "insult substring", text: "お前バカじゃないの", want: ToneInsult},
		{name: "insult hiragana variant", text: "しね", want: ToneInsult},
		{name: "insult wins over angry", text: "なんだよクソ", want: ToneInsult},
		{name: "angry fixed phrase", text: "なんだよこれ", want: ToneAngry},
		{name: "angry optional suffix bare", text: "使えね", want: ToneAngry},
		{name: "angry optional suffix small e", text: "ほんと使えねぇ", want: ToneAngry},
		{name: "angry worst", text: "最悪です", want: ToneAngry},
		{name: "surrounding whitespace", text: "  意味わからん  ", want: ToneAngry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTone(tt.text); got != tt.want {
				t.Errorf("ClassifyTone(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestToneIsApologetic(t *testing.T) {
	if ToneNormal.IsApologetic() {
		t.Errorf("normal tone should not be apologetic")
	}
	if !ToneAngry.IsApologetic() || !ToneInsult.IsApologetic() {
		t.Errorf("angry and insult tones should be apologetic")
	}
}
