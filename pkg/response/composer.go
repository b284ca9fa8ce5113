package response

import (
	"math/rand/v2"
	"strings"

	"faq-chatbot-be/pkg/analysis"
)

// Openers and closers surround normal-tone replies
var (
	Openers = []string{
		"お問い合わせありがとうございます。",
		"ご質問ありがとうございます。",
		"メッセージありがとうございます。",
		"ご連絡いただきありがとうございます。",
	}
	Closers = []string{
		"その他気になる点がございましたら、遠慮なくお知らせください。",
		"もし追加でご不明な点があれば、お気軽にご質問ください。",
		"引き続きどうぞよろしくお願いいたします。",
		"お役に立てれば幸いです。",
	}
)

// Chooser returns an index in [0, n). n is always positive.
type Chooser func(n int) int

// RandomChooser picks uniformly using the shared generator
func RandomChooser(n int) int {
	return rand.IntN(n)
}

// SeededChooser is a deterministic chooser for reproducible runs. The
// returned function is not safe for concurrent use.
func SeededChooser(seed uint64) Chooser {
	r := rand.New(rand.NewPCG(seed, seed))
	return func(n int) int {
		return r.IntN(n)
	}
}

// Composer wraps core replies with courtesy phrases and tone apologies
type Composer struct {
	choose  Chooser
	openers []string
	closers []string
}

// NewComposer creates a composer. A nil chooser uses RandomChooser.
func NewComposer(choose Chooser) *Composer {
	if choose == nil {
		choose = RandomChooser
	}
	return &Composer{
		choose:  choose,
		openers: Openers,
		closers: Closers,
	}
}

// Natural joins an optional opener, the trimmed core text and an optional closer with newlines
func (c *Composer) Natural(core string, withOpener, withCloser bool) string {
	parts := make([]string, 0, 3)
	if withOpener {
		parts = append(parts, c.pick(c.openers))
	}
	parts = append(parts, strings.TrimSpace(core))
	if withCloser {
		parts = append(parts, c.pick(c.closers))
	}
	return strings.Join(parts, "\n")
}

// Wrap applies the tone policy. Angry and insulting messages always get an
// apology in front of the core and a closer after it, never an opener.
func (c *Composer) Wrap(tone analysis.Tone, core string, withOpener, withCloser bool) string {
	if !tone.IsApologetic() {
		return c.Natural(core, withOpener, withCloser)
	}
	apology := apologyAngryTemplate
	if tone == analysis.ToneInsult {
		apology = apologyInsultTemplate
	}
	return c.Natural(apology+"\n"+core, false, true)
}

// Full is Wrap with both opener and closer requested
func (c *Composer) Full(tone analysis.Tone, core string) string {
	return c.Wrap(tone, core, true, true)
}

func (c *Composer) pick(pool []string) string {
	return pool[c.choose(len(pool))]
}
