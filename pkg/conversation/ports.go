package conversation

import (
	"context"
	"time"

	"faq-chatbot-be/pkg/analysis"
	"faq-chatbot-be/pkg/matcher"
	"faq-chatbot-be/pkg/store"
)

// FaqCorpus provides a read-only snapshot of all FAQ entries in a stable order
type FaqCorpus interface {
	FetchAll(ctx context.Context) ([]matcher.Entry, error)
}

// StateStore persists per-user conversation state. Load returns a nil
// conversation without error when the user has no state yet.
type StateStore interface {
	Load(ctx context.Context, userID string) (*store.Conversation, error)
	Save(ctx context.Context, conv *store.Conversation) error
}

// Locker serializes work for one user. With a shared StateStore the lock
// must be shared too, otherwise two instances can both consume one pending
// choice. The release function is called exactly once after a nil error.
type Locker interface {
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}

// LogSink accepts chat log records. Implementations should not block for long.
type LogSink interface {
	Append(ctx context.Context, record LogRecord) error
}

// Branch names the pipeline step that produced a reply
type Branch string

const (
	BranchRepeat            Branch = "repeat"
	BranchRepeatNoContext   Branch = "repeat_no_context"
	BranchLanguageGate      Branch = "language_gate"
	BranchChoiceResolved    Branch = "choice_resolved"
	BranchChoiceUnsupported Branch = "choice_unsupported"
	BranchChoiceInvalid     Branch = "choice_invalid"
	BranchGreeting          Branch = "greeting"
	BranchFaq               Branch = "faq"
	BranchSuggestion        Branch = "suggestion"
	BranchUnsupported       Branch = "unsupported"
)

// NeedsHuman reports whether the reply promised a follow-up from staff
func (b Branch) NeedsHuman() bool {
	return b == BranchUnsupported || b == BranchChoiceUnsupported
}

// LogRecord is one exchange as written to the chat log
type LogRecord struct {
	UserID      string            `json:"user_id"`
	UserMessage string            `json:"user_message"`
	BotResponse string            `json:"bot_response"`
	Branch      Branch            `json:"branch"`
	Tone        analysis.Tone     `json:"tone"`
	Language    analysis.Language `json:"language"`
	Timestamp   time.Time         `json:"timestamp"`
}
