// Package conversation routes each user message through the reply pipeline:
// repeat requests, the language gate, pending clarifications, greetings, FAQ
// lookup and finally topic suggestions.
package conversation

import (
	"context"
	"time"

	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/analysis"
	"faq-chatbot-be/pkg/keylock"
	"faq-chatbot-be/pkg/matcher"
	"faq-chatbot-be/pkg/response"
	"faq-chatbot-be/pkg/store"
)

const (
	defaultCorpusTimeout = 3 * time.Second
	defaultLockTimeout   = 5 * time.Second
)

// Orchestrator produces the bot's reply for a message. It is safe for
// concurrent use; messages from the same user are processed one at a time.
type Orchestrator struct {
	corpus FaqCorpus
	states StateStore
	sink   LogSink
	logger logger.ILogger

	locks      Locker
	normalizer *matcher.SynonymNormalizer
	matcher    matcher.FaqMatcher
	ranker     *matcher.SuggestionRanker
	composer   *response.Composer
	state      *StateManager
	now        func() time.Time

	corpusTimeout time.Duration
	lockTimeout   time.Duration
}

// Option customizes an Orchestrator
type Option func(*Orchestrator)

// WithChooser makes opener/closer selection deterministic
func WithChooser(choose response.Chooser) Option {
	return func(o *Orchestrator) { o.composer = response.NewComposer(choose) }
}

// WithMatcher swaps the FAQ matcher, e.g. for an indexed search
func WithMatcher(m matcher.FaqMatcher) Option {
	return func(o *Orchestrator) { o.matcher = m }
}

// WithSuggestionPool replaces the labels offered when nothing matched
func WithSuggestionPool(pool []string) Option {
	return func(o *Orchestrator) { o.ranker = matcher.NewSuggestionRanker(pool) }
}

// WithTopics replaces the synonym table
func WithTopics(topics []matcher.Topic) Option {
	return func(o *Orchestrator) { o.normalizer = matcher.NewSynonymNormalizer(topics) }
}

// WithCorpusTimeout bounds how long a request waits for the FAQ snapshot
func WithCorpusTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.corpusTimeout = d
		}
	}
}

// WithLocker replaces the in-process per-user lock, e.g. with one shared
// by every instance that uses the same StateStore
func WithLocker(l Locker) Option {
	return func(o *Orchestrator) { o.locks = l }
}

// WithLockTimeout bounds how long a message waits for its user's lock
func WithLockTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}

// WithClock overrides the log record timestamp source
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func NewOrchestrator(corpus FaqCorpus, states StateStore, sink LogSink, log logger.ILogger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		corpus:        corpus,
		states:        states,
		sink:          sink,
		logger:        log,
		locks:         keylock.NewManager(),
		normalizer:    matcher.NewSynonymNormalizer(nil),
		matcher:       matcher.NewLinearMatcher(),
		ranker:        matcher.NewSuggestionRanker(nil),
		composer:      response.NewComposer(nil),
		state:         NewStateManager(log),
		now:           time.Now,
		corpusTimeout: defaultCorpusTimeout,
		lockTimeout:   defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type reply struct {
	text    string
	branch  Branch
	changed bool
}

// Respond returns the reply for text sent by userID. It never fails: storage
// and logging problems are logged and the pipeline carries on without them.
func (o *Orchestrator) Respond(ctx context.Context, userID, text string) string {
	sig := analysis.Analyze(text)

	// Corpus reads stay outside the user lock.
	var corpus []matcher.Entry
	if !sig.Repeat && sig.Language != analysis.LanguageEnglish {
		corpus = o.snapshot(ctx)
	}

	unlock := o.lock(ctx, userID)
	conv, loaded := o.load(ctx, userID)
	r := o.route(conv, text, sig, corpus)
	// State that was not read under the lock must not overwrite the stored copy.
	if r.changed && loaded && unlock != nil {
		o.save(ctx, conv)
	}
	if unlock != nil {
		unlock()
	}

	o.logger.Info("Orchestrator", "Reply composed", map[string]interface{}{
		"user_id":  userID,
		"branch":   r.branch,
		"tone":     sig.Tone,
		"language": sig.Language,
	})

	o.record(ctx, LogRecord{
		UserID:      userID,
		UserMessage: text,
		BotResponse: r.text,
		Branch:      r.branch,
		Tone:        sig.Tone,
		Language:    sig.Language,
		Timestamp:   o.now(),
	})

	return r.text
}

func (o *Orchestrator) route(conv *store.Conversation, text string, sig analysis.Signals, corpus []matcher.Entry) reply {
	// 1. Repeat requests win over everything, including a pending clarification.
	if sig.Repeat {
		if !conv.HasLastAnswer() {
			return reply{text: response.MessageNoPriorContext, branch: BranchRepeatNoContext}
		}
		return reply{text: o.composer.Full(sig.Tone, *conv.Context.LastAnswer), branch: BranchRepeat}
	}

	// 2. English-only messages are turned away politely.
	if sig.Language == analysis.LanguageEnglish {
		o.state.Remember(conv, text, response.MessageJapaneseOnly, nil)
		return reply{
			text:    o.composer.Full(sig.Tone, response.MessageJapaneseOnly),
			branch:  BranchLanguageGate,
			changed: true,
		}
	}

	// 3. A pending clarification only accepts a number.
	if conv.Disambiguation.AwaitingChoice {
		return o.resolveChoice(conv, text, corpus)
	}

	// 4. Greetings short-circuit the FAQ lookup.
	if greeting, ok := response.DetectGreeting(text); ok {
		return reply{
			text:   o.composer.Wrap(sig.Tone, response.GreetingReply(greeting), false, false),
			branch: BranchGreeting,
		}
	}

	// 5. FAQ lookup on the normalized question.
	normalized := text
	var label *string
	if key, ok := o.normalizer.Lookup(text); ok {
		normalized = key
		label = &key
	}

	if m := o.matcher.Best(normalized, corpus); m.Accepted() {
		o.state.Remember(conv, normalized, m.Answer, label)
		return reply{
			text:    o.composer.Full(sig.Tone, m.Answer),
			branch:  BranchFaq,
			changed: true,
		}
	}

	// 6. Offer the closest topics, scored against the raw text.
	if candidates := o.ranker.Labels(text); len(candidates) > 0 {
		o.state.TransitionToAwaitingChoice(conv, candidates)
		return reply{
			text:    response.ChoicePrompt(candidates),
			branch:  BranchSuggestion,
			changed: true,
		}
	}

	// 7. Nothing to offer; a person will follow up.
	o.state.Remember(conv, normalized, response.MessageNotSupported, nil)
	return reply{
		text:    o.composer.Full(sig.Tone, response.MessageNotSupported),
		branch:  BranchUnsupported,
		changed: true,
	}
}

// resolveChoice consumes a numeric reply to the clarification prompt. The
// resolved answer is returned as stored, without courtesy phrases.
func (o *Orchestrator) resolveChoice(conv *store.Conversation, text string, corpus []matcher.Entry) reply {
	idx, ok := parseChoice(text)
	if !ok || idx < 0 || idx >= len(conv.Disambiguation.Candidates) {
		return reply{text: response.MessageInvalidChoice, branch: BranchChoiceInvalid}
	}

	chosen := conv.Disambiguation.Candidates[idx]
	o.state.TransitionToIdle(conv)

	m := o.matcher.Best(o.normalizer.Normalize(chosen), corpus)
	if !m.Accepted() {
		return reply{text: response.MessageNotSupported, branch: BranchChoiceUnsupported, changed: true}
	}
	return reply{text: m.Answer, branch: BranchChoiceResolved, changed: true}
}

func (o *Orchestrator) snapshot(ctx context.Context) []matcher.Entry {
	ctx, cancel := context.WithTimeout(ctx, o.corpusTimeout)
	defer cancel()

	entries, err := o.corpus.FetchAll(ctx)
	if err != nil {
		o.logger.Warn("Orchestrator", "FAQ corpus unavailable, continuing without matches", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return entries
}

// lock returns nil when the user's lock could not be taken in time. The
// message is still answered, but its state changes are discarded.
func (o *Orchestrator) lock(ctx context.Context, userID string) func() {
	ctx, cancel := context.WithTimeout(ctx, o.lockTimeout)
	defer cancel()

	unlock, err := o.locks.Lock(ctx, userID)
	if err != nil {
		o.logger.Error("Orchestrator", "Failed to lock conversation, state will not be saved", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil
	}
	return unlock
}

// load reports false when the store failed, in which case the returned
// conversation is a fresh one that must not be saved.
func (o *Orchestrator) load(ctx context.Context, userID string) (*store.Conversation, bool) {
	conv, err := o.states.Load(ctx, userID)
	if err != nil {
		o.logger.Error("Orchestrator", "Failed to load conversation state", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return store.NewConversation(userID), false
	}
	if conv == nil {
		conv = store.NewConversation(userID)
	}
	return conv, true
}

func (o *Orchestrator) save(ctx context.Context, conv *store.Conversation) {
	if err := o.states.Save(ctx, conv); err != nil {
		o.logger.Error("Orchestrator", "Failed to save conversation state", map[string]interface{}{
			"user_id": conv.UserID,
			"error":   err.Error(),
		})
	}
}

func (o *Orchestrator) record(ctx context.Context, rec LogRecord) {
	if o.sink == nil {
		return
	}
	if err := o.sink.Append(ctx, rec); err != nil {
		o.logger.Error("Orchestrator", "Failed to append chat log", map[string]interface{}{
			"user_id": rec.UserID,
			"error":   err.Error(),
		})
	}
}
