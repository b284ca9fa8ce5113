package store

// Context remembers the last answered exchange so it can be repeated
type Context struct {
	LastQuestion *string `json:"last_question,omitempty"`
	LastAnswer   *string `json:"last_answer,omitempty"`
	LastLabel    *string `json:"last_label,omitempty"`
}

// Disambiguation is the pending clarification prompt, if any
type Disambiguation struct {
	AwaitingChoice bool     `json:"awaiting_choice"`
	Candidates     []string `json:"candidates"`
}

// Conversation represents all per-user state the router keeps between messages
type Conversation struct {
	UserID         string         `json:"user_id"`
	State          string         `json:"state"` // "IDLE" | "AWAITING_CHOICE"
	Context        Context        `json:"context"`
	Disambiguation Disambiguation `json:"disambiguation"`
}

const (
	StateIdle           = "IDLE"
	StateAwaitingChoice = "AWAITING_CHOICE"
)

// NewConversation returns the lazily-created initial state for a user
func NewConversation(userID string) *Conversation {
	return &Conversation{
		UserID: userID,
		State:  StateIdle,
	}
}

// HasLastAnswer reports whether there is a previous answer to repeat
func (c *Conversation) HasLastAnswer() bool {
	return c.Context.LastAnswer != nil
}

// Clone returns a deep copy so stored values are never aliased by callers
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.Context = Context{
		LastQuestion: cloneString(c.Context.LastQuestion),
		LastAnswer:   cloneString(c.Context.LastAnswer),
		LastLabel:    cloneString(c.Context.LastLabel),
	}
	if c.Disambiguation.Candidates != nil {
		out.Disambiguation.Candidates = append([]string(nil), c.Disambiguation.Candidates...)
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
