package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FAQ_ADDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	// FaqAdded is published whenever an FAQ row is created or updated.
	FaqAdded = "FAQ_ADDED"
	// ChatEscalated is published when a reply promised a staff follow-up.
	ChatEscalated = "CHAT_ESCALATED"
)

// NewFaqAdded tells other instances to drop their cached FAQ corpus
func NewFaqAdded(faqID uint, question, origin string) BaseEvent {
	return BaseEvent{
		Type: FaqAdded,
		Data: map[string]interface{}{
			"faq_id":   faqID,
			"question": question,
			"origin":   origin,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatEscalated(userID, userMessage, branch string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: ChatEscalated,
		Data: map[string]interface{}{
			"user_id":      userID,
			"user_message": userMessage,
			"branch":       branch,
		},
		OccurredAt: at,
	}
}
