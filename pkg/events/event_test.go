package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFaqAdded(t *testing.T) {
	e := NewFaqAdded(7, "駐車場", "node-a")

	assert.Equal(t, FaqAdded, e.EventType())
	assert.Equal(t, uint(7), e.Payload()["faq_id"])
	assert.Equal(t, "node-a", e.Payload()["origin"])
	assert.False(t, e.Timestamp().IsZero())
}

func TestNewChatEscalated(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	e := NewChatEscalated("u1", "ボールの色は", "unsupported", at)

	assert.Equal(t, ChatEscalated, e.EventType())
	assert.Equal(t, "u1", e.Payload()["user_id"])
	assert.Equal(t, at, e.Timestamp())
}
