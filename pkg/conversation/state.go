package conversation

import (
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/store"
)

// StateManager applies state transitions to a conversation
type StateManager struct {
	logger logger.ILogger
}

// NewStateManager creates a new state manager
func NewStateManager(log logger.ILogger) *StateManager {
	return &StateManager{logger: log}
}

// TransitionToAwaitingChoice stores the offered candidates and waits for a number
func (m *StateManager) TransitionToAwaitingChoice(conv *store.Conversation, candidates []string) {
	conv.State = store.StateAwaitingChoice
	conv.Disambiguation = store.Disambiguation{
		AwaitingChoice: true,
		Candidates:     append([]string(nil), candidates...),
	}
	m.logger.Debug("StateManager", "Transitioned to AWAITING_CHOICE", map[string]interface{}{
		"user_id":    conv.UserID,
		"candidates": candidates,
	})
}

// TransitionToIdle clears any pending clarification
func (m *StateManager) TransitionToIdle(conv *store.Conversation) {
	conv.State = store.StateIdle
	conv.Disambiguation = store.Disambiguation{}
	m.logger.Debug("StateManager", "Transitioned to IDLE", map[string]interface{}{
		"user_id": conv.UserID,
	})
}

// Remember records the exchange a later repeat request should replay
func (m *StateManager) Remember(conv *store.Conversation, question, answer string, label *string) {
	conv.Context = store.Context{
		LastQuestion: &question,
		LastAnswer:   &answer,
		LastLabel:    label,
	}
}
