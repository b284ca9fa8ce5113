package service

import (
	"context"
	"sync"
	"testing"

	"faq-chatbot-be/internal/pkg/mailer"
	"faq-chatbot-be/internal/pkg/testdb"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/events"
)

func newFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(testdb.Open(t))
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Escalation
	to   []string
}

func (m *fakeMailer) SendEscalation(toEmail string, e mailer.Escalation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, toEmail)
	m.sent = append(m.sent, e)
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
