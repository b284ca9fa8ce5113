package service

import (
	"context"
	"testing"
	"time"

	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/pkg/analysis"
	"faq-chatbot-be/pkg/conversation"
	"faq-chatbot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "CHAT_LOG_APPEND"

func TestChatLogPipeline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := newFactory(t)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mail := &fakeMailer{}
	bus := &fakePublisher{}
	consumer := NewConsumerService(pubSub, testTopic, factory, mail, "staff@example.com", bus, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	sink := NewPublisherService(testTopic, pubSub)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, sink.Append(ctx, conversation.LogRecord{
		UserID: "u1", UserMessage: "駐車場はありますか", BotResponse: "ありません",
		Branch: conversation.BranchFaq, Tone: analysis.ToneNormal, Language: analysis.LanguageJapanese, Timestamp: at,
	}))
	require.NoError(t, sink.Append(ctx, conversation.LogRecord{
		UserID: "u2", UserMessage: "ボールの色は", BotResponse: "後ほど担当者から返信いたします",
		Branch: conversation.BranchUnsupported, Tone: analysis.ToneNormal, Language: analysis.LanguageJapanese, Timestamp: at,
	}))

	assert.Eventually(t, func() bool {
		n, err := factory.NewUnitOfWork(ctx).ChatLogRepository().Count(ctx)
		return err == nil && n == 2
	}, 5*time.Second, 20*time.Millisecond)

	assert.Eventually(t, func() bool { return mail.count() == 1 }, 5*time.Second, 20*time.Millisecond)
	mail.mu.Lock()
	assert.Equal(t, "u2", mail.sent[0].UserId)
	assert.Equal(t, []string{"staff@example.com"}, mail.to)
	mail.mu.Unlock()
	assert.Equal(t, []string{events.ChatEscalated}, bus.types())

	logs, err := factory.NewUnitOfWork(ctx).ChatLogRepository().FindAll(ctx, specification.ByUserId{UserId: "u1"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "faq", logs[0].Branch)
	assert.Equal(t, "normal", logs[0].Tone)
	assert.True(t, at.Equal(logs[0].Timestamp))
}

func TestConsumerSkipsGarbage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := newFactory(t)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, testTopic, factory, nil, "", nil, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, NewPublisherService(testTopic, pubSub).Append(ctx, conversation.LogRecord{
		UserID: "u1", Branch: conversation.BranchUnsupported, Timestamp: time.Now(),
	}))

	// The bad message is acked and the next one still lands.
	assert.Eventually(t, func() bool {
		n, err := factory.NewUnitOfWork(ctx).ChatLogRepository().Count(ctx)
		return err == nil && n == 1
	}, 5*time.Second, 20*time.Millisecond)
}
