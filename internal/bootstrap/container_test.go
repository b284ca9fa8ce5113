package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Chatbot: config.ChatbotConfig{
			StateStore:       constant.StateStoreMemory,
			FaqReadTimeout:   time.Second,
			CorpusCacheTTL:   time.Minute,
			ChatLogTopic:     "CHAT_LOG_APPEND",
			WebSocketLogPath: filepath.Join(t.TempDir(), "ws.log"),
		},
	}
}

// A one-shot tool must find its chat log stored as soon as Respond returns.
func TestSyncChatLogIsStoredBeforeRespondReturns(t *testing.T) {
	db := testdb.Open(t)
	c := NewContainer(db, testConfig(t), Options{Logger: logger.NewNopLogger(), SkipNats: true, SyncChatLog: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.ConsumerService.Consume(ctx))

	reply := c.Orchestrator.Respond(ctx, "console", "こんにちは")
	require.NotEmpty(t, reply)

	var logs []model.ChatLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "console", logs[0].UserId)
	assert.Equal(t, reply, logs[0].BotResponse)

	c.Close()
}

func TestContainerWithoutRedisOrLine(t *testing.T) {
	c := NewContainer(testdb.Open(t), testConfig(t), Options{Logger: logger.NewNopLogger()})
	t.Cleanup(c.Close)

	// no Redis configured: the chat still works on the memory store
	reply := c.Orchestrator.Respond(context.Background(), "u1", "もう一度")
	assert.NotEmpty(t, reply)
	assert.Nil(t, c.LineController)
}
