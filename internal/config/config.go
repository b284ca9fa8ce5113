package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Chatbot  ChatbotConfig
	Line     LineConfig
	Admin    AdminConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Driver     string // "postgres" | "mysql" | "sqlite"
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type ChatbotConfig struct {
	StateStore       string // "memory" | "redis"
	StateTTL         time.Duration
	FaqReadTimeout   time.Duration
	LockTTL          time.Duration // redis lease per user
	LockWaitTimeout  time.Duration
	CorpusCacheTTL   time.Duration
	ChatLogTopic     string
	EscalationEmail  string
	SuggestionPool   []string
	WebSocketLogPath string
}

type LineConfig struct {
	ChannelSecret string
	ChannelToken  string
}

type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt
	TokenTTL     time.Duration
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string // host:port of the OTLP HTTP receiver
	ServiceName string
	SampleRatio float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "FAQ Bot"),
		},
		Chatbot: ChatbotConfig{
			StateStore:       getEnv("CHATBOT_STATE_STORE", "memory"),
			StateTTL:         getEnvAsDuration("CHATBOT_STATE_TTL", 0),
			FaqReadTimeout:   getEnvAsDuration("CHATBOT_FAQ_READ_TIMEOUT", 3*time.Second),
			LockTTL:          getEnvAsDuration("CHATBOT_LOCK_TTL", 10*time.Second),
			LockWaitTimeout:  getEnvAsDuration("CHATBOT_LOCK_WAIT_TIMEOUT", 5*time.Second),
			CorpusCacheTTL:   getEnvAsDuration("CHATBOT_CORPUS_CACHE_TTL", 5*time.Minute),
			ChatLogTopic:     getEnv("CHATBOT_CHAT_LOG_TOPIC", "CHAT_LOG_APPEND"),
			EscalationEmail:  getEnv("CHATBOT_ESCALATION_EMAIL", ""),
			SuggestionPool:   getEnvAsList("CHATBOT_SUGGESTION_POOL"),
			WebSocketLogPath: getEnv("CHATBOT_WS_LOG_PATH", "logs/websocket.log"),
		},
		Line: LineConfig{
			ChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
			ChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		},
		Otel: OtelConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "faq-chatbot-backend"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			TokenTTL:     getEnvAsDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		},
	}
}

// IsProduction reports whether GO_ENV selects production logging
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value. Unset returns nil so callers
// can tell "use the default" from an explicitly empty list.
func getEnvAsList(key string) []string {
	strValue, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	items := []string{}
	for _, item := range strings.Split(strValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
