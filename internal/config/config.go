package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// CORS
	CORSAllowedOrigins []string

	// Redis-backed session history
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	HistoryTTL    time.Duration

	// Session bookkeeping
	SessionTTL     time.Duration
	MessageCeiling int

	// OpenAI
	OpenAIAPIKey    string
	ChatModel       string
	ClassifierModel string
	EmbeddingModel  string
	MaxTokens       int
	Temperature     float32
	TopP            float32

	// Qdrant knowledge index
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	RetrievalTopK    int

	// Knowledge ingestion
	DocsDir string

	// Scheduling
	SchedulingWebhookURL   string
	SchedulingTimeout      time.Duration
	FallbackBookingURL     string
	BookingLinkText        string
	SchedulingEnvelopeText string

	// Contact form email (SendGrid)
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	ContactRecipient  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
			"https://ricco.ai",
			"https://www.ricco.ai",
			"http://localhost:5173",
		}),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		HistoryTTL:    getEnvAsDuration("HISTORY_TTL", 24*time.Hour),

		SessionTTL:     getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		MessageCeiling: getEnvAsInt("MESSAGE_CEILING", 50),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		ChatModel:       getEnv("CHAT_MODEL", "gpt-4"),
		ClassifierModel: getEnv("CLASSIFIER_MODEL", "gpt-3.5-turbo"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		MaxTokens:       getEnvAsInt("MAX_TOKENS", 100),
		Temperature:     getEnvAsFloat32("TEMPERATURE", 0.7),
		TopP:            getEnvAsFloat32("TOP_P", 0.7),

		QdrantURL:        getEnv("QDRANT_URL", ""),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "ricco-ai-chatbot"),
		RetrievalTopK:    getEnvAsInt("RETRIEVAL_TOP_K", 3),

		DocsDir: getEnv("DOCS_DIR", "docs"),

		SchedulingWebhookURL:   getEnv("SCHEDULING_WEBHOOK_URL", ""),
		SchedulingTimeout:      getEnvAsDuration("SCHEDULING_TIMEOUT", 10*time.Second),
		FallbackBookingURL:     getEnv("FALLBACK_BOOKING_URL", "https://calendly.com/d/cqvb-cvn-6gc/15-minute-meeting"),
		BookingLinkText:        getEnv("BOOKING_LINK_TEXT", "Book your consultation"),
		SchedulingEnvelopeText: getEnv("SCHEDULING_MESSAGE", "Great! Here's the link to schedule your consultation:"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "ricco.AI"),
		ContactRecipient:  getEnv("CONTACT_RECIPIENT", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
