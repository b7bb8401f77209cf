package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CHAT_MODEL", "")
	t.Setenv("FALLBACK_BOOKING_URL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ChatModel != "gpt-4" {
		t.Fatalf("expected default chat model, got %s", cfg.ChatModel)
	}
	if cfg.MessageCeiling != 50 {
		t.Fatalf("expected default message ceiling, got %d", cfg.MessageCeiling)
	}
	if cfg.HistoryTTL != 24*time.Hour {
		t.Fatalf("expected default history TTL, got %s", cfg.HistoryTTL)
	}
	if cfg.SchedulingTimeout != 10*time.Second {
		t.Fatalf("expected default scheduling timeout, got %s", cfg.SchedulingTimeout)
	}
	if cfg.FallbackBookingURL == "" {
		t.Fatal("expected a default fallback booking URL")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		t.Fatal("expected default CORS origins")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("CHAT_MODEL", "gpt-3.5-turbo-16k")
	t.Setenv("MESSAGE_CEILING", "25")
	t.Setenv("HISTORY_TTL", "1h")
	t.Setenv("TEMPERATURE", "0.2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.ChatModel != "gpt-3.5-turbo-16k" {
		t.Fatalf("expected chat model override, got %s", cfg.ChatModel)
	}
	if cfg.MessageCeiling != 25 {
		t.Fatalf("expected ceiling override, got %d", cfg.MessageCeiling)
	}
	if cfg.HistoryTTL != time.Hour {
		t.Fatalf("expected TTL override, got %s", cfg.HistoryTTL)
	}
	if cfg.Temperature != 0.2 {
		t.Fatalf("expected temperature override, got %f", cfg.Temperature)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected parsed CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}
