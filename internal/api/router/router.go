// Package router assembles the HTTP surface of the lead agent.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/riccoai/lead-agent/internal/contact"
	httpmiddleware "github.com/riccoai/lead-agent/internal/http/middleware"
	"github.com/riccoai/lead-agent/internal/webchat"
	"github.com/riccoai/lead-agent/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *webchat.Handler
	ContactHandler     *contact.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Ready reports whether downstream dependencies are reachable.
	Ready func() error
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	r.Get("/ready", handleReady(cfg.Ready))

	if cfg.ChatHandler != nil {
		r.Get("/ws/{session_id}", cfg.ChatHandler.HandleWebSocket)
		r.Post("/chat", cfg.ChatHandler.HandleMessage)
		r.Get("/chat/history", cfg.ChatHandler.HandleHistory)
	}
	if cfg.ContactHandler != nil {
		r.Post("/contact", cfg.ContactHandler.HandleSubmit)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"service": "lead-agent", "status": "running"})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleReady(ready func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if ready != nil {
			if err := ready(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}
}
