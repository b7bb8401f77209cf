// Package scheduling turns a detected booking intent into a confirmed
// scheduling link. The webhook is best effort; the static fallback link
// means this path has no user-visible failure mode.
package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/riccoai/lead-agent/pkg/logging"
)

const defaultTimeout = 10 * time.Second

// Envelope is the structured scheduling reply. Clients distinguish it from
// plain-text replies by attempting a JSON parse.
type Envelope struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	URL      string `json:"url"`
	LinkText string `json:"linkText"`
}

// JSON serializes the envelope for the wire. Marshal of this shape cannot
// fail, so the string form is returned directly.
func (e Envelope) JSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

// Config holds coordinator settings.
type Config struct {
	// WebhookURL is the external workflow endpoint; empty disables the call.
	WebhookURL string

	// FallbackURL is the static booking link used whenever the webhook
	// cannot produce one.
	FallbackURL string

	// LinkText labels the booking link in the client widget.
	LinkText string

	// Message is the envelope lead-in text.
	Message string

	// Timeout bounds the webhook call.
	Timeout time.Duration
}

// Coordinator posts scheduling requests to the workflow webhook and falls
// back deterministically to the static link.
type Coordinator struct {
	cfg    Config
	http   *http.Client
	logger *logging.Logger
}

// NewCoordinator validates defaults and returns a ready coordinator.
func NewCoordinator(cfg Config, logger *logging.Logger) *Coordinator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.LinkText == "" {
		cfg.LinkText = "Book your consultation"
	}
	if cfg.Message == "" {
		cfg.Message = "Great! Here's the link to schedule your consultation:"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type webhookPayload struct {
	SessionID string   `json:"session_id"`
	Timestamp string   `json:"timestamp"`
	Action    string   `json:"action"`
	Context   []string `json:"conversation_context,omitempty"`
}

type webhookResponse struct {
	BookingURL string `json:"booking_url"`
}

// Schedule produces a scheduling envelope for the session. It never fails:
// webhook errors of any kind degrade to the static fallback link.
func (c *Coordinator) Schedule(ctx context.Context, sessionID string, recentContext []string) Envelope {
	if url := c.requestBookingURL(ctx, sessionID, recentContext); url != "" {
		return c.envelope(url)
	}
	return c.envelope(c.cfg.FallbackURL)
}

func (c *Coordinator) requestBookingURL(ctx context.Context, sessionID string, recentContext []string) string {
	if c.cfg.WebhookURL == "" {
		return ""
	}

	payload := webhookPayload{
		SessionID: sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    "create_scheduling_link",
		Context:   recentContext,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("scheduling: failed to encode webhook payload", "error", err)
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("scheduling: failed to build webhook request", "error", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("scheduling: webhook call failed", "error", err, "session_id", sessionID)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("scheduling: webhook returned non-200",
			"status", resp.StatusCode, "session_id", sessionID)
		return ""
	}

	var out webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Error("scheduling: failed to decode webhook response", "error", err)
		return ""
	}
	if out.BookingURL == "" {
		c.logger.Warn("scheduling: webhook response missing booking_url", "session_id", sessionID)
	}
	return out.BookingURL
}

func (c *Coordinator) envelope(url string) Envelope {
	return Envelope{
		Type:     "scheduling",
		Message:  c.cfg.Message,
		URL:      url,
		LinkText: c.cfg.LinkText,
	}
}

// FallbackURL exposes the configured static link for callers that need it
// in fixed replies.
func (c *Coordinator) FallbackURL() string {
	return c.cfg.FallbackURL
}
