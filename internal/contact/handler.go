// Package contact handles website contact form submissions.
package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/riccoai/lead-agent/internal/notify"
	"github.com/riccoai/lead-agent/pkg/logging"
)

// Notifier forwards a captured lead to the team.
type Notifier interface {
	NotifyContactSubmission(ctx context.Context, sub notify.ContactSubmission) error
}

// Handler accepts contact form posts.
type Handler struct {
	notifier Notifier
	logger   *logging.Logger
}

// NewHandler creates a contact form handler.
func NewHandler(notifier Notifier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{notifier: notifier, logger: logger}
}

// HandleSubmit processes POST /contact.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		http.Error(w, "name, email and message are required", http.StatusBadRequest)
		return
	}
	if !strings.Contains(req.Email, "@") {
		http.Error(w, "invalid email address", http.StatusBadRequest)
		return
	}

	sub := notify.ContactSubmission{
		Name:        req.Name,
		Email:       req.Email,
		Message:     req.Message,
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.notifier.NotifyContactSubmission(r.Context(), sub); err != nil {
		h.logger.Error("contact notification failed", "email", req.Email, "error", err)
		http.Error(w, "failed to process submission", http.StatusInternalServerError)
		return
	}

	h.logger.Info("contact form submitted", "email", req.Email)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "received"})
}
