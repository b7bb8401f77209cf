package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riccoai/lead-agent/pkg/logging"
)

// ContactSubmission is a lead captured through the website contact form.
type ContactSubmission struct {
	Name        string
	Email       string
	Message     string
	SubmittedAt time.Time
}

// Service routes lead notifications to the team inbox.
type Service struct {
	email     EmailSender
	recipient string
	logger    *logging.Logger
}

// NewService creates a notification service. A nil sender disables delivery;
// submissions are then only logged.
func NewService(email EmailSender, recipient string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, recipient: recipient, logger: logger}
}

// NotifyContactSubmission emails the team about a new contact form lead.
func (s *Service) NotifyContactSubmission(ctx context.Context, sub ContactSubmission) error {
	if s.email == nil || s.recipient == "" {
		s.logger.Info("contact notification skipped, email not configured", "from", sub.Email)
		return nil
	}

	var body strings.Builder
	body.WriteString("New contact form submission\n\n")
	fmt.Fprintf(&body, "Name: %s\n", sub.Name)
	fmt.Fprintf(&body, "Email: %s\n", sub.Email)
	fmt.Fprintf(&body, "Received: %s\n\n", sub.SubmittedAt.Format(time.RFC1123))
	body.WriteString(sub.Message)
	body.WriteString("\n")

	msg := EmailMessage{
		To:      s.recipient,
		Subject: fmt.Sprintf("New lead: %s", sub.Name),
		Body:    body.String(),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: contact submission: %w", err)
	}
	return nil
}
