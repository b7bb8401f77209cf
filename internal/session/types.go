package session

import (
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Topic is a coarse label for what the visitor was last asking about.
type Topic string

const (
	TopicNone            Topic = ""
	TopicStrategy        Topic = "strategy"
	TopicAnalytics       Topic = "analytics"
	TopicAutomation      Topic = "automation"
	TopicImplementation  Topic = "implementation"
	TopicBusinessInquiry Topic = "business_inquiry"
	TopicServiceInterest Topic = "service_interest"
)

// Turn is one message in a conversation. Immutable once appended.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the per-session routing state mutated turn by turn.
type State struct {
	InteractionCount      int   `json:"interaction_count"`
	MessageCount          int   `json:"message_count"`
	ConsultationSuggested bool  `json:"consultation_suggested"`
	BookingCompleted      bool  `json:"booking_completed"`
	LastTopic             Topic `json:"last_topic,omitempty"`
}

// Session bundles identity, state, and activity bookkeeping for one visitor.
// The mutex serializes turn processing: no two turns for the same session
// ever run concurrently, regardless of transport.
type Session struct {
	ID             string
	State          State
	CreatedAt      time.Time
	LastActivityAt time.Time

	mu sync.Mutex
}

// Lock acquires the session for one turn of processing.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session after the turn completes.
func (s *Session) Unlock() { s.mu.Unlock() }

// Recent returns at most n of the latest turns, oldest first.
func Recent(turns []Turn, n int) []Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
