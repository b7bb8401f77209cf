package conversation

import (
	"strings"

	"github.com/riccoai/lead-agent/internal/session"
)

// consultationTriggers are interest signals that justify offering a meeting
// once enough context has been gathered.
var consultationTriggers = []string{
	// Direct interest signals
	"interested in", "want to know more",
	// Implementation interests
	"how can i", "implement", "use ai", "integrate",
	// Business needs
	"my business", "our company", "we need", "looking for",
	// Specific inquiries about solutions
	"how does it work", "can you help", "what would you recommend",
}

// ShouldOfferConsultation decides whether this turn warrants transitioning
// into the consultation offer. It never fires before the third interaction:
// the agent builds understanding first, then guides toward a meeting.
func ShouldOfferConsultation(message string, state session.State) bool {
	if state.InteractionCount < 3 {
		return false
	}

	switch state.LastTopic {
	case session.TopicBusinessInquiry, session.TopicServiceInterest, session.TopicImplementation:
		return true
	}

	if state.LastTopic == session.TopicNone {
		return false
	}
	lowered := strings.ToLower(message)
	for _, trigger := range consultationTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}

// ServicesExplained reports whether any prior turn delivered the value
// proposition. Consultation is only offered after it has.
func ServicesExplained(turns []session.Turn) bool {
	for _, turn := range turns {
		if strings.Contains(strings.ToLower(turn.Content), "services") {
			return true
		}
	}
	return false
}

// topicNudge maps the visitor's last topic to a follow-up question for
// acknowledgments outside a consultation context.
func topicNudge(topic session.Topic) string {
	switch topic {
	case session.TopicAnalytics:
		return analyticsNudge
	case session.TopicStrategy:
		return strategyNudge
	case session.TopicAutomation:
		return automationNudge
	default:
		return defaultNudge
	}
}
