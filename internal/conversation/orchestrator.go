// Package conversation holds the turn-routing core: the per-session state
// machine, the retrieval-augmented responder, and the orchestrator that
// sequences them into exactly one reply per inbound message.
package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/riccoai/lead-agent/internal/intent"
	"github.com/riccoai/lead-agent/internal/observability/metrics"
	"github.com/riccoai/lead-agent/internal/scheduling"
	"github.com/riccoai/lead-agent/internal/session"
	"github.com/riccoai/lead-agent/pkg/logging"
)

const defaultMessageCeiling = 50

// schedulingContextWindow bounds how much history rides along on the
// scheduling webhook payload.
const schedulingContextWindow = 3

// Orchestrator is the single entry point for turn handling. One call per
// inbound message; strictly sequential per session.
type Orchestrator struct {
	sessions   *session.Manager
	history    session.HistoryStore
	classifier *intent.Classifier
	responder  *Responder
	scheduler  *scheduling.Coordinator
	metrics    *metrics.ConversationMetrics
	logger     *logging.Logger
	ceiling    int
}

// NewOrchestrator wires the turn pipeline together.
func NewOrchestrator(
	sessions *session.Manager,
	history session.HistoryStore,
	classifier *intent.Classifier,
	responder *Responder,
	scheduler *scheduling.Coordinator,
	m *metrics.ConversationMetrics,
	logger *logging.Logger,
	messageCeiling int,
) *Orchestrator {
	if sessions == nil || history == nil || classifier == nil || responder == nil || scheduler == nil {
		panic("conversation: orchestrator dependencies cannot be nil")
	}
	if messageCeiling <= 0 {
		messageCeiling = defaultMessageCeiling
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		sessions:   sessions,
		history:    history,
		classifier: classifier,
		responder:  responder,
		scheduler:  scheduler,
		metrics:    m,
		logger:     logger,
		ceiling:    messageCeiling,
	}
}

// Handle processes one inbound message and returns the single outgoing
// reply. It never returns an error: any unexpected panic in the pipeline is
// converted into a generic apology so the connection survives the turn.
func (o *Orchestrator) Handle(ctx context.Context, sessionID, message string) (reply string) {
	start := time.Now()
	route := "default"

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("turn handling panicked", "session_id", sessionID, "panic", r)
			reply = apologyReply
			route = "panic"
		}
		o.metrics.ObserveTurn(route, time.Since(start).Seconds())
		o.metrics.SetActiveSessions(o.sessions.Len())
	}()

	s := o.sessions.GetOrCreate(sessionID)
	s.Lock()
	defer s.Unlock()
	o.sessions.Touch(sessionID)

	s.State.MessageCount++
	s.State.InteractionCount++

	// Hard ceiling: past the cap no collaborator is invoked, the history
	// store included. The capped turn is not persisted.
	if s.State.MessageCount > o.ceiling {
		route = "capacity"
		return capacityReply
	}

	turns, err := o.history.List(ctx, sessionID)
	if err != nil {
		// A dead history store degrades to a context-free conversation.
		o.logger.Error("history load failed", "session_id", sessionID, "error", err)
		o.metrics.ObserveCollaboratorError("history")
		turns = nil
	}

	reply, route = o.route(ctx, s, message, turns)

	o.append(ctx, sessionID, session.RoleUser, message)
	o.append(ctx, sessionID, session.RoleAssistant, reply)
	return reply
}

// route applies the priority routing table and returns the reply plus the
// route label for metrics. State mutations happen here, under the session
// lock held by Handle.
func (o *Orchestrator) route(ctx context.Context, s *session.Session, message string, turns []session.Turn) (string, string) {
	cls := o.classifier.Classify(ctx, message, s.State, turns)
	if cls.Topic != session.TopicNone {
		s.State.LastTopic = cls.Topic
	}

	// Explicit booking confirmation flips the terminal flag. Checked before
	// scheduling vocabulary since "booked" also matches "book".
	if intent.IsBookingConfirmation(message) {
		if s.State.BookingCompleted {
			return alreadyBookedReply, "already_booked"
		}
		if s.State.ConsultationSuggested {
			s.State.BookingCompleted = true
			return bookingConfirmedReply, "booking_confirmed"
		}
	}

	// 1. Explicit scheduling vocabulary bypasses all other routing.
	if cls.IsSchedulingRequest {
		if s.State.BookingCompleted {
			return alreadyBookedReply, "already_booked"
		}
		return o.schedule(ctx, s, turns), "scheduling"
	}

	// 2. An acknowledgment right after a consultation invite accepts it.
	// Once booked, this implicit cue is absorbed and routes on below.
	lastAssistant := lastAssistantTurn(turns)
	if cls.IsAcknowledgment && lastAssistant != "" && intent.InvitesConsultation(lastAssistant) && !s.State.BookingCompleted {
		return o.schedule(ctx, s, turns), "scheduling"
	}

	// 3. Implementation questions get steered toward a consultation.
	if len(turns) > 0 && intent.IsImplementationQuestion(message) {
		return implementationReply, "implementation"
	}

	// 4. Acknowledgment outside a consultation context: nudge by topic.
	if cls.IsAcknowledgment && len(turns) > 0 {
		return topicNudge(s.State.LastTopic), "acknowledgment"
	}

	// 5. First message of the session.
	if len(turns) == 0 {
		if cls.IsGreeting {
			return greetingReply, "greeting"
		}
		return o.directQuestion(ctx, message), "direct_question"
	}

	// 6. Fixed informational intents.
	lowered := strings.ToLower(message)
	if containsAnyPhrase(lowered, aboutSitePhrases) {
		return aboutSiteReply, "about_site"
	}
	if containsAnyPhrase(lowered, servicesPhrases) {
		return servicesReply, "services"
	}

	// 7. Consultation offer, gated on services having been explained.
	// Booked sessions are never offered a second link.
	if !s.State.BookingCompleted && ShouldOfferConsultation(message, s.State) {
		if !ServicesExplained(turns) {
			return servicesBeforeConsultationReply, "services_gate"
		}
		return o.schedule(ctx, s, turns), "scheduling"
	}

	// 8. Off-topic deflection.
	if !cls.IsRelevant {
		return offTopicReply, "off_topic"
	}

	// 9. Grounded answer.
	return o.responder.Respond(ctx, message, turns), "retrieval"
}

// directQuestion answers a non-greeting opener. Informational intents get
// canned replies, everything else goes through the responder.
func (o *Orchestrator) directQuestion(ctx context.Context, message string) string {
	lowered := strings.ToLower(message)
	if containsAnyPhrase(lowered, servicesPhrases) {
		return servicesReply
	}
	if containsAnyPhrase(lowered, aboutSitePhrases) {
		return aboutSiteReply
	}
	return o.responder.Respond(ctx, message, nil)
}

// schedule invokes the coordinator and records that a consultation was
// offered. BookingCompleted only flips on a later explicit confirmation.
func (o *Orchestrator) schedule(ctx context.Context, s *session.Session, turns []session.Turn) string {
	recent := session.Recent(turns, schedulingContextWindow)
	contents := make([]string, 0, len(recent))
	for _, turn := range recent {
		contents = append(contents, turn.Content)
	}
	envelope := o.scheduler.Schedule(ctx, s.ID, contents)
	s.State.ConsultationSuggested = true
	return envelope.JSON()
}

func (o *Orchestrator) append(ctx context.Context, sessionID, role, content string) {
	err := o.history.Append(ctx, sessionID, session.Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		o.logger.Error("history append failed", "session_id", sessionID, "role", role, "error", err)
		o.metrics.ObserveCollaboratorError("history")
	}
}

func lastAssistantTurn(turns []session.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == session.RoleAssistant {
			return turns[i].Content
		}
	}
	return ""
}

func containsAnyPhrase(lowered string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
