// Package intent labels raw visitor messages so the orchestrator can route
// them. Detection is heuristic-first with optional model-backed checks; the
// classifier never returns an error, it degrades to keyword matching.
package intent

import (
	"context"
	"strings"

	"github.com/riccoai/lead-agent/internal/llm"
	"github.com/riccoai/lead-agent/internal/session"
	"github.com/riccoai/lead-agent/pkg/logging"
)

// Result labels a single message. Produced fresh per message, never cached.
type Result struct {
	IsGreeting          bool
	IsAcknowledgment    bool
	IsSchedulingRequest bool
	IsRelevant          bool
	Topic               session.Topic
}

// Classifier combines fixed vocabularies with optional model-backed binary
// checks. A nil llm client means heuristics only.
type Classifier struct {
	llm    llm.Client
	model  string
	logger *logging.Logger
}

// NewClassifier builds a classifier. client may be nil.
func NewClassifier(client llm.Client, model string, logger *logging.Logger) *Classifier {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Classifier{llm: client, model: model, logger: logger}
}

// Classify labels message given the session state and recent history.
// Greeting detection only applies to the very first turn of a session.
func (c *Classifier) Classify(ctx context.Context, message string, state session.State, recent []session.Turn) Result {
	res := Result{
		IsSchedulingRequest: IsSchedulingRequest(message),
		Topic:               ExtractTopic(message),
	}

	if len(recent) == 0 {
		res.IsGreeting = c.isGreeting(ctx, message)
	}

	res.IsAcknowledgment = c.isAcknowledgment(ctx, message)
	res.IsRelevant = c.isRelevant(ctx, message)
	return res
}

// IsSchedulingRequest reports whether message carries explicit booking
// vocabulary. This check always runs on fixed vocabulary; it is the highest
// priority signal and must not depend on a collaborator.
func IsSchedulingRequest(message string) bool {
	return containsAny(strings.ToLower(message), schedulingWords)
}

// IsBookingConfirmation reports an explicit "I booked" style message.
func IsBookingConfirmation(message string) bool {
	return containsAny(strings.ToLower(message), bookingConfirmations)
}

// IsImplementationQuestion reports how-do-I style implementation asks.
func IsImplementationQuestion(message string) bool {
	return containsAny(strings.ToLower(message), implementationTriggers)
}

// InvitesConsultation reports whether an assistant reply contained
// consultation-inviting language; an acknowledgment right after such a
// reply counts as accepting the offer.
func InvitesConsultation(assistantText string) bool {
	return containsAny(strings.ToLower(assistantText), consultationInvites)
}

// MentionsServiceTopic reports whether an assistant reply named a concrete
// service area; an acknowledgment after that is treated as interest.
func MentionsServiceTopic(assistantText string) bool {
	lowered := strings.ToLower(assistantText)
	for keyword := range topicKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// ExtractTopic matches message against the small fixed set of service topics.
func ExtractTopic(message string) session.Topic {
	lowered := strings.ToLower(message)
	for keyword, topic := range topicKeywords {
		if strings.Contains(lowered, keyword) {
			return topic
		}
	}
	if containsAny(lowered, businessInquiryWords) {
		return session.TopicBusinessInquiry
	}
	if containsAny(lowered, serviceInterestWords) {
		return session.TopicServiceInterest
	}
	return session.TopicNone
}

func (c *Classifier) isGreeting(ctx context.Context, message string) bool {
	lowered := strings.ToLower(strings.TrimSpace(message))
	for _, g := range greetings {
		if strings.HasPrefix(lowered, g) {
			return true
		}
	}
	if c.llm == nil {
		return false
	}
	verdict, err := c.binaryCheck(ctx, greetingCheckPrompt, message)
	if err != nil {
		c.logger.Warn("intent: greeting check degraded to heuristic", "error", err)
		return false
	}
	return verdict
}

func (c *Classifier) isAcknowledgment(ctx context.Context, message string) bool {
	lowered := strings.ToLower(message)
	tokens := tokenSet(lowered)
	for _, word := range affirmations {
		// Single tokens match whole words only; "ok" must not fire on "looking".
		if strings.ContainsRune(word, ' ') {
			if strings.Contains(lowered, word) {
				return true
			}
		} else if tokens[word] {
			return true
		}
	}
	// Short messages that miss the fixed vocabulary may still be
	// context-dependent agreements; ask the model when one is available.
	if c.llm == nil || len(strings.Fields(lowered)) > 6 {
		return false
	}
	verdict, err := c.binaryCheck(ctx, acknowledgmentCheckPrompt, message)
	if err != nil {
		c.logger.Warn("intent: acknowledgment check degraded to heuristic", "error", err)
		return false
	}
	return verdict
}

// isRelevant applies the deliberately asymmetric relevance filter: everything
// is relevant unless it clearly hits the narrow deny-list. The model check
// carries the same bias; on failure the heuristic answer stands.
func (c *Classifier) isRelevant(ctx context.Context, message string) bool {
	heuristic := relevantHeuristic(message)
	if c.llm == nil {
		return heuristic
	}
	verdict, err := c.binaryCheck(ctx, relevanceCheckPrompt, message)
	if err != nil {
		c.logger.Warn("intent: relevance check degraded to heuristic", "error", err)
		return heuristic
	}
	return verdict
}

// binaryCheck asks the model for a single-character Y/N verdict.
func (c *Classifier) binaryCheck(ctx context.Context, system, message string) (bool, error) {
	resp, err := c.llm.Complete(ctx, llm.Request{
		Model: c.model,
		Messages: []llm.ChatMessage{
			{Role: llm.ChatRoleSystem, Content: system},
			{Role: llm.ChatRoleUser, Content: message},
		},
		MaxTokens:   1,
		Temperature: 0,
	})
	if err != nil {
		return false, err
	}
	return strings.ToUpper(strings.TrimSpace(resp.Text)) == "Y", nil
}

// relevantHeuristic biases toward inclusion. A recognized service or
// business topic always wins; otherwise single deny-list words must match
// whole tokens so "sports" never fires on "transports", while multi-word
// deny phrases match by substring.
func relevantHeuristic(message string) bool {
	if ExtractTopic(message) != session.TopicNone {
		return true
	}
	lowered := strings.ToLower(message)
	tokens := tokenSet(lowered)
	for _, word := range offTopicWords {
		if strings.Contains(word, " ") {
			if strings.Contains(lowered, word) {
				return false
			}
		} else if tokens[word] {
			return false
		}
	}
	return true
}

func tokenSet(lowered string) map[string]bool {
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, "'")] = true
	}
	return set
}

func containsAny(lowered string, words []string) bool {
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
