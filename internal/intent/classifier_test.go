package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riccoai/lead-agent/internal/llm"
	"github.com/riccoai/lead-agent/internal/session"
)

type scriptedLLM struct {
	answer string
	err    error
	calls  int
}

func (s *scriptedLLM) Complete(_ context.Context, _ llm.Request) (llm.Response, error) {
	s.calls++
	if s.err != nil {
		return llm.Response{}, s.err
	}
	return llm.Response{Text: s.answer}, nil
}

func TestIsSchedulingRequest(t *testing.T) {
	cases := map[string]bool{
		"I want to book a meeting":        true,
		"can we schedule something":       true,
		"I'd like to talk to someone":     true,
		"set up an appointment please":    true,
		"what does your company do":       false,
		"how much data do I need for ML?": false,
	}
	for message, want := range cases {
		assert.Equal(t, want, IsSchedulingRequest(message), "message: %s", message)
	}
}

func TestClassifyHeuristicsOnly(t *testing.T) {
	c := NewClassifier(nil, "", nil)

	res := c.Classify(context.Background(), "hello there", session.State{}, nil)
	assert.True(t, res.IsGreeting)
	assert.True(t, res.IsRelevant)
	assert.False(t, res.IsSchedulingRequest)

	// Greeting detection only applies on the first turn.
	recent := []session.Turn{{Role: session.RoleUser, Content: "hi"}}
	res = c.Classify(context.Background(), "hello again", session.State{}, recent)
	assert.False(t, res.IsGreeting)
}

func TestClassifyAcknowledgment(t *testing.T) {
	c := NewClassifier(nil, "", nil)
	res := c.Classify(context.Background(), "sounds good", session.State{}, []session.Turn{{}})
	assert.True(t, res.IsAcknowledgment)

	res = c.Classify(context.Background(), "what is your pricing model for enterprises", session.State{}, []session.Turn{{}})
	assert.False(t, res.IsAcknowledgment)
}

func TestModelBackedAcknowledgment(t *testing.T) {
	// "by all means" misses the fixed vocabulary; the model call decides.
	model := &scriptedLLM{answer: "Y"}
	c := NewClassifier(model, "gpt-3.5-turbo", nil)
	res := c.Classify(context.Background(), "by all means", session.State{}, []session.Turn{{}})
	assert.True(t, res.IsAcknowledgment)
	assert.Positive(t, model.calls)
}

func TestModelFailureDegradesToHeuristic(t *testing.T) {
	model := &scriptedLLM{err: errors.New("rate limited")}
	c := NewClassifier(model, "gpt-3.5-turbo", nil)

	// Relevance falls back to the deny-list heuristic: generic input stays relevant.
	res := c.Classify(context.Background(), "how could automation help my team", session.State{}, []session.Turn{{}})
	assert.True(t, res.IsRelevant)

	// And the deny-list still rejects clearly unrelated topics.
	res = c.Classify(context.Background(), "any good restaurant recommendation near me", session.State{}, []session.Turn{{}})
	assert.False(t, res.IsRelevant)
}

func TestRelevanceBiasTowardInclusion(t *testing.T) {
	c := NewClassifier(nil, "", nil)
	for _, message := range []string{
		"hmm", "interesting", "what about costs", "we use spreadsheets for everything",
	} {
		res := c.Classify(context.Background(), message, session.State{}, []session.Turn{{}})
		assert.True(t, res.IsRelevant, "message: %s", message)
	}
	for _, message := range []string{
		"who will win the football league", "what's the weather tomorrow",
		"recommend a casino", "I need dating tips",
	} {
		res := c.Classify(context.Background(), message, session.State{}, []session.Turn{{}})
		assert.False(t, res.IsRelevant, "message: %s", message)
	}
}

func TestRelevanceDenyListMatchesWholeWords(t *testing.T) {
	c := NewClassifier(nil, "", nil)

	// Deny-list words embedded in longer tokens never fire.
	for _, message := range []string{
		"how do you handle transports logistics",
		"can you automate our travel-booking business",
		"we sell sportswear online",
	} {
		res := c.Classify(context.Background(), message, session.State{}, []session.Turn{{}})
		assert.True(t, res.IsRelevant, "message: %s", message)
	}

	// Standalone deny words and multi-word phrases still do.
	for _, message := range []string{
		"any good sports bets this weekend",
		"I need relationship advice",
	} {
		res := c.Classify(context.Background(), message, session.State{}, []session.Turn{{}})
		assert.False(t, res.IsRelevant, "message: %s", message)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	c := NewClassifier(nil, "", nil)
	state := session.State{InteractionCount: 4}
	recent := []session.Turn{{Role: session.RoleAssistant, Content: "Would you like a consultation?"}}

	first := c.Classify(context.Background(), "yes please", state, recent)
	second := c.Classify(context.Background(), "yes please", state, recent)
	assert.Equal(t, first, second)
}

func TestExtractTopic(t *testing.T) {
	assert.Equal(t, session.TopicAnalytics, ExtractTopic("tell me about data analysis"))
	assert.Equal(t, session.TopicAutomation, ExtractTopic("can you automate invoicing"))
	assert.Equal(t, session.TopicImplementation, ExtractTopic("what does implementation look like"))
	assert.Equal(t, session.TopicBusinessInquiry, ExtractTopic("my business is struggling with churn"))
	assert.Equal(t, session.TopicNone, ExtractTopic("hello"))
}

func TestInvitesConsultation(t *testing.T) {
	assert.True(t, InvitesConsultation("Would you like to schedule a consultation to explore this further?"))
	assert.True(t, InvitesConsultation("Happy to talk more about it."))
	assert.False(t, InvitesConsultation("We offer AI strategy and process optimization."))
}

func TestIsBookingConfirmation(t *testing.T) {
	assert.True(t, IsBookingConfirmation("I just booked a slot"))
	assert.True(t, IsBookingConfirmation("made an appointment for tuesday"))
	assert.False(t, IsBookingConfirmation("I want to book"))
}

func TestIsImplementationQuestion(t *testing.T) {
	assert.True(t, IsImplementationQuestion("how do I integrate this with our CRM"))
	assert.True(t, IsImplementationQuestion("how can i implement a chatbot"))
	assert.False(t, IsImplementationQuestion("what services do you offer"))
}
