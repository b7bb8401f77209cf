package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riccoai/lead-agent/internal/llm"
	"github.com/riccoai/lead-agent/internal/session"
)

type recordingLLM struct {
	text     string
	err      error
	lastReq  llm.Request
	requests int
}

func (r *recordingLLM) Complete(_ context.Context, req llm.Request) (llm.Response, error) {
	r.lastReq = req
	r.requests++
	if r.err != nil {
		return llm.Response{}, r.err
	}
	return llm.Response{Text: r.text}, nil
}

type failingRetriever struct{}

func (failingRetriever) Search(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, errors.New("vector store unavailable")
}

func TestRespondInjectsRetrievedContext(t *testing.T) {
	client := &recordingLLM{text: "grounded answer"}
	retriever := &staticRetriever{hits: []string{"We build chatbots.", "We do analytics."}}
	responder := NewResponder(client, retriever, ResponderConfig{}, nil, nil)

	reply := responder.Respond(context.Background(), "what do you do?", nil)

	assert.Equal(t, "grounded answer", reply)
	require.GreaterOrEqual(t, len(client.lastReq.Messages), 3)
	assert.Equal(t, llm.ChatRoleSystem, client.lastReq.Messages[0].Role)
	assert.Contains(t, client.lastReq.Messages[1].Content, "1. We build chatbots.")
	assert.Contains(t, client.lastReq.Messages[1].Content, "2. We do analytics.")
	last := client.lastReq.Messages[len(client.lastReq.Messages)-1]
	assert.Equal(t, llm.ChatRoleUser, last.Role)
	assert.Equal(t, "what do you do?", last.Content)
}

func TestRespondSurvivesRetrievalFailure(t *testing.T) {
	client := &recordingLLM{text: "persona answer"}
	responder := NewResponder(client, failingRetriever{}, ResponderConfig{}, nil, nil)

	reply := responder.Respond(context.Background(), "what do you do?", nil)

	assert.Equal(t, "persona answer", reply)
	for _, msg := range client.lastReq.Messages {
		assert.NotContains(t, msg.Content, "Relevant company context")
	}
}

func TestRespondFallsBackOnCompletionError(t *testing.T) {
	client := &recordingLLM{err: errors.New("rate limited")}
	responder := NewResponder(client, nil, ResponderConfig{}, nil, nil)

	reply := responder.Respond(context.Background(), "what do you do?", nil)

	assert.Equal(t, responderFallback, reply)
}

func TestRespondLimitsHistoryWindow(t *testing.T) {
	client := &recordingLLM{text: "ok"}
	responder := NewResponder(client, nil, ResponderConfig{}, nil, nil)

	turns := make([]session.Turn, 0, 10)
	for i := 0; i < 10; i++ {
		role := session.RoleUser
		if i%2 == 1 {
			role = session.RoleAssistant
		}
		turns = append(turns, session.Turn{Role: role, Content: "turn"})
	}

	responder.Respond(context.Background(), "latest question", turns)

	// Persona system message, three history turns, current user message.
	assert.Len(t, client.lastReq.Messages, 5)
}

func TestRespondAppliesConfigDefaults(t *testing.T) {
	client := &recordingLLM{text: "ok"}
	responder := NewResponder(client, nil, ResponderConfig{}, nil, nil)

	responder.Respond(context.Background(), "hello", nil)

	assert.Equal(t, 100, client.lastReq.MaxTokens)
	assert.InDelta(t, 0.7, float64(client.lastReq.Temperature), 0.001)
	assert.Contains(t, client.lastReq.Messages[0].Content, "ricco.AI")
}

func TestRespondHonorsZeroTemperature(t *testing.T) {
	client := &recordingLLM{text: "ok"}
	zero := float32(0)
	responder := NewResponder(client, nil, ResponderConfig{Temperature: &zero}, nil, nil)

	responder.Respond(context.Background(), "hello", nil)

	assert.Zero(t, client.lastReq.Temperature)
}

func TestNewResponderPanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		NewResponder(nil, nil, ResponderConfig{}, nil, nil)
	})
}
