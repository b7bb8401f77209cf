package webchat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riccoai/lead-agent/internal/session"
	"github.com/riccoai/lead-agent/pkg/logging"
)

// echoAgent replies with a fixed prefix and records what it saw.
type echoAgent struct {
	replies  []string
	sessions []string
}

func (e *echoAgent) Handle(_ context.Context, sessionID, message string) string {
	e.sessions = append(e.sessions, sessionID)
	reply := "echo: " + message
	e.replies = append(e.replies, reply)
	return reply
}

func TestHandleMessageHTTP(t *testing.T) {
	agent := &echoAgent{}
	h := NewHandler(agent, session.NewMemoryHistoryStore(), logging.New("error"))

	body := `{"session_id":"sess1","text":"Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleMessage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess1", resp["session_id"])
	assert.Equal(t, "echo: Hello", resp["reply"])
	require.Len(t, agent.sessions, 1)
	assert.Equal(t, "sess1", agent.sessions[0])
}

func TestHandleMessageGeneratesSessionID(t *testing.T) {
	agent := &echoAgent{}
	h := NewHandler(agent, nil, logging.New("error"))

	body := `{"text":"Hello"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.HandleMessage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["session_id"])
}

func TestHandleMessageRejectsEmptyText(t *testing.T) {
	h := NewHandler(&echoAgent{}, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"session_id":"s1","text":"  "}`))
	w := httptest.NewRecorder()
	h.HandleMessage(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`not json`))
	w = httptest.NewRecorder()
	h.HandleMessage(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHistory(t *testing.T) {
	history := session.NewMemoryHistoryStore()
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, history.Append(ctx, "sess1", session.Turn{Role: session.RoleUser, Content: "Hi", Timestamp: ts}))
	require.NoError(t, history.Append(ctx, "sess1", session.Turn{Role: session.RoleAssistant, Content: "Hello!", Timestamp: ts.Add(time.Second)}))

	h := NewHandler(&echoAgent{}, history, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/chat/history?session=sess1", nil)
	w := httptest.NewRecorder()
	h.HandleHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, session.RoleUser, resp.Messages[0].Role)
	assert.Equal(t, "Hi", resp.Messages[0].Text)
	assert.Equal(t, "2025-06-01T09:30:00Z", resp.Messages[0].Timestamp)
	assert.Equal(t, "Hello!", resp.Messages[1].Text)
}

func TestHandleHistoryRequiresSession(t *testing.T) {
	h := NewHandler(&echoAgent{}, session.NewMemoryHistoryStore(), logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	w := httptest.NewRecorder()
	h.HandleHistory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHistoryWithoutStore(t *testing.T) {
	h := NewHandler(&echoAgent{}, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/chat/history?session=sess1", nil)
	w := httptest.NewRecorder()
	h.HandleHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Messages)
}
