// Package webchat exposes the conversation pipeline over WebSocket and an
// HTTP fallback for clients that cannot hold a socket open.
package webchat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/riccoai/lead-agent/internal/session"
	"github.com/riccoai/lead-agent/pkg/logging"
)

// Conversationalist handles one inbound message and returns the reply.
type Conversationalist interface {
	Handle(ctx context.Context, sessionID, message string) string
}

// HistoryReader loads a session transcript for replay.
type HistoryReader interface {
	List(ctx context.Context, sessionID string) ([]session.Turn, error)
}

// Handler manages chat connections. Messages within one connection are
// processed strictly in order: each reply is written before the next frame
// is read.
type Handler struct {
	agent   Conversationalist
	history HistoryReader
	logger  *logging.Logger

	mu    sync.RWMutex
	conns map[string]*websocket.Conn // sessionID -> active connection
}

// HistoryMessage is one transcript entry in history responses.
type HistoryMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// NewHandler creates a chat handler.
func NewHandler(agent Conversationalist, history HistoryReader, logger *logging.Logger) *Handler {
	if agent == nil {
		panic("webchat: agent cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		agent:   agent,
		history: history,
		logger:  logger,
		conns:   make(map[string]*websocket.Conn),
	}
}

// HandleWebSocket upgrades /ws/{session_id} and relays plain-text frames.
// Replies are either plain text or a JSON scheduling envelope; the widget
// distinguishes them by attempting to parse each frame as JSON.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(r.Context(), conn, sessionID)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(ctx context.Context, conn *websocket.Conn, sessionID string) {
	h.mu.Lock()
	if prev, ok := h.conns[sessionID]; ok {
		// One live socket per session; the newer connection wins.
		_ = prev.Close()
	}
	h.conns[sessionID] = conn
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.conns[sessionID] == conn {
			delete(h.conns, sessionID)
		}
		h.mu.Unlock()
	}()

	h.logger.Info("webchat connection opened", "session_id", sessionID)

	for {
		var text string
		if err := websocket.Message.Receive(conn, &text); err != nil {
			h.logger.Debug("webchat connection closed", "session_id", sessionID, "error", err)
			return
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		reply := h.agent.Handle(ctx, sessionID, text)
		if err := websocket.Message.Send(conn, reply); err != nil {
			h.logger.Warn("webchat send failed", "session_id", sessionID, "error", err)
			return
		}
	}
}

// HandleMessage is the HTTP fallback: POST /chat with a JSON body, reply
// returned synchronously in the response.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	reply := h.agent.Handle(r.Context(), req.SessionID, req.Text)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"session_id": req.SessionID,
		"reply":      reply,
	})
}

// HandleHistory returns the transcript for GET /chat/history?session=ID.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if h.history == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"messages": []HistoryMessage{}})
		return
	}

	turns, err := h.history.List(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("history load failed", "session_id", sessionID, "error", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	messages := make([]HistoryMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, HistoryMessage{
			Role:      turn.Role,
			Text:      turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339),
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": messages})
}
