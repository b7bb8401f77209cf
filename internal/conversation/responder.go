package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/riccoai/lead-agent/internal/llm"
	"github.com/riccoai/lead-agent/internal/observability/metrics"
	"github.com/riccoai/lead-agent/internal/retrieval"
	"github.com/riccoai/lead-agent/internal/session"
	"github.com/riccoai/lead-agent/pkg/logging"
)

const defaultPersonaPrompt = `You are an AI assistant for ricco.AI, an AI consultancy company. Your primary goal is to qualify leads and guide them towards scheduling a consultation.

CORE PRINCIPLES:
1. Your main objective is lead generation - every conversation should aim to schedule a consultation
2. Never provide detailed solutions or technical advice - instead, suggest a consultation
3. Never recommend third-party products or services
4. Keep responses focused on ricco.AI's services and expertise
5. Always guide conversations toward business value and ROI

RESPONSE RULES:
1. Keep responses clear and concise (2-3 sentences maximum)
2. Focus on business outcomes, not technical details
3. Never provide implementation advice
4. Always tie responses back to ricco.AI's services
5. Only suggest a consultation after understanding their needs

Remember: Build understanding first, then guide toward consultation.`

// responderFallback is returned whenever the completion collaborator fails;
// the raw error is logged, never shown.
const responderFallback = "I apologize, but I'm having trouble. Could you tell me more about what you're looking to achieve?"

const historyWindow = 3

// ResponderConfig tunes prompt assembly and sampling.
type ResponderConfig struct {
	Model     string
	Persona   string
	MaxTokens int

	// Temperature is a pointer so zero (deterministic sampling) stays
	// distinguishable from unset; nil means the 0.7 default.
	Temperature *float32

	TopP float32
	TopK int
}

// Responder produces grounded replies: retrieved passages plus recent
// history plus the persona prompt, delegated to the completion service.
type Responder struct {
	llm       llm.Client
	retriever retrieval.Retriever
	cfg       ResponderConfig
	metrics   *metrics.ConversationMetrics
	logger    *logging.Logger
}

// NewResponder builds a responder. retriever may be nil; replies then lean
// on the persona and history alone.
func NewResponder(client llm.Client, retriever retrieval.Retriever, cfg ResponderConfig, m *metrics.ConversationMetrics, logger *logging.Logger) *Responder {
	if client == nil {
		panic("conversation: llm client cannot be nil")
	}
	if cfg.Persona == "" {
		cfg.Persona = defaultPersonaPrompt
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 100
	}
	if cfg.Temperature == nil {
		temp := float32(0.7)
		cfg.Temperature = &temp
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Responder{llm: client, retriever: retriever, cfg: cfg, metrics: m, logger: logger}
}

// Respond returns a grounded reply for message. It never returns an error:
// retrieval failures drop the context, completion failures return a fixed
// apologetic fallback.
func (r *Responder) Respond(ctx context.Context, message string, turns []session.Turn) string {
	messages := []llm.ChatMessage{
		{Role: llm.ChatRoleSystem, Content: r.cfg.Persona},
	}

	if grounding := r.retrieveContext(ctx, message); grounding != "" {
		messages = append(messages, llm.ChatMessage{Role: llm.ChatRoleSystem, Content: grounding})
	}

	for _, turn := range session.Recent(turns, historyWindow) {
		role := llm.ChatRoleUser
		if turn.Role == session.RoleAssistant {
			role = llm.ChatRoleAssistant
		}
		messages = append(messages, llm.ChatMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: llm.ChatRoleUser, Content: message})

	resp, err := r.llm.Complete(ctx, llm.Request{
		Model:       r.cfg.Model,
		Messages:    messages,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: *r.cfg.Temperature,
		TopP:        r.cfg.TopP,
	})
	if err != nil {
		r.logger.Error("completion failed", "error", err)
		r.metrics.ObserveCollaboratorError("completion")
		return responderFallback
	}
	return resp.Text
}

func (r *Responder) retrieveContext(ctx context.Context, query string) string {
	if r.retriever == nil {
		return ""
	}
	passages, err := r.retriever.Search(ctx, query, r.cfg.TopK)
	if err != nil {
		r.logger.Error("retrieval failed, answering without context", "error", err)
		r.metrics.ObserveCollaboratorError("retrieval")
		return ""
	}
	if len(passages) == 0 {
		return ""
	}
	builder := strings.Builder{}
	builder.WriteString("Relevant company context:\n")
	for i, passage := range passages {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, passage))
	}
	return builder.String()
}
