package llm

import "context"

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is an internal message representation that can include system prompts.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single completion call.
type Request struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// Response carries the accumulated completion text.
type Response struct {
	Text string
}

// Client produces chat completions from a hosted model.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
