package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/riccoai/lead-agent/pkg/logging"
)

const completionTimeout = 30 * time.Second

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient is the OpenAI-backed Client implementation.
type OpenAIClient struct {
	client       chatCompleter
	defaultModel string
	logger       *logging.Logger
}

// NewOpenAIClient builds a client around the official API.
func NewOpenAIClient(apiKey, defaultModel string, logger *logging.Logger) *OpenAIClient {
	if defaultModel == "" {
		defaultModel = "gpt-4"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIClient{
		client:       openai.NewClient(apiKey),
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// newOpenAIClientWith lets tests inject a stub completer.
func newOpenAIClientWith(client chatCompleter, defaultModel string, logger *logging.Logger) *OpenAIClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIClient{client: client, defaultModel: defaultModel, logger: logger}
}

// Complete runs one bounded chat completion and returns the trimmed text.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (Response, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	})
	if err != nil {
		return Response{}, fmt.Errorf("llm: openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("llm: openai returned no choices")
	}
	return Response{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}
