package retrieval

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type embeddingClient interface {
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Embedder turns text into vectors via the OpenAI embeddings API.
type Embedder struct {
	client embeddingClient
	model  string
}

// NewEmbedder creates an embedder for the given model.
func NewEmbedder(apiKey, model string) *Embedder {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &Embedder{client: openai.NewClient(apiKey), model: model}
}

func newEmbedderWith(client embeddingClient, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

// Embed returns one vector per input text.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, &openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieval: embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.New("retrieval: embedding response size mismatch")
	}
	out := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		out[i] = item.Embedding
	}
	return out, nil
}
