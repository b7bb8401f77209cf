package retrieval

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/riccoai/lead-agent/pkg/logging"
)

// MemoryStore keeps embeddings in memory and supports simple cosine
// retrieval. Used in development and tests where no Qdrant is available.
type MemoryStore struct {
	embedder *Embedder
	logger   *logging.Logger

	mu        sync.RWMutex
	documents []memoryDocument
}

type memoryDocument struct {
	content   string
	embedding []float32
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(embedder *Embedder, logger *logging.Logger) *MemoryStore {
	if embedder == nil {
		panic("retrieval: embedder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MemoryStore{embedder: embedder, logger: logger}
}

// AddDocuments embeds and stores the provided contents.
func (s *MemoryStore) AddDocuments(ctx context.Context, contents []string) error {
	if len(contents) == 0 {
		return nil
	}
	vectors, err := s.embedder.Embed(ctx, contents)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, content := range contents {
		s.documents = append(s.documents, memoryDocument{
			content:   content,
			embedding: vectors[i],
		})
	}
	return nil
}

// Search returns the top-k documents by cosine similarity.
func (s *MemoryStore) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = 3
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	queryVec := vectors[0]

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.documents) == 0 {
		return nil, nil
	}

	type scored struct {
		score   float64
		content string
	}
	results := make([]scored, 0, len(s.documents))
	for _, doc := range s.documents {
		results = append(results, scored{
			score:   cosineSimilarity(queryVec, doc.embedding),
			content: doc.content,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	limit := k
	if len(results) < limit {
		limit = len(results)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = results[i].content
	}
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	var normA float64
	var normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
