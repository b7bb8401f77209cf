package retrieval

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/riccoai/lead-agent/pkg/logging"
)

// QdrantConfig holds Qdrant connection configuration.
type QdrantConfig struct {
	// URL is the Qdrant server address (e.g. "https://example.qdrant.io:6334").
	URL string

	// CollectionName is the collection holding knowledge-base passages.
	CollectionName string

	// APIKey is the optional API key for authentication.
	APIKey string
}

// QdrantStore implements Retriever and Ingestor against a Qdrant collection.
// The gRPC client is dialed lazily on first use; initialization is idempotent.
type QdrantStore struct {
	cfg      QdrantConfig
	embedder *Embedder
	logger   *logging.Logger

	once    sync.Once
	client  *qdrant.Client
	initErr error
}

// NewQdrantStore creates a store; no connection is made until first use.
func NewQdrantStore(cfg QdrantConfig, embedder *Embedder, logger *logging.Logger) (*QdrantStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("retrieval: qdrant url is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("retrieval: embedder is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &QdrantStore{cfg: cfg, embedder: embedder, logger: logger}, nil
}

func (s *QdrantStore) init() error {
	s.once.Do(func() {
		parsed := s.cfg.URL
		if !strings.HasPrefix(parsed, "http://") && !strings.HasPrefix(parsed, "https://") {
			parsed = "https://" + parsed
		}
		u, err := url.Parse(parsed)
		if err != nil {
			s.initErr = fmt.Errorf("retrieval: failed to parse qdrant url: %w", err)
			return
		}

		host := u.Hostname()
		port := 6334
		if u.Port() != "" {
			p, err := strconv.Atoi(u.Port())
			if err != nil {
				s.initErr = fmt.Errorf("retrieval: invalid qdrant port: %w", err)
				return
			}
			port = p
		}

		client, err := qdrant.NewClient(&qdrant.Config{
			Host:   host,
			Port:   port,
			APIKey: s.cfg.APIKey,
			UseTLS: u.Scheme == "https",
		})
		if err != nil {
			s.initErr = fmt.Errorf("retrieval: failed to create qdrant client: %w", err)
			return
		}
		s.client = client
		s.logger.Info("qdrant client initialized", "host", host, "collection", s.cfg.CollectionName)
	})
	return s.initErr
}

// Search embeds the query and returns the top-k passage texts.
func (s *QdrantStore) Search(ctx context.Context, query string, k int) ([]string, error) {
	if err := s.init(); err != nil {
		return nil, err
	}
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

	limit := uint64(k)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.cfg.CollectionName,
		Query:          qdrant.NewQuery(vectors[0]...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieval: qdrant search failed: %w", err)
	}

	passages := make([]string, 0, len(points))
	for _, point := range points {
		if point.Payload == nil {
			continue
		}
		if v, ok := point.Payload["text"]; ok {
			if text := v.GetStringValue(); text != "" {
				passages = append(passages, text)
			}
		}
	}
	return passages, nil
}

// AddDocuments embeds and upserts passage texts into the collection.
func (s *QdrantStore) AddDocuments(ctx context.Context, contents []string) error {
	if len(contents) == 0 {
		return nil
	}
	if err := s.init(); err != nil {
		return err
	}

	vectors, err := s.embedder.Embed(ctx, contents)
	if err != nil {
		return err
	}

	points := make([]*qdrant.PointStruct, len(contents))
	for i, content := range contents {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{"text": content}),
		}
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.cfg.CollectionName,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("retrieval: qdrant upsert failed: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC connection if one was dialed.
func (s *QdrantStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
