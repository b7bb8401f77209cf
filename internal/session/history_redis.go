package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RedisHistoryStore keeps each session's turn log as a JSON blob with a TTL,
// so idle conversations expire on their own.
type RedisHistoryStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisHistoryStore creates a Redis-backed history store.
func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisHistoryStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("leadagent.internal.session.history"),
	}
}

// Append loads the turn log, appends, and writes it back, refreshing the TTL.
func (s *RedisHistoryStore) Append(ctx context.Context, sessionID string, turn Turn) error {
	ctx, span := s.tracer.Start(ctx, "session.append_history")
	defer span.End()

	turns, err := s.load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	turns = append(turns, turn)

	data, err := json.Marshal(turns)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal history: %w", err)
	}
	if err := s.redis.Set(ctx, historyKey(sessionID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist history: %w", err)
	}
	return nil
}

// List returns the ordered turn log; an unknown session yields an empty log.
func (s *RedisHistoryStore) List(ctx context.Context, sessionID string) ([]Turn, error) {
	ctx, span := s.tracer.Start(ctx, "session.load_history")
	defer span.End()

	turns, err := s.load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return turns, nil
}

func (s *RedisHistoryStore) load(ctx context.Context, sessionID string) ([]Turn, error) {
	data, err := s.redis.Get(ctx, historyKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: failed to load history: %w", err)
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("session: failed to decode history: %w", err)
	}
	return turns, nil
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("chat:%s", sessionID)
}
