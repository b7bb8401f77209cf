package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisHistoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisHistoryStore(client, time.Hour), mr
}

func TestAppendAndListOrdered(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	turns := []Turn{
		{Role: RoleUser, Content: "hi", Timestamp: time.Now().UTC()},
		{Role: RoleAssistant, Content: "hello!", Timestamp: time.Now().UTC()},
		{Role: RoleUser, Content: "what services do you offer", Timestamp: time.Now().UTC()},
	}
	for _, turn := range turns {
		require.NoError(t, store.Append(ctx, "sess-1", turn))
	}

	got, err := store.List(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got, len(turns))
	for i := range turns {
		assert.Equal(t, turns[i].Role, got[i].Role, "turn %d", i)
		assert.Equal(t, turns[i].Content, got[i].Content, "turn %d", i)
	}
}

func TestListUnknownSessionIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.List(context.Background(), "nope")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendSetsTTL(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, store.Append(context.Background(), "sess-ttl", Turn{Role: RoleUser, Content: "hi"}))

	ttl := mr.TTL(historyKey("sess-ttl"))
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)

	// Expired entries vanish instead of being deleted explicitly.
	mr.FastForward(2 * time.Hour)
	got, err := store.List(context.Background(), "sess-ttl")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoredShapeIsJSONArray(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, store.Append(context.Background(), "sess-json", Turn{Role: RoleAssistant, Content: "reply"}))

	raw, err := mr.DB(0).Get(historyKey("sess-json"))
	require.NoError(t, err)

	var turns []Turn
	require.NoError(t, json.Unmarshal([]byte(raw), &turns))
	require.Len(t, turns, 1)
	assert.Equal(t, "reply", turns[0].Content)
}
