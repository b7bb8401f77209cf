package session

import "context"

// HistoryStore persists the ordered turn log for a session. Backed by a
// TTL-bound store; entries expire rather than being deleted.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, turn Turn) error
	List(ctx context.Context, sessionID string) ([]Turn, error)
}
