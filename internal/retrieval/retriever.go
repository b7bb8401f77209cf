// Package retrieval fronts the external knowledge index. The orchestrator
// only sees ranked passages; which backend produced them is a wiring choice.
package retrieval

import "context"

// Retriever returns the passages most similar to a query, best first.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}

// Ingestor accepts knowledge-base documents for indexing.
type Ingestor interface {
	AddDocuments(ctx context.Context, contents []string) error
}
