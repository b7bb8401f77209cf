package retrieval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/riccoai/lead-agent/pkg/logging"
)

const (
	chunkSize    = 500
	chunkOverlap = 100
	ingestBatch  = 100
)

// DirectoryIngestor loads knowledge documents from a directory, chunks them,
// and feeds them to an Ingestor in batches.
type DirectoryIngestor struct {
	target Ingestor
	logger *logging.Logger
}

// NewDirectoryIngestor builds an ingestor writing into target.
func NewDirectoryIngestor(target Ingestor, logger *logging.Logger) *DirectoryIngestor {
	if target == nil {
		panic("retrieval: ingest target cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DirectoryIngestor{target: target, logger: logger}
}

// LoadDirectory reads every .txt and .md file under dir and indexes it.
func (d *DirectoryIngestor) LoadDirectory(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("retrieval: failed to read docs dir: %w", err)
	}

	var chunks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			d.logger.Error("failed to read knowledge doc", "file", entry.Name(), "error", err)
			continue
		}
		fileChunks := SplitText(string(data), chunkSize, chunkOverlap)
		chunks = append(chunks, fileChunks...)
		d.logger.Info("loaded knowledge doc", "file", entry.Name(), "chunks", len(fileChunks))
	}

	for start := 0; start < len(chunks); start += ingestBatch {
		end := start + ingestBatch
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := d.target.AddDocuments(ctx, chunks[start:end]); err != nil {
			return fmt.Errorf("retrieval: ingest batch failed: %w", err)
		}
	}
	return nil
}

// SplitText cuts text into overlapping chunks, preferring to break at
// whitespace near the boundary so sentences survive intact.
func SplitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = chunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	step := size - overlap
	for start := 0; start < len(text); start += step {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, strings.TrimSpace(text[start:]))
			break
		}
		cut := end
		if idx := strings.LastIndexAny(text[start:end], " \n\t"); idx > step/2 {
			cut = start + idx
		}
		chunks = append(chunks, strings.TrimSpace(text[start:cut]))
	}
	return chunks
}
