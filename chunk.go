package webcite

import (
	"context"
)

// Default retrieval parameters. Chunks scoring below DefaultMinScore are
// excluded from retrieval entirely; an empty result set is a valid outcome.
const (
	DefaultSearchLimit = 5
	DefaultMinScore    = 0.6
)

// Chunk represents a bounded span of extracted page text, the unit of
// storage and retrieval. Every chunk carries the provenance of the page it
// was split from.
type Chunk struct {
	ID             string    `json:"id"`
	SourceURL      string    `json:"sourceUrl"`
	ContentAddress string    `json:"contentAddress"`
	Domain         string    `json:"domain"`
	Content        string    `json:"content"`
	Embedding      []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.ContentAddress == "" {
		return Errorf(EINVALID, "chunk content address required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// SearchResult represents a retrieved chunk with its relevance score.
// A result's 1-based position within one retrieval call is the citation
// number the synthesizer's prompt contract refers to.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// SearchOptions configures similarity search behavior.
type SearchOptions struct {
	// Maximum number of results to return. Zero means DefaultSearchLimit.
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score; results scoring below are excluded.
	MinScore float32 `json:"minScore,omitempty"`
}

// CollectionStats is a derived, read-only aggregate over all stored chunks.
type CollectionStats struct {
	Documents     int   `json:"documents"`
	UniqueURLs    int   `json:"uniqueUrls"`
	UniqueDomains int   `json:"uniqueDomains"`
	SizeBytes     int64 `json:"sizeBytes"`
}

// ChunkStore is a persistent similarity-searchable index of chunks.
//
// A content address maps to either zero chunks or one internally-consistent
// batch, never a partial batch: CreateChunks and ReplaceChunks commit their
// batch atomically, and ReplaceChunks never leaves chunks from two fetch
// generations coexisting under one address.
type ChunkStore interface {
	// CreateChunks commits a batch of chunks as a single unit.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// ReplaceChunks deletes all chunks stored under address and commits the
	// new batch in the same transaction. Returns the number deleted.
	ReplaceChunks(ctx context.Context, address string, chunks []*Chunk) (int, error)

	// ExistsByAddress reports whether any chunk is stored under address.
	ExistsByAddress(ctx context.Context, address string) (bool, error)

	// DeleteByAddress removes all chunks stored under address and returns
	// the number deleted.
	DeleteByAddress(ctx context.Context, address string) (int, error)

	// Search returns chunks similar to the query embedding, ordered by
	// descending score. Results scoring below opts.MinScore are excluded.
	Search(ctx context.Context, embedding []float32, opts SearchOptions) ([]SearchResult, error)

	// Stats returns aggregate statistics over the whole collection.
	Stats(ctx context.Context) (*CollectionStats, error)
}
