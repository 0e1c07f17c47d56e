package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/fwojciec/webcite"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webcite.ChunkStore = (*ChunkStore)(nil)

// ChunkStore implements webcite.ChunkStore using SQLite. Embedding vectors
// are stored as little-endian float32 blobs alongside the chunk text, and
// similarity search scans them with cosine scoring.
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore.
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// CreateChunks commits a batch of chunks as a single transaction. Either
// the whole batch becomes visible or none of it does.
func (s *ChunkStore) CreateChunks(ctx context.Context, chunks []*webcite.Chunk) error {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertChunks(ctx, tx, chunks); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceChunks deletes all chunks stored under address and inserts the new
// batch in the same transaction, so a concurrent reader sees the old batch
// or the new one, never a mix of generations or a partial batch.
func (s *ChunkStore) ReplaceChunks(ctx context.Context, address string, chunks []*webcite.Chunk) (int, error) {
	if address == "" {
		return 0, webcite.Errorf(webcite.EINVALID, "content address required")
	}
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE content_address = ?", address)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := insertChunks(ctx, tx, chunks); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// insertChunks inserts a batch within an open transaction, assigning IDs
// and timestamps.
func insertChunks(ctx context.Context, tx *sql.Tx, chunks []*webcite.Chunk) error {
	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range chunks {
		c.ID = uuid.New().String()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, source_url, content_address, domain, content, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.SourceURL, c.ContentAddress, c.Domain, c.Content, encodeEmbedding(c.Embedding), now)
		if err != nil {
			return err
		}
	}
	return nil
}

// ExistsByAddress reports whether any chunk is stored under address.
func (s *ChunkStore) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM chunks WHERE content_address = ? LIMIT 1", address).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByAddress removes all chunks stored under address.
func (s *ChunkStore) DeleteByAddress(ctx context.Context, address string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE content_address = ?", address)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// Search scans stored embeddings and returns the chunks most similar to the
// query embedding, ordered by descending cosine score. Results scoring
// below opts.MinScore are excluded entirely; an empty result is valid.
func (s *ChunkStore) Search(ctx context.Context, embedding []float32, opts webcite.SearchOptions) ([]webcite.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, webcite.Errorf(webcite.EINVALID, "query embedding required")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = webcite.DefaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, content_address, domain, content, embedding
		FROM chunks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []webcite.SearchResult
	for rows.Next() {
		var c webcite.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.SourceURL, &c.ContentAddress, &c.Domain, &c.Content, &blob); err != nil {
			return nil, err
		}
		c.Embedding = decodeEmbedding(blob)

		score := cosineSimilarity(embedding, c.Embedding)
		if score < opts.MinScore {
			continue
		}
		results = append(results, webcite.SearchResult{Chunk: &c, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Stats returns aggregate statistics over the whole collection.
func (s *ChunkStore) Stats(ctx context.Context) (*webcite.CollectionStats, error) {
	var stats webcite.CollectionStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT source_url),
		       COUNT(DISTINCT domain),
		       COALESCE(SUM(LENGTH(content) + LENGTH(embedding)), 0)
		FROM chunks
	`).Scan(&stats.Documents, &stats.UniqueURLs, &stats.UniqueDomains, &stats.SizeBytes)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// encodeEmbedding serializes a vector as little-endian float32 bytes.
func encodeEmbedding(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeEmbedding deserializes a little-endian float32 byte blob.
func decodeEmbedding(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// cosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
