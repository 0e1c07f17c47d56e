package ingest_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/webcite"
	"github.com/fwojciec/webcite/ingest"
	"github.com/fwojciec/webcite/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineMocks wires a manager whose fetch/extract/convert/embed stages
// succeed with canned values, so tests only override what they exercise.
func pipelineMocks() (*mock.Fetcher, *mock.Extractor, *mock.Converter, *mock.Embedder) {
	fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
		return "<html><body><p>some page content</p></body></html>", nil
	}}
	extractor := &mock.Extractor{ExtractFn: func(html string) (*webcite.ExtractResult, error) {
		return &webcite.ExtractResult{Title: "Page", ContentHTML: "<p>some page content</p>"}, nil
	}}
	converter := &mock.Converter{ConvertFn: func(html string) (string, error) {
		return "some page content", nil
	}}
	embedder := &mock.Embedder{EmbedBatchFn: func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, 0, 0}
		}
		return out, nil
	}}
	return fetcher, extractor, converter, embedder
}

func TestManager_Ingest(t *testing.T) {
	t.Parallel()

	t.Run("indexes a new URL", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, converter, embedder := pipelineMocks()

		var created []*webcite.Chunk
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return false, nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				created = chunks
				return nil
			},
		}

		m := &ingest.Manager{
			Fetcher:   fetcher,
			Extractor: extractor,
			Converter: converter,
			Embedder:  embedder,
			Store:     store,
		}

		result, err := m.Ingest(context.Background(), "https://example.com/page", false)

		require.NoError(t, err)
		assert.Equal(t, webcite.IngestIndexed, result.Status)
		assert.Equal(t, "https://example.com/page", result.SourceURL)
		assert.Equal(t, webcite.ContentAddress("https://example.com/page"), result.ContentAddress)
		assert.Equal(t, len(created), result.Chunks)

		require.NotEmpty(t, created)
		for _, c := range created {
			assert.Equal(t, "https://example.com/page", c.SourceURL)
			assert.Equal(t, result.ContentAddress, c.ContentAddress)
			assert.Equal(t, "example.com", c.Domain)
			assert.NotEmpty(t, c.Embedding)
		}
	})

	t.Run("skips an already indexed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			t.Fatal("fetch should not be called")
			return "", nil
		}}
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return true, nil
			},
		}

		m := &ingest.Manager{Fetcher: fetcher, Store: store}

		result, err := m.Ingest(context.Background(), "https://example.com/page", false)

		require.NoError(t, err)
		assert.Equal(t, webcite.IngestSkipped, result.Status)
		assert.Zero(t, result.Chunks)
	})

	t.Run("force replaces prior chunks", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, converter, embedder := pipelineMocks()

		var replacedAddress string
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return true, nil
			},
			ReplaceChunksFn: func(ctx context.Context, address string, chunks []*webcite.Chunk) (int, error) {
				replacedAddress = address
				return 3, nil
			},
		}

		m := &ingest.Manager{
			Fetcher:   fetcher,
			Extractor: extractor,
			Converter: converter,
			Embedder:  embedder,
			Store:     store,
		}

		result, err := m.Ingest(context.Background(), "https://example.com/page", true)

		require.NoError(t, err)
		assert.Equal(t, webcite.IngestUpdated, result.Status)
		assert.Equal(t, result.ContentAddress, replacedAddress)
	})

	t.Run("force on an unindexed URL indexes it", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, converter, embedder := pipelineMocks()

		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return false, nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				return nil
			},
		}

		m := &ingest.Manager{
			Fetcher:   fetcher,
			Extractor: extractor,
			Converter: converter,
			Embedder:  embedder,
			Store:     store,
		}

		result, err := m.Ingest(context.Background(), "https://example.com/page", true)

		require.NoError(t, err)
		assert.Equal(t, webcite.IngestIndexed, result.Status)
	})

	t.Run("fetch failure leaves store untouched", func(t *testing.T) {
		t.Parallel()

		fetchErr := webcite.Errorf(webcite.EUNAVAILABLE, "fetch failed")
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", fetchErr
		}}
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return false, nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				t.Fatal("store should not be written")
				return nil
			},
		}

		m := &ingest.Manager{Fetcher: fetcher, Store: store}

		_, err := m.Ingest(context.Background(), "https://example.com/page", false)
		require.ErrorIs(t, err, fetchErr)
	})

	t.Run("empty extracted content is invalid", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, _, embedder := pipelineMocks()
		converter := &mock.Converter{ConvertFn: func(html string) (string, error) {
			return "   ", nil
		}}
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return false, nil
			},
		}

		m := &ingest.Manager{
			Fetcher:   fetcher,
			Extractor: extractor,
			Converter: converter,
			Embedder:  embedder,
			Store:     store,
		}

		_, err := m.Ingest(context.Background(), "https://example.com/empty", false)
		require.Error(t, err)
		assert.Equal(t, webcite.EINVALID, webcite.ErrorCode(err))
	})

	t.Run("embedding count mismatch is internal", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, converter, _ := pipelineMocks()
		embedder := &mock.Embedder{EmbedBatchFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, nil
		}}
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return false, nil
			},
		}

		m := &ingest.Manager{
			Fetcher:   fetcher,
			Extractor: extractor,
			Converter: converter,
			Embedder:  embedder,
			Store:     store,
		}

		_, err := m.Ingest(context.Background(), "https://example.com/page", false)
		require.Error(t, err)
		assert.Equal(t, webcite.EINTERNAL, webcite.ErrorCode(err))
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		t.Parallel()

		m := &ingest.Manager{}
		_, err := m.Ingest(context.Background(), "", false)

		require.Error(t, err)
		assert.Equal(t, webcite.EINVALID, webcite.ErrorCode(err))
	})

	t.Run("waits on the domain limiter before fetching", func(t *testing.T) {
		t.Parallel()

		var waited string
		limiter := &mock.DomainLimiter{WaitFn: func(ctx context.Context, domain string) error {
			waited = domain
			return nil
		}}

		fetcher, extractor, converter, embedder := pipelineMocks()
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return false, nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				return nil
			},
		}

		m := &ingest.Manager{
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Embedder:    embedder,
			Store:       store,
			RateLimiter: limiter,
		}

		_, err := m.Ingest(context.Background(), "https://example.com/page", false)
		require.NoError(t, err)
		assert.Equal(t, "example.com", waited)
	})

	t.Run("concurrent requests for one URL index exactly once", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, converter, embedder := pipelineMocks()

		var mu sync.Mutex
		stored := false
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				mu.Lock()
				defer mu.Unlock()
				return stored, nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				mu.Lock()
				defer mu.Unlock()
				if stored {
					return webcite.Errorf(webcite.ECONFLICT, "already stored")
				}
				stored = true
				return nil
			},
		}

		m := &ingest.Manager{
			Fetcher:   fetcher,
			Extractor: extractor,
			Converter: converter,
			Embedder:  embedder,
			Store:     store,
		}

		const workers = 8
		results := make([]*webcite.IngestResult, workers)
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = m.Ingest(context.Background(), "https://example.com/page", false)
			}(i)
		}
		wg.Wait()

		var indexed, skipped int
		for i, r := range results {
			require.NoError(t, errs[i])
			switch r.Status {
			case webcite.IngestIndexed:
				indexed++
			case webcite.IngestSkipped:
				skipped++
			}
		}
		assert.Equal(t, 1, indexed)
		assert.Equal(t, workers-1, skipped)
	})
}

func TestManager_IngestAll(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates URLs and aggregates outcomes", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, converter, embedder := pipelineMocks()

		var mu sync.Mutex
		stored := map[string]bool{}
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				mu.Lock()
				defer mu.Unlock()
				return stored[address], nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				mu.Lock()
				defer mu.Unlock()
				stored[chunks[0].ContentAddress] = true
				return nil
			},
		}

		m := &ingest.Manager{
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Embedder:    embedder,
			Store:       store,
			Concurrency: 4,
		}

		urls := []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/a", // duplicate
			"https://example.com/c",
		}

		result, err := m.IngestAll(context.Background(), urls, false, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Indexed)
		assert.Zero(t, result.Failed)
		assert.Len(t, stored, 3)
	})

	t.Run("per-URL failures do not abort the run", func(t *testing.T) {
		t.Parallel()

		_, extractor, converter, embedder := pipelineMocks()
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://example.com/bad" {
				return "", errors.New("boom")
			}
			return "<html></html>", nil
		}}

		var mu sync.Mutex
		stored := map[string]bool{}
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				mu.Lock()
				defer mu.Unlock()
				return stored[address], nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				mu.Lock()
				defer mu.Unlock()
				stored[chunks[0].ContentAddress] = true
				return nil
			},
		}

		m := &ingest.Manager{
			Fetcher:   fetcher,
			Extractor: extractor,
			Converter: converter,
			Embedder:  embedder,
			Store:     store,
		}

		result, err := m.IngestAll(context.Background(), []string{
			"https://example.com/good",
			"https://example.com/bad",
		}, false, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Indexed)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		fetcher, extractor, converter, embedder := pipelineMocks()
		store := &mock.ChunkStore{
			ExistsByAddressFn: func(ctx context.Context, address string) (bool, error) {
				return false, nil
			},
			CreateChunksFn: func(ctx context.Context, chunks []*webcite.Chunk) error {
				return nil
			},
		}

		m := &ingest.Manager{
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Embedder:    embedder,
			Store:       store,
			Concurrency: 1,
		}

		var events []ingest.ProgressEvent
		_, err := m.IngestAll(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
		}, false, func(event ingest.ProgressEvent) {
			events = append(events, event)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, ingest.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, ingest.ProgressCompleted, events[1].Type)
		assert.Equal(t, ingest.ProgressCompleted, events[2].Type)
		assert.Equal(t, ingest.ProgressFinished, events[3].Type)
	})

	t.Run("empty URL list is a no-op", func(t *testing.T) {
		t.Parallel()

		m := &ingest.Manager{}
		result, err := m.IngestAll(context.Background(), nil, false, nil)

		require.NoError(t, err)
		assert.Zero(t, result.Indexed)
		assert.Zero(t, result.Failed)
	})
}
