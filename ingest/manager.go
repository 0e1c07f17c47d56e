// Package ingest provides web page ingestion orchestration.
// It coordinates fetching, content extraction, chunking, embedding,
// and storage of web pages.
package ingest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/webcite"
	"github.com/fwojciec/webcite/bloom"
	"golang.org/x/sync/errgroup"
)

var _ webcite.IngestService = (*Manager)(nil)

// Manager orchestrates the ingestion of web pages into the chunk store.
type Manager struct {
	Fetcher     webcite.Fetcher
	Extractor   webcite.Extractor
	Converter   webcite.Converter
	Embedder    webcite.Embedder
	Store       webcite.ChunkStore
	RateLimiter webcite.DomainLimiter

	// ChunkSize and ChunkOverlap configure text splitting. Zero values
	// fall back to the package defaults.
	ChunkSize    int
	ChunkOverlap int

	// Concurrency bounds the number of parallel workers in IngestAll.
	Concurrency int

	// mu guards locks; each content address gets its own mutex so that
	// the existence check and the subsequent insert or replace are not
	// interleaved by a concurrent request for the same URL.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// addressLock returns the mutex for a content address, creating it on
// first use.
func (m *Manager) addressLock(address string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks == nil {
		m.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := m.locks[address]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[address] = lock
	}
	return lock
}

// Ingest fetches, extracts, chunks, embeds and stores the page at url.
// An already-indexed URL is skipped unless force is set, in which case its
// chunks are replaced atomically. Failures leave the store untouched.
func (m *Manager) Ingest(ctx context.Context, url string, force bool) (*webcite.IngestResult, error) {
	if url == "" {
		return nil, webcite.Errorf(webcite.EINVALID, "URL required")
	}

	address := webcite.ContentAddress(url)
	domain := webcite.Domain(url)

	lock := m.addressLock(address)
	lock.Lock()
	defer lock.Unlock()

	exists, err := m.Store.ExistsByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if exists && !force {
		return &webcite.IngestResult{
			Status:         webcite.IngestSkipped,
			SourceURL:      url,
			ContentAddress: address,
		}, nil
	}

	if m.RateLimiter != nil && domain != "" {
		if err := m.RateLimiter.Wait(ctx, domain); err != nil {
			return nil, err
		}
	}

	html, err := m.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	extracted, err := m.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	markdown, err := m.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	size := m.ChunkSize
	if size <= 0 {
		size = webcite.DefaultChunkSize
	}
	overlap := m.ChunkOverlap
	if overlap <= 0 {
		overlap = webcite.DefaultChunkOverlap
	}

	texts := webcite.SplitText(markdown, size, overlap)
	if len(texts) == 0 {
		return nil, webcite.Errorf(webcite.EINVALID, "no content extracted from %s", url)
	}

	embeddings, err := m.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, webcite.Errorf(webcite.EINTERNAL, "embedding count mismatch: %d texts, %d embeddings", len(texts), len(embeddings))
	}

	chunks := make([]*webcite.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &webcite.Chunk{
			SourceURL:      url,
			ContentAddress: address,
			Domain:         domain,
			Content:        text,
			Embedding:      embeddings[i],
		}
	}

	status := webcite.IngestIndexed
	if exists {
		if _, err := m.Store.ReplaceChunks(ctx, address, chunks); err != nil {
			return nil, err
		}
		status = webcite.IngestUpdated
	} else {
		if err := m.Store.CreateChunks(ctx, chunks); err != nil {
			return nil, err
		}
	}

	return &webcite.IngestResult{
		Status:         status,
		SourceURL:      url,
		ContentAddress: address,
		Chunks:         len(chunks),
	}, nil
}

// BulkResult holds the outcome of a bulk ingestion run.
type BulkResult struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// ProgressEvent reports progress during a bulk ingestion run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Result    *webcite.IngestResult
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting bulk ingestion progress.
type ProgressFunc func(event ProgressEvent)

// urlOutcome holds the outcome of processing a single URL.
type urlOutcome struct {
	url    string
	result *webcite.IngestResult
	err    error
}

// IngestAll ingests a batch of URLs with bounded concurrency. Duplicate
// URLs within the batch are processed once. Per-URL failures are counted
// rather than aborting the run; the progress callback, if provided,
// receives events as ingestion proceeds.
func (m *Manager) IngestAll(ctx context.Context, urls []string, force bool, progress ProgressFunc) (*BulkResult, error) {
	seen := bloom.NewFilter(uint(max(len(urls), 1)), 0.001)
	unique := make([]string, 0, len(urls))
	for _, url := range urls {
		if url == "" || seen.TestAndAdd(url) {
			continue
		}
		unique = append(unique, url)
	}

	total := len(unique)
	if total == 0 {
		return &BulkResult{}, nil
	}

	concurrency := m.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	outcomeCh := make(chan urlOutcome, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, url := range unique {
			url := url
			g.Go(func() error {
				result, err := m.Ingest(gctx, url, force)
				outcomeCh <- urlOutcome{url: url, result: result, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	var res BulkResult
	for outcome := range outcomeCh {
		completed.Add(1)

		if outcome.err != nil {
			res.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       outcome.url,
					Error:     outcome.err,
				})
			}
			continue
		}

		switch outcome.result.Status {
		case webcite.IngestIndexed:
			res.Indexed++
		case webcite.IngestUpdated:
			res.Updated++
		case webcite.IngestSkipped:
			res.Skipped++
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       outcome.url,
				Result:    outcome.result,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &res, ctx.Err()
}
