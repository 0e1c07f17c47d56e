package webcite

import (
	"context"
)

// Default chunking parameters. Size bounds the length of a chunk; overlap
// is shared between consecutive chunks so that passages split across a
// chunk boundary remain retrievable from at least one chunk.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// IngestStatus is the outcome of an ingestion request.
type IngestStatus string

// Ingestion outcomes. A duplicate skip is a recognized idempotent outcome,
// not an error; failures surface as error returns.
const (
	IngestSkipped IngestStatus = "skipped"
	IngestIndexed IngestStatus = "indexed"
	IngestUpdated IngestStatus = "updated"
)

// IngestResult holds the outcome of ingesting a single URL.
type IngestResult struct {
	Status         IngestStatus `json:"status"`
	SourceURL      string       `json:"sourceUrl"`
	ContentAddress string       `json:"contentAddress"`
	Chunks         int          `json:"chunks"`
}

// WasIndexed reports whether the request wrote content to the store.
func (r *IngestResult) WasIndexed() bool {
	return r.Status == IngestIndexed || r.Status == IngestUpdated
}

// IngestService ingests web pages into the content store.
type IngestService interface {
	// Ingest fetches, chunks, embeds and stores the page at url.
	// If the URL is already indexed and force is false, it returns
	// IngestSkipped with no side effects. With force, prior chunks are
	// replaced, never merged.
	Ingest(ctx context.Context, url string, force bool) (*IngestResult, error)
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML at the URL. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML content into Markdown.
	Convert(html string) (string, error)
}

// DomainLimiter provides per-domain rate limiting for bulk ingestion.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers URLs from website sitemaps, used to feed bulk
// ingestion. It first checks robots.txt for sitemap directives, then falls
// back to /sitemap.xml; sitemap indexes are resolved recursively.
type SitemapService interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
