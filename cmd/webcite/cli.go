package main

import (
	"context"
	"io"

	"github.com/fwojciec/webcite"
	"github.com/fwojciec/webcite/ingest"
	"github.com/fwojciec/webcite/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Chunks   webcite.ChunkStore
	Ingester webcite.IngestService
	Manager  *ingest.Manager
	Answerer webcite.AnswerService
	Sitemaps webcite.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging to stderr"`

	Index  IndexCmd  `cmd:"" help:"Index web pages for question answering"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about indexed content"`
	Remove RemoveCmd `cmd:"" help:"Remove an indexed page"`
	Stats  StatsCmd  `cmd:"" help:"Show collection statistics"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	URLs         []string `arg:"" optional:"" help:"URLs to index"`
	Sitemap      string   `help:"Discover URLs from a site's sitemap"`
	Force        bool     `short:"f" help:"Re-index already indexed URLs"`
	Concurrency  int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS          float64  `name:"rps" default:"1" help:"Per-domain requests per second"`
	ChunkSize    int      `default:"1000" help:"Chunk size in characters"`
	ChunkOverlap int      `default:"200" help:"Overlap between consecutive chunks"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string  `arg:"" help:"Question to ask"`
	History  string  `help:"Path to a JSON file with prior conversation turns"`
	TopK     int     `default:"5" help:"Number of chunks to retrieve"`
	MinScore float32 `default:"0.6" help:"Minimum similarity score for retrieval"`
}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	URL   string `arg:"" help:"URL to remove"`
	Force bool   `help:"Confirm removal"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
