package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webcite"
	"github.com/fwojciec/webcite/answer"
	"github.com/fwojciec/webcite/gemini"
	"github.com/fwojciec/webcite/goquery"
	"github.com/fwojciec/webcite/htmltomarkdown"
	webhttp "github.com/fwojciec/webcite/http"
	"github.com/fwojciec/webcite/ingest"
	webslog "github.com/fwojciec/webcite/slog"
	"github.com/fwojciec/webcite/sqlite"
	"github.com/fwojciec/webcite/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Chunk store for end-to-end testing.
	ChunkStore webcite.ChunkStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webcite"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webcite --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WEBCITE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ChunkStore = sqlite.NewChunkStore(m.DB)
	deps.DB = m.DB
	deps.Chunks = m.ChunkStore

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// The index and ask commands call the Gemini API; remove and stats
	// only touch the local database.
	if cmd == "index" {
		client, err := geminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		extractor := &goquery.FallbackExtractor{
			Primary:  trafilatura.NewExtractor(),
			Fallback: goquery.NewExtractor(),
		}

		manager := &ingest.Manager{
			Fetcher:      webhttp.NewFetcher(),
			Extractor:    extractor,
			Converter:    htmltomarkdown.NewConverter(),
			Embedder:     gemini.NewEmbedder(client, gemini.DefaultEmbeddingModel),
			Store:        m.ChunkStore,
			RateLimiter:  ingest.NewDomainLimiter(cli.Index.RPS),
			Concurrency:  cli.Index.Concurrency,
			ChunkSize:    cli.Index.ChunkSize,
			ChunkOverlap: cli.Index.ChunkOverlap,
		}

		deps.Manager = manager
		deps.Ingester = webslog.NewLoggingIngestService(manager, logger)
		deps.Sitemaps = webhttp.NewSitemapService(nil)
	}

	if cmd == "ask" {
		client, err := geminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		svc := &answer.Service{
			Generator: gemini.NewGenerator(client, gemini.DefaultModel),
			Embedder:  gemini.NewEmbedder(client, gemini.DefaultEmbeddingModel),
			Store:     m.ChunkStore,
			Limit:     cli.Ask.TopK,
			MinScore:  cli.Ask.MinScore,
		}

		deps.Answerer = webslog.NewLoggingAnswerService(svc, logger)
	}

	return kongCtx.Run(deps)
}

// geminiClient creates a Gemini API client from the GEMINI_API_KEY
// environment variable.
func geminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("WEBCITE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "webcite.db"
	}
	dir := filepath.Join(home, ".webcite")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "webcite.db")
}
