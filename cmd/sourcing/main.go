package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/gemini"
	"github.com/formul8/sourcing/goquery"
	"github.com/formul8/sourcing/htmltomarkdown"
	sourcinghttp "github.com/formul8/sourcing/http"
	"github.com/formul8/sourcing/readability"
	"github.com/formul8/sourcing/scrape"
	sourcingslog "github.com/formul8/sourcing/slog"
	"github.com/formul8/sourcing/sqlite"
	"github.com/formul8/sourcing/trafilatura"
	"github.com/formul8/sourcing/turtle"
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

	// Services for end-to-end testing.
	SupplierService sourcing.SupplierService
	SnapshotService sourcing.SnapshotService
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
		kong.Name("sourcing"),
		kong.Description("Cannabis industry supplier discovery and evaluation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sourcing --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SOURCING_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire core services into dependencies
	m.SupplierService = sqlite.NewSupplierService(m.DB)
	m.SnapshotService = sqlite.NewSnapshotService(m.DB)
	deps.DB = m.DB
	deps.Suppliers = sourcingslog.NewLoggingSupplierService(m.SupplierService, logger)
	deps.Snapshots = m.SnapshotService

	// Load the ontology. A missing file yields an empty knowledge base so
	// supplier commands still work without it.
	kb, err := turtle.Load(cli.KB)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base at %q: %w", cli.KB, err)
	}
	if _, statErr := os.Stat(cli.KB); os.IsNotExist(statErr) {
		fmt.Fprintf(stderr, "warning: knowledge base %q not found, starting empty\n", cli.KB)
	}
	deps.Knowledge = sourcingslog.NewLoggingKnowledgeService(kb, logger)
	deps.Sitemaps = sourcingslog.NewLoggingSitemapService(sourcinghttp.NewSitemapService(nil), logger)

	if cmd == "scrape" {
		fetcher := sourcinghttp.NewFetcher()
		defer fetcher.Close()

		deps.Scraper = &scrape.Scraper{
			Fetcher:     sourcingslog.NewLoggingFetcher(fetcher, logger),
			Extractor:   NewFallbackExtractor(trafilatura.NewExtractor(), readability.NewExtractor()),
			Converter:   htmltomarkdown.NewConverter(),
			Profiles:    goquery.NewExtractor(),
			Suppliers:   deps.Suppliers,
			Snapshots:   deps.Snapshots,
			RateLimiter: scrape.NewDomainLimiter(1.0),
			Sitemaps:    deps.Sitemaps,
		}
	}

	if cmd == "query" || cmd == "serve" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			// The server degrades gracefully; query cannot.
			if cmd == "query" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}
			fmt.Fprintln(stderr, "warning: GEMINI_API_KEY not set, query endpoint disabled")
		} else {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			deps.Advisor = gemini.NewAdvisor(client, deps.Knowledge, deps.Snapshots)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SOURCING_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sourcing.db"
	}
	dir := filepath.Join(home, ".sourcing")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sourcing.db")
}
