package main

import (
	"context"
	"io"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/scrape"
	"github.com/formul8/sourcing/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Suppliers sourcing.SupplierService
	Snapshots sourcing.SnapshotService
	Knowledge sourcing.KnowledgeService
	Sitemaps  sourcing.SitemapService
	Advisor   sourcing.Advisor
	Scraper   *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	KB      string `name:"kb" default:"rag/knowledge_base.ttl" env:"SOURCING_KB" help:"Path to the ontology Turtle file"`
	Verbose bool   `short:"v" help:"Log service operations to stderr"`

	Serve      ServeCmd      `cmd:"" help:"Run the HTTP API server"`
	Query      QueryCmd      `cmd:"" help:"Ask the sourcing advisor a question"`
	Scrape     ScrapeCmd     `cmd:"" help:"Scrape supplier sites from the seed registry"`
	Import     ImportCmd     `cmd:"" help:"Import seed registry entries as supplier records"`
	Suppliers  SuppliersCmd  `cmd:"" help:"List stored suppliers with assessment scores"`
	Categories CategoriesCmd `cmd:"" help:"List supplier categories from the knowledge base"`
	Standards  StandardsCmd  `cmd:"" help:"List quality standards from the knowledge base"`
	Strategies StrategiesCmd `cmd:"" help:"List sourcing strategies from the knowledge base"`
	Compliance ComplianceCmd `cmd:"" help:"List compliance requirements from the knowledge base"`
	Status     StatusCmd     `cmd:"" help:"Show agent status"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port        int    `short:"p" default:"5000" help:"Port to listen on"`
	SourcesFile string `default:"sources/sources.json" help:"Seed registry for the source metrics endpoint"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Question string `arg:"" help:"Natural language sourcing question"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	SourcesFile string `default:"sources/sources.json" help:"Seed registry file"`
	Concurrency int    `short:"c" name:"max-concurrent" default:"5" help:"Concurrent fetch limit"`
	DryRun      bool   `help:"Fetch and extract without persisting anything"`
	Deep        bool   `help:"Follow sitemaps to capture additional pages per supplier"`
	MaxPages    int    `default:"10" help:"Page cap per supplier for deep scrapes"`
	Output      string `short:"o" help:"Directory to write a JSON export of the scraped data"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	SourcesFile string `default:"sources/sources.json" help:"Seed registry file"`
}

// SuppliersCmd is the "suppliers" subcommand.
type SuppliersCmd struct {
	Category  string `help:"Filter by category"`
	State     string `help:"Filter by state"`
	Preferred bool   `help:"Only preferred suppliers"`
	Weights   string `help:"YAML file overriding assessment weights"`
	Limit     int    `default:"50" help:"Maximum suppliers to list"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct {
	Search string `short:"s" help:"Filter categories by label substring"`
}

// StandardsCmd is the "standards" subcommand.
type StandardsCmd struct {
	Search string `short:"s" help:"Filter standards by label substring"`
}

// StrategiesCmd is the "strategies" subcommand.
type StrategiesCmd struct{}

// ComplianceCmd is the "compliance" subcommand.
type ComplianceCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
