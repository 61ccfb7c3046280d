package main

import (
	"fmt"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/fs"
	"github.com/formul8/sourcing/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	registry, err := fs.LoadRegistry(c.SourcesFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	seeds := registry.Flatten()
	if len(seeds) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources in registry")
		return nil
	}

	deps.Scraper.Concurrency = c.Concurrency
	deps.Scraper.DryRun = c.DryRun
	deps.Scraper.Deep = c.Deep
	deps.Scraper.MaxPagesPerSite = c.MaxPages

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d sources\n", event.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", event.Completed, event.Total, scrape.TruncateURL(event.URL, 40))
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case scrape.ProgressFinished:
			fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
		}
	}

	result, err := deps.Scraper.ScrapeSources(deps.Ctx, seeds, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "Dry run: %d sources reachable, %d failed (%s, nothing saved)\n",
			result.Scraped, result.Failed, scrape.FormatBytes(result.Bytes))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d sources: %d created, %d updated, %d unchanged, %d failed (%s)\n",
		result.Scraped, result.Created, result.Updated, result.Unchanged, result.Failed,
		scrape.FormatBytes(result.Bytes))
	if c.Deep {
		fmt.Fprintf(deps.Stdout, "Captured %d additional pages\n", result.Pages)
	}

	if c.Output != "" {
		path, err := c.writeExport(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error exporting: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported to %s\n", path)
	}

	return nil
}

// writeExport dumps all stored suppliers and snapshots to a timestamped
// JSON file in the output directory.
func (c *ScrapeCmd) writeExport(deps *Dependencies) (string, error) {
	suppliers, err := deps.Suppliers.FindSuppliers(deps.Ctx, sourcing.SupplierFilter{})
	if err != nil {
		return "", err
	}
	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, sourcing.SnapshotFilter{})
	if err != nil {
		return "", err
	}

	return fs.WriteExport(c.Output, &fs.Export{
		Suppliers: suppliers,
		Snapshots: snapshots,
	})
}
