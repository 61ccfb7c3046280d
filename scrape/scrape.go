// Package scrape orchestrates supplier discovery runs. It coordinates
// fetching, profile extraction, content conversion, and storage for every
// seed in the registry.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency matches the agent's --max-concurrent default.
const DefaultConcurrency = 5

// Deep scrape limits.
const (
	// deepExpectedURLs sizes the Bloom filter used to dedupe discovered pages.
	deepExpectedURLs = 10000
	// deepFalsePositiveRate is the acceptable false positive rate for dedup.
	deepFalsePositiveRate = 0.01
	// DefaultMaxPagesPerSite caps sitemap-discovered pages per supplier.
	DefaultMaxPagesPerSite = 10
)

// Scraper orchestrates scraping supplier sites from registry seeds.
type Scraper struct {
	Fetcher     sourcing.Fetcher
	Extractor   sourcing.Extractor
	Converter   sourcing.Converter
	Profiles    sourcing.ProfileExtractor
	Suppliers   sourcing.SupplierService
	Snapshots   sourcing.SnapshotService
	RateLimiter sourcing.DomainLimiter

	// Sitemaps enables deep scrapes. When set and Deep is true, each
	// supplier's sitemap is used to discover additional pages.
	Sitemaps sourcing.SitemapService

	// PageFilter narrows which sitemap-discovered pages are fetched
	// during deep scrapes.
	PageFilter *sourcing.URLFilter

	Concurrency     int
	RetryDelays     []time.Duration
	Deep            bool
	MaxPagesPerSite int

	// DryRun fetches and extracts but persists nothing.
	DryRun bool
}

// Result holds the outcome of a scrape run.
type Result struct {
	Scraped   int // seeds fully processed
	Failed    int // seeds that errored
	Unchanged int // seeds whose content hash matched the stored snapshot
	Created   int // supplier records created
	Updated   int // supplier records updated
	Pages     int // extra pages captured by deep scrapes
	Bytes     int // markdown bytes captured
}

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
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

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// seedResult holds the outcome of processing a single seed.
type seedResult struct {
	seed      sourcing.SeedSource
	profile   *sourcing.Profile
	title     string
	markdown  string
	hash      string
	deepPages []deepPage
	err       error
}

// deepPage is one extra page captured during a deep scrape.
type deepPage struct {
	url      string
	title    string
	markdown string
	hash     string
}

// ScrapeSources processes every seed concurrently, bounded by Concurrency,
// and persists supplier records and snapshots. The progress callback, if
// provided, receives events as the run proceeds.
func (s *Scraper) ScrapeSources(ctx context.Context, seeds []sourcing.SeedSource, progress ProgressFunc) (*Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(seeds)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan seedResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, seed := range seeds {
			seed := seed
			g.Go(func() error {
				resultCh <- s.processSeed(gctx, seed)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result Result
	var processed []seedResult
	for r := range resultCh {
		completed.Add(1)

		if r.err != nil {
			result.Failed++
			pagesScraped.WithLabelValues("failed").Inc()
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       r.seed.URL,
					Error:     r.err,
				})
			}
			continue
		}

		pagesScraped.WithLabelValues("scraped").Inc()
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       r.seed.URL,
			})
		}
		processed = append(processed, r)
	}

	// Persist sequentially; SQLite allows only one writer.
	for _, r := range processed {
		if err := s.persist(ctx, r, &result); err != nil {
			result.Failed++
			continue
		}
		result.Scraped++
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// processSeed fetches and processes a single seed URL.
func (s *Scraper) processSeed(ctx context.Context, seed sourcing.SeedSource) seedResult {
	result := seedResult{seed: seed}

	pageURL := sourcing.NormalizeURL(seed.URL)
	if pageURL == "" {
		result.err = sourcing.Errorf(sourcing.EINVALID, "seed %q has no URL", seed.Name)
		return result
	}

	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		result.err = fmt.Errorf("fetch %s: %w", pageURL, err)
		return result
	}

	profile, err := s.Profiles.ExtractProfile(html, seed)
	if err != nil {
		result.err = fmt.Errorf("profile %s: %w", pageURL, err)
		return result
	}
	result.profile = profile

	extracted, err := s.Extractor.Extract(html)
	if err != nil {
		result.err = fmt.Errorf("extract %s: %w", pageURL, err)
		return result
	}

	markdown, err := s.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		result.err = fmt.Errorf("convert %s: %w", pageURL, err)
		return result
	}

	result.title = extracted.Title
	result.markdown = markdown
	result.hash = ComputeHash(markdown)

	if s.Deep && s.Sitemaps != nil {
		result.deepPages = s.scrapeDeepPages(ctx, pageURL)
	}

	return result
}

// scrapeDeepPages discovers and captures extra pages for one supplier
// site. Discovery failures are silent; the landing page capture already
// succeeded and deep pages are best effort.
func (s *Scraper) scrapeDeepPages(ctx context.Context, baseURL string) []deepPage {
	urls, err := s.Sitemaps.DiscoverURLs(ctx, baseURL, s.PageFilter)
	if err != nil || len(urls) == 0 {
		return nil
	}

	maxPages := s.MaxPagesPerSite
	if maxPages <= 0 {
		maxPages = DefaultMaxPagesPerSite
	}

	seen := bloom.NewFilter(deepExpectedURLs, deepFalsePositiveRate)
	seen.Add(baseURL)

	var pages []deepPage
	for _, u := range urls {
		if len(pages) >= maxPages {
			break
		}
		if seen.Test(u) {
			continue
		}
		seen.Add(u)

		html, err := s.fetch(ctx, u)
		if err != nil {
			continue
		}
		extracted, err := s.Extractor.Extract(html)
		if err != nil {
			continue
		}
		markdown, err := s.Converter.Convert(extracted.ContentHTML)
		if err != nil {
			continue
		}

		pages = append(pages, deepPage{
			url:      u,
			title:    extracted.Title,
			markdown: markdown,
			hash:     ComputeHash(markdown),
		})
	}

	return pages
}

// fetch rate-limits by domain and retries transient failures.
func (s *Scraper) fetch(ctx context.Context, pageURL string) (string, error) {
	if s.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", sourcing.Errorf(sourcing.EINVALID, "invalid URL %q", pageURL)
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, nil, delays)
}

// persist upserts the supplier record and stores new snapshots.
func (s *Scraper) persist(ctx context.Context, r seedResult, result *Result) error {
	if s.DryRun {
		result.Bytes += len(r.markdown)
		result.Pages += len(r.deepPages)
		return nil
	}

	supplier, err := s.upsertSupplier(ctx, r, result)
	if err != nil {
		return err
	}

	unchanged, err := s.storeSnapshot(ctx, supplier.ID, r.seed.URL, r.title, r.profile.Description, r.markdown, r.hash)
	if err != nil {
		return err
	}
	if unchanged {
		result.Unchanged++
	} else {
		result.Bytes += len(r.markdown)
	}

	for _, page := range r.deepPages {
		pageUnchanged, err := s.storeSnapshot(ctx, supplier.ID, page.url, page.title, "", page.markdown, page.hash)
		if err != nil || pageUnchanged {
			continue
		}
		result.Pages++
		result.Bytes += len(page.markdown)
	}

	return nil
}

// upsertSupplier creates or refreshes the supplier record keyed by its
// normalized source URL.
func (s *Scraper) upsertSupplier(ctx context.Context, r seedResult, result *Result) (*sourcing.Supplier, error) {
	sourceURL := sourcing.NormalizeURL(r.seed.URL)

	existing, err := s.Suppliers.FindSuppliers(ctx, sourcing.SupplierFilter{SourceURL: &sourceURL, Limit: 1})
	if err != nil {
		return nil, err
	}

	name := r.seed.Name
	if name == "" {
		name = r.profile.Title
	}

	if len(existing) > 0 {
		upd := sourcing.SupplierUpdate{
			Name:    &name,
			Contact: &r.profile.Contact,
		}
		if r.profile.Location != "" {
			upd.Location = &r.profile.Location
		}
		if len(r.profile.Products) > 0 {
			upd.Products = &r.profile.Products
		}
		if len(r.profile.Services) > 0 {
			upd.Services = &r.profile.Services
		}
		if len(r.profile.Certifications) > 0 {
			upd.Certifications = &r.profile.Certifications
		}

		supplier, err := s.Suppliers.UpdateSupplier(ctx, existing[0].ID, upd)
		if err != nil {
			return nil, err
		}
		result.Updated++
		suppliersPersisted.WithLabelValues("updated").Inc()
		return supplier, nil
	}

	supplier := &sourcing.Supplier{
		Name:           name,
		SourceURL:      sourceURL,
		Category:       r.seed.Category,
		State:          r.seed.State,
		LegalStatus:    r.seed.LegalStatus,
		Preferred:      r.seed.Preferred,
		Location:       r.profile.Location,
		Products:       r.profile.Products,
		Services:       r.profile.Services,
		Certifications: r.profile.Certifications,
		Contact:        r.profile.Contact,
	}
	if err := s.Suppliers.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	result.Created++
	suppliersPersisted.WithLabelValues("created").Inc()
	return supplier, nil
}

// storeSnapshot saves a snapshot unless the latest stored snapshot for the
// URL already carries the same content hash. Returns true if unchanged.
func (s *Scraper) storeSnapshot(ctx context.Context, supplierID, pageURL, title, description, markdown, hash string) (bool, error) {
	normalized := sourcing.NormalizeURL(pageURL)

	latest, err := s.Snapshots.FindSnapshots(ctx, sourcing.SnapshotFilter{
		SupplierID: &supplierID,
		SourceURL:  &normalized,
		Limit:      1,
	})
	if err != nil {
		return false, err
	}
	if len(latest) > 0 && latest[0].ContentHash == hash {
		return true, nil
	}

	return false, s.Snapshots.CreateSnapshot(ctx, &sourcing.Snapshot{
		SupplierID:  supplierID,
		SourceURL:   normalized,
		Title:       title,
		Description: description,
		Content:     markdown,
		ContentHash: hash,
	})
}

// ComputeHash computes a content hash using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
