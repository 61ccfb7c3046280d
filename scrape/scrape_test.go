package scrape_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/mock"
	"github.com/formul8/sourcing/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory supplier/snapshot store for scraper tests.
type memoryStore struct {
	mu        sync.Mutex
	suppliers []*sourcing.Supplier
	snapshots []*sourcing.Snapshot
	updates   int
}

func (m *memoryStore) supplierService() *mock.SupplierService {
	return &mock.SupplierService{
		CreateSupplierFn: func(ctx context.Context, supplier *sourcing.Supplier) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			supplier.ID = supplier.SourceURL
			m.suppliers = append(m.suppliers, supplier)
			return nil
		},
		FindSuppliersFn: func(ctx context.Context, filter sourcing.SupplierFilter) ([]*sourcing.Supplier, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			var out []*sourcing.Supplier
			for _, s := range m.suppliers {
				if filter.SourceURL != nil && s.SourceURL != *filter.SourceURL {
					continue
				}
				out = append(out, s)
			}
			return out, nil
		},
		UpdateSupplierFn: func(ctx context.Context, id string, upd sourcing.SupplierUpdate) (*sourcing.Supplier, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.updates++
			for _, s := range m.suppliers {
				if s.ID == id {
					if upd.Name != nil {
						s.Name = *upd.Name
					}
					return s, nil
				}
			}
			return nil, sourcing.Errorf(sourcing.ENOTFOUND, "supplier not found")
		},
	}
}

func (m *memoryStore) snapshotService() *mock.SnapshotService {
	return &mock.SnapshotService{
		CreateSnapshotFn: func(ctx context.Context, snapshot *sourcing.Snapshot) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.snapshots = append(m.snapshots, snapshot)
			return nil
		},
		FindSnapshotsFn: func(ctx context.Context, filter sourcing.SnapshotFilter) ([]*sourcing.Snapshot, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			var out []*sourcing.Snapshot
			for i := len(m.snapshots) - 1; i >= 0; i-- {
				s := m.snapshots[i]
				if filter.SupplierID != nil && s.SupplierID != *filter.SupplierID {
					continue
				}
				if filter.SourceURL != nil && s.SourceURL != *filter.SourceURL {
					continue
				}
				out = append(out, s)
				if filter.Limit > 0 && len(out) >= filter.Limit {
					break
				}
			}
			return out, nil
		},
	}
}

// newTestScraper wires a scraper with passthrough extraction mocks.
func newTestScraper(store *memoryStore, fetch func(ctx context.Context, url string) (string, error)) *scrape.Scraper {
	return &scrape.Scraper{
		Fetcher: &mock.Fetcher{FetchFn: fetch},
		Extractor: &mock.Extractor{ExtractFn: func(html string) (*sourcing.ExtractResult, error) {
			return &sourcing.ExtractResult{Title: "Page Title", ContentHTML: html}, nil
		}},
		Converter: &mock.Converter{ConvertFn: func(html string) (string, error) {
			return html, nil
		}},
		Profiles: &mock.ProfileExtractor{ExtractProfileFn: func(html string, seed sourcing.SeedSource) (*sourcing.Profile, error) {
			return &sourcing.Profile{Title: seed.Name}, nil
		}},
		Suppliers:   store.supplierService(),
		Snapshots:   store.snapshotService(),
		RetryDelays: []time.Duration{},
	}
}

func TestScraper_ScrapeSources(t *testing.T) {
	t.Parallel()

	t.Run("creates suppliers and snapshots for new seeds", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{}
		s := newTestScraper(store, func(ctx context.Context, url string) (string, error) {
			return "<p>content for " + url + "</p>", nil
		})

		seeds := []sourcing.SeedSource{
			{Name: "Green Grow Supply", URL: "greengrow.example.com", Category: sourcing.CategoryEquipment},
			{Name: "Budding Genetics", URL: "https://genetics.example.com", Category: sourcing.CategoryGenetics},
		}

		result, err := s.ScrapeSources(context.Background(), seeds, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Scraped)
		assert.Equal(t, 2, result.Created)
		assert.Zero(t, result.Failed)
		require.Len(t, store.suppliers, 2)
		require.Len(t, store.snapshots, 2)

		// URL normalization applied before persistence.
		urls := []string{store.suppliers[0].SourceURL, store.suppliers[1].SourceURL}
		assert.Contains(t, urls, "https://greengrow.example.com")
	})

	t.Run("updates existing suppliers instead of duplicating", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{
			suppliers: []*sourcing.Supplier{
				{ID: "https://greengrow.example.com", Name: "Old Name", SourceURL: "https://greengrow.example.com"},
			},
		}
		s := newTestScraper(store, func(ctx context.Context, url string) (string, error) {
			return "<p>content</p>", nil
		})

		result, err := s.ScrapeSources(context.Background(), []sourcing.SeedSource{
			{Name: "Green Grow Supply", URL: "greengrow.example.com"},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Updated)
		assert.Zero(t, result.Created)
		require.Len(t, store.suppliers, 1)
		assert.Equal(t, "Green Grow Supply", store.suppliers[0].Name)
	})

	t.Run("skips snapshots with unchanged content", func(t *testing.T) {
		t.Parallel()

		markdown := "<p>stable content</p>"
		store := &memoryStore{
			suppliers: []*sourcing.Supplier{
				{ID: "https://a.example.com", Name: "A", SourceURL: "https://a.example.com"},
			},
			snapshots: []*sourcing.Snapshot{
				{SupplierID: "https://a.example.com", SourceURL: "https://a.example.com", ContentHash: scrape.ComputeHash(markdown)},
			},
		}
		s := newTestScraper(store, func(ctx context.Context, url string) (string, error) {
			return markdown, nil
		})

		result, err := s.ScrapeSources(context.Background(), []sourcing.SeedSource{
			{Name: "A", URL: "a.example.com"},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Unchanged)
		assert.Len(t, store.snapshots, 1)
	})

	t.Run("counts failed seeds and reports progress", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{}
		s := newTestScraper(store, func(ctx context.Context, url string) (string, error) {
			if url == "https://down.example.com" {
				return "", sourcing.Errorf(sourcing.EUNAVAILABLE, "HTTP 503")
			}
			return "<p>ok</p>", nil
		})

		var mu sync.Mutex
		var failures []string
		progress := func(e scrape.ProgressEvent) {
			if e.Type == scrape.ProgressFailed {
				mu.Lock()
				failures = append(failures, e.URL)
				mu.Unlock()
			}
		}

		result, err := s.ScrapeSources(context.Background(), []sourcing.SeedSource{
			{Name: "Up", URL: "up.example.com"},
			{Name: "Down", URL: "down.example.com"},
		}, progress)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Scraped)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, []string{"down.example.com"}, failures)
	})

	t.Run("dry run persists nothing", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{}
		s := newTestScraper(store, func(ctx context.Context, url string) (string, error) {
			return "<p>content</p>", nil
		})
		s.DryRun = true

		result, err := s.ScrapeSources(context.Background(), []sourcing.SeedSource{
			{Name: "A", URL: "a.example.com"},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Scraped)
		assert.Positive(t, result.Bytes)
		assert.Empty(t, store.suppliers)
		assert.Empty(t, store.snapshots)
	})

	t.Run("deep scrape captures sitemap pages", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{}
		s := newTestScraper(store, func(ctx context.Context, url string) (string, error) {
			return "<p>content for " + url + "</p>", nil
		})
		s.Deep = true
		s.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *sourcing.URLFilter) ([]string, error) {
				return []string{
					"https://a.example.com/products",
					"https://a.example.com/products", // duplicate, deduped
					"https://a.example.com/contact",
				}, nil
			},
		}

		result, err := s.ScrapeSources(context.Background(), []sourcing.SeedSource{
			{Name: "A", URL: "a.example.com"},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Pages)
		// Landing page snapshot plus two deep pages.
		assert.Len(t, store.snapshots, 3)
	})
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("spaces requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewDomainLimiter(50)
		ctx := context.Background()

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, limiter.Wait(ctx, "a.example.com"))
		}
		// Two waits at 50 rps = at least ~40ms.
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("does not block across domains", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewDomainLimiter(1)
		ctx := context.Background()

		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "a.example.com"))
		require.NoError(t, limiter.Wait(ctx, "b.example.com"))
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := scrape.NewDomainLimiter(0.001)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		require.NoError(t, limiter.Wait(ctx, "a.example.com"))
		require.Error(t, limiter.Wait(ctx, "a.example.com"))
	})
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", sourcing.Errorf(sourcing.EUNAVAILABLE, "transient")
			}
			return "ok", nil
		}

		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://a.example.com", fetch, nil,
			[]time.Duration{0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		fetch := func(ctx context.Context, url string) (string, error) {
			return "", sourcing.Errorf(sourcing.EUNAVAILABLE, "down")
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://a.example.com", fetch, nil,
			[]time.Duration{0})
		require.Error(t, err)
		assert.Equal(t, sourcing.EUNAVAILABLE, sourcing.ErrorCode(err))
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://a.com", scrape.TruncateURL("https://a.com", 20))
	assert.Equal(t, "...example.com/very/long/path", scrape.TruncateURL("https://www.example.com/very/long/path", 29))
	assert.Equal(t, "", scrape.TruncateURL("https://a.com", 0))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", scrape.FormatBytes(512))
	assert.Equal(t, "1.5 KB", scrape.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", scrape.FormatBytes(2*1024*1024))
}
