package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/mock"
	sourcingslog "github.com/formul8/sourcing/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := sourcingslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://greengrow.example.com")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://greengrow.example.com")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := sourcingslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://greengrow.example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})
}

func TestLoggingKnowledgeService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.KnowledgeService{
		SupplierCategoriesFn: func(ctx context.Context) ([]sourcing.SupplierCategory, error) {
			return []sourcing.SupplierCategory{{Label: "Genetics Supplier"}}, nil
		},
	}

	svc := sourcingslog.NewLoggingKnowledgeService(inner, logger)
	categories, err := svc.SupplierCategories(context.Background())

	require.NoError(t, err)
	assert.Len(t, categories, 1)
	output := buf.String()
	assert.Contains(t, output, "knowledge query")
	assert.Contains(t, output, "op=supplier_categories")
	assert.Contains(t, output, "count=1")
}

func TestLoggingSupplierService_CreateSupplier(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.SupplierService{
		CreateSupplierFn: func(ctx context.Context, supplier *sourcing.Supplier) error {
			supplier.ID = "sup-1"
			return nil
		},
	}

	svc := sourcingslog.NewLoggingSupplierService(inner, logger)
	supplier := &sourcing.Supplier{Name: "Green Grow Supply", SourceURL: "https://greengrow.example.com"}
	err := svc.CreateSupplier(context.Background(), supplier)

	require.NoError(t, err)
	assert.Equal(t, "sup-1", supplier.ID)
	output := buf.String()
	assert.Contains(t, output, "supplier create")
	assert.Contains(t, output, "name=\"Green Grow Supply\"")
}

func TestLoggingSitemapService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *sourcing.URLFilter) ([]string, error) {
			return []string{"https://a.example.com/products"}, nil
		},
	}

	svc := sourcingslog.NewLoggingSitemapService(inner, logger)
	urls, err := svc.DiscoverURLs(context.Background(), "https://a.example.com", nil)

	require.NoError(t, err)
	assert.Len(t, urls, 1)
	output := buf.String()
	assert.Contains(t, output, "sitemap discovery")
	assert.Contains(t, output, "count=1")
}
