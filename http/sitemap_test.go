package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/formul8/sourcing"
	sourcinghttp "github.com/formul8/sourcing/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers URLs from robots.txt sitemap directive", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("User-agent: *\nSitemap: " + srv.URL + "/sitemap.xml\n"))
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
<url><loc>` + srv.URL + `/products</loc></url>
<url><loc>` + srv.URL + `/contact</loc></url>
</urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := sourcinghttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/products", srv.URL + "/contact"}, urls)
	})

	t.Run("falls back to sitemap.xml when robots.txt is missing", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<urlset><url><loc>` + srv.URL + `/about</loc></url></urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := sourcinghttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/about"}, urls)
	})

	t.Run("resolves sitemap indexes recursively", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<sitemapindex>
<sitemap><loc>` + srv.URL + `/sitemap-pages.xml</loc></sitemap>
</sitemapindex>`))
		})
		mux.HandleFunc("/sitemap-pages.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<urlset><url><loc>` + srv.URL + `/products</loc></url></urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := sourcinghttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/products"}, urls)
	})

	t.Run("applies URL filter", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<urlset>
<url><loc>` + srv.URL + `/products</loc></url>
<url><loc>` + srv.URL + `/blog/post-1</loc></url>
</urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		filter := &sourcing.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`/blog/`)}}

		s := sourcinghttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/products"}, urls)
	})

	t.Run("returns empty slice when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := sourcinghttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}
