package mock

import (
	"context"

	"github.com/formul8/sourcing"
)

var _ sourcing.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sourcing.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *sourcing.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *sourcing.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
