package mock

import "github.com/formul8/sourcing"

var _ sourcing.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor is a mock implementation of sourcing.ProfileExtractor.
type ProfileExtractor struct {
	ExtractProfileFn func(html string, seed sourcing.SeedSource) (*sourcing.Profile, error)
}

func (e *ProfileExtractor) ExtractProfile(html string, seed sourcing.SeedSource) (*sourcing.Profile, error) {
	return e.ExtractProfileFn(html, seed)
}
