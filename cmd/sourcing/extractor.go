package main

import (
	"github.com/formul8/sourcing"
)

// Ensure FallbackExtractor implements sourcing.Extractor at compile time.
var _ sourcing.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries a primary content extractor and falls back to a
// secondary one when the primary fails or finds no content. Supplier sites
// are heavily templated marketing pages, so no single extractor handles
// them all.
type FallbackExtractor struct {
	primary  sourcing.Extractor
	fallback sourcing.Extractor
}

// NewFallbackExtractor creates a new FallbackExtractor.
func NewFallbackExtractor(primary, fallback sourcing.Extractor) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, fallback: fallback}
}

// Extract processes raw HTML with the primary extractor, falling back to
// the secondary when the primary errors or yields empty content.
func (e *FallbackExtractor) Extract(html string) (*sourcing.ExtractResult, error) {
	result, err := e.primary.Extract(html)
	if err == nil && result.ContentHTML != "" {
		return result, nil
	}

	fallbackResult, fallbackErr := e.fallback.Extract(html)
	if fallbackErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, fallbackErr
	}
	return fallbackResult, nil
}
