// Package readability extracts main content from supplier pages using
// go-readability. It serves as a fallback when trafilatura finds nothing
// useful on heavily templated marketing sites.
package readability

import (
	"strings"

	"github.com/formul8/sourcing"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sourcing.Extractor at compile time.
var _ sourcing.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*sourcing.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sourcing.Errorf(sourcing.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &sourcing.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
