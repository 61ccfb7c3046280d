package mock

import "github.com/formul8/sourcing"

var _ sourcing.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sourcing.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sourcing.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sourcing.ExtractResult, error) {
	return e.ExtractFn(html)
}
