package mock

import "github.com/formul8/sourcing"

var _ sourcing.Converter = (*Converter)(nil)

// Converter is a mock implementation of sourcing.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
