package mock

import (
	"context"

	"github.com/formul8/sourcing"
)

var _ sourcing.Advisor = (*Advisor)(nil)

// Advisor is a mock implementation of sourcing.Advisor.
type Advisor struct {
	AskFn func(ctx context.Context, question string) (*sourcing.Answer, error)
}

func (a *Advisor) Ask(ctx context.Context, question string) (*sourcing.Answer, error) {
	return a.AskFn(ctx, question)
}
