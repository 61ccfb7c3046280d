package main

import (
	"fmt"
	"time"

	"github.com/formul8/sourcing"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	if deps.Advisor == nil {
		return sourcing.Errorf(sourcing.EUNAVAILABLE, "advisor not configured")
	}

	answer, err := deps.Advisor.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Response: %s\n", answer.Text)
	fmt.Fprintf(deps.Stdout, "Confidence: %.0f%%\n", answer.Confidence*100)
	fmt.Fprintf(deps.Stdout, "Response Time: %s\n", answer.Duration.Round(time.Millisecond))
	return nil
}
