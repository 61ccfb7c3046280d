package main

import (
	"fmt"
	"strings"

	"github.com/formul8/sourcing"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	summary, err := deps.Knowledge.Summary(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	suppliers, err := deps.Suppliers.FindSuppliers(deps.Ctx, sourcing.SupplierFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Agent: sourcing-agent (operational)")
	fmt.Fprintf(deps.Stdout, "Knowledge base: %d categories, %d standards, %d strategies, %d compliance requirements (%d triples)\n",
		summary.SupplierCategories, summary.QualityStandards,
		summary.SourcingStrategies, summary.ComplianceRequirements,
		summary.TotalTriples)
	fmt.Fprintf(deps.Stdout, "Suppliers stored: %d\n", len(suppliers))
	fmt.Fprintf(deps.Stdout, "Capabilities: %s\n", strings.Join(sourcing.AgentCapabilities(), "; "))
	return nil
}
