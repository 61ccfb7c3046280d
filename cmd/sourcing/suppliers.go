package main

import (
	"fmt"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/fs"
)

// Run executes the suppliers command.
func (c *SuppliersCmd) Run(deps *Dependencies) error {
	weights := sourcing.DefaultWeights()
	thresholds := sourcing.DefaultRiskThresholds()
	if c.Weights != "" {
		var err error
		weights, thresholds, err = fs.LoadAssessmentConfig(c.Weights)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
			return err
		}
	}

	filter := sourcing.SupplierFilter{Limit: c.Limit}
	if c.Category != "" {
		filter.Category = &c.Category
	}
	if c.State != "" {
		filter.State = &c.State
	}
	if c.Preferred {
		preferred := true
		filter.Preferred = &preferred
	}

	suppliers, err := deps.Suppliers.FindSuppliers(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	if len(suppliers) == 0 {
		fmt.Fprintln(deps.Stdout, "No suppliers found. Use 'sourcing import' or 'sourcing scrape' to add some.")
		return nil
	}

	for _, supplier := range suppliers {
		snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, sourcing.SnapshotFilter{
			SupplierID: &supplier.ID,
			Limit:      1,
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
			return err
		}
		var latest *sourcing.Snapshot
		if len(snapshots) > 0 {
			latest = snapshots[0]
		}

		assessment := sourcing.ScoreSupplier(supplier, latest, weights, thresholds)

		marker := " "
		if supplier.Preferred {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %-32s %-12s %-4s score=%.2f risk=%s\n",
			marker, supplier.Name, supplier.Category, supplier.State,
			assessment.Composite, assessment.RiskLevel)
	}

	return nil
}
