package main

import (
	"fmt"
	"strings"

	"github.com/formul8/sourcing"
)

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	var categories []sourcing.SupplierCategory
	var err error
	if c.Search != "" {
		categories, err = deps.Knowledge.SearchCategories(deps.Ctx, c.Search)
	} else {
		categories, err = deps.Knowledge.SupplierCategories(deps.Ctx)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(deps.Stdout, "No supplier categories found")
		return nil
	}

	for _, category := range categories {
		fmt.Fprintln(deps.Stdout, category.Label)
		printList(deps, "products", category.Products)
		printList(deps, "certifications", category.Certifications)
		printList(deps, "services", category.Services)
	}
	return nil
}

// Run executes the standards command.
func (c *StandardsCmd) Run(deps *Dependencies) error {
	var standards []sourcing.QualityStandard
	var err error
	if c.Search != "" {
		standards, err = deps.Knowledge.SearchStandards(deps.Ctx, c.Search)
	} else {
		standards, err = deps.Knowledge.QualityStandards(deps.Ctx)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	if len(standards) == 0 {
		fmt.Fprintln(deps.Stdout, "No quality standards found")
		return nil
	}

	for _, standard := range standards {
		fmt.Fprintln(deps.Stdout, standard.Label)
		printList(deps, "criteria", standard.Criteria)
		printList(deps, "testing", standard.Testing)
	}
	return nil
}

// Run executes the strategies command.
func (c *StrategiesCmd) Run(deps *Dependencies) error {
	strategies, err := deps.Knowledge.SourcingStrategies(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	if len(strategies) == 0 {
		fmt.Fprintln(deps.Stdout, "No sourcing strategies found")
		return nil
	}

	for _, strategy := range strategies {
		fmt.Fprintln(deps.Stdout, strategy.Label)
		printList(deps, "advantages", strategy.Advantages)
		printList(deps, "challenges", strategy.Challenges)
	}
	return nil
}

// Run executes the compliance command.
func (c *ComplianceCmd) Run(deps *Dependencies) error {
	requirements, err := deps.Knowledge.ComplianceRequirements(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	if len(requirements) == 0 {
		fmt.Fprintln(deps.Stdout, "No compliance requirements found")
		return nil
	}

	for _, requirement := range requirements {
		fmt.Fprintln(deps.Stdout, requirement.Label)
		printList(deps, "regulations", requirement.Regulations)
		printList(deps, "documentation", requirement.Documentation)
	}
	return nil
}

func printList(deps *Dependencies, name string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(deps.Stdout, "  %s: %s\n", name, strings.Join(values, ", "))
}
