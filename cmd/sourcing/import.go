package main

import (
	"fmt"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/fs"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	registry, err := fs.LoadRegistry(c.SourcesFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sourcing.ErrorMessage(err))
		return err
	}

	seeds := registry.Flatten()
	if len(seeds) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources in registry")
		return nil
	}

	var imported, skipped int
	for _, seed := range seeds {
		supplier := &sourcing.Supplier{
			Name:        seed.Name,
			SourceURL:   seed.URL,
			Category:    seed.Category,
			State:       seed.State,
			LegalStatus: seed.LegalStatus,
			Preferred:   seed.Preferred,
			Location:    seed.Location,
			Products:    seed.Products,
			Services:    seed.Services,
		}

		if err := deps.Suppliers.CreateSupplier(deps.Ctx, supplier); err != nil {
			if sourcing.ErrorCode(err) == sourcing.ECONFLICT {
				skipped++
				continue
			}
			fmt.Fprintf(deps.Stderr, "error importing %s: %s\n", seed.URL, sourcing.ErrorMessage(err))
			return err
		}
		imported++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d suppliers (%d already present)\n", imported, skipped)
	return nil
}
