package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/formul8/sourcing/fs"
	sourcinghttp "github.com/formul8/sourcing/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := sourcinghttp.NewServer()
	server.Addr = fmt.Sprintf(":%d", c.Port)
	server.KnowledgeService = deps.Knowledge
	server.SupplierService = deps.Suppliers
	server.SnapshotService = deps.Snapshots
	server.Advisor = deps.Advisor

	// The source metrics endpoint reports on the seed registry. Serving
	// without one just disables that endpoint.
	registry, err := fs.LoadRegistry(c.SourcesFile)
	if err == nil {
		server.Registry = registry
	} else {
		fmt.Fprintf(deps.Stderr, "warning: seed registry %q not loaded: %v\n", c.SourcesFile, err)
	}

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer server.Close()

	fmt.Fprintf(deps.Stdout, "Sourcing agent listening on %s\n", server.URL())

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(deps.Stdout, "Shutting down")
	return server.Close()
}
