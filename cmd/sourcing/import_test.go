package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/formul8/sourcing"
	main "github.com/formul8/sourcing/cmd/sourcing"
	"github.com/formul8/sourcing/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestRegistry(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"preferred_sources": [
			{"name": "GrowGeneration", "url": "growgeneration.com"}
		],
		"national_suppliers": {
			"testing": [
				{"name": "Steep Hill Labs", "url": "steephill.com"}
			]
		}
	}`), 0644))
	return path
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates suppliers from registry seeds", func(t *testing.T) {
		t.Parallel()

		var created []*sourcing.Supplier
		suppliers := &mock.SupplierService{
			CreateSupplierFn: func(_ context.Context, supplier *sourcing.Supplier) error {
				created = append(created, supplier)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Suppliers: suppliers,
		}

		cmd := &main.ImportCmd{SourcesFile: writeTestRegistry(t)}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, "GrowGeneration", created[0].Name)
		assert.Equal(t, "https://growgeneration.com", created[0].SourceURL)
		assert.True(t, created[0].Preferred)
		assert.Equal(t, sourcing.CategoryTesting, created[1].Category)
		assert.Contains(t, stdout.String(), "Imported 2 suppliers (0 already present)")
	})

	t.Run("skips suppliers that already exist", func(t *testing.T) {
		t.Parallel()

		suppliers := &mock.SupplierService{
			CreateSupplierFn: func(_ context.Context, supplier *sourcing.Supplier) error {
				if supplier.Name == "GrowGeneration" {
					return sourcing.Errorf(sourcing.ECONFLICT, "supplier already exists")
				}
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Suppliers: suppliers,
		}

		cmd := &main.ImportCmd{SourcesFile: writeTestRegistry(t)}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Imported 1 suppliers (1 already present)")
	})

	t.Run("fails for a missing registry file", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.ImportCmd{SourcesFile: filepath.Join(t.TempDir(), "missing.json")}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, sourcing.ENOTFOUND, sourcing.ErrorCode(err))
	})
}
