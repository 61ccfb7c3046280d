package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	t.Parallel()

	t.Run("loads and parses registry file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sources.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"preferred_sources": [
				{"name": "GrowGeneration", "url": "growgeneration.com"}
			],
			"metadata": {"last_updated": "2025-01-15"}
		}`), 0644))

		reg, err := fs.LoadRegistry(path)
		require.NoError(t, err)
		require.Len(t, reg.PreferredSources, 1)
		assert.Equal(t, "GrowGeneration", reg.PreferredSources[0].Name)
		assert.Equal(t, "2025-01-15", reg.Metadata.LastUpdated)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Equal(t, sourcing.ENOTFOUND, sourcing.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sources.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := fs.LoadRegistry(path)
		require.Error(t, err)
		assert.Equal(t, sourcing.EINVALID, sourcing.ErrorCode(err))
	})
}

func TestWriteExport(t *testing.T) {
	t.Parallel()

	t.Run("writes timestamped file and reads back", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		scrapedAt := time.Date(2025, 8, 20, 14, 30, 0, 0, time.UTC)

		path, err := fs.WriteExport(dir, &fs.Export{
			ScrapedAt: scrapedAt,
			Suppliers: []*sourcing.Supplier{{Name: "Green Grow Supply", SourceURL: "https://a.example.com"}},
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "scraped_data_20250820_143000.json"), path)

		export, err := fs.ReadExport(path)
		require.NoError(t, err)
		require.Len(t, export.Suppliers, 1)
		assert.Equal(t, "Green Grow Supply", export.Suppliers[0].Name)
		assert.True(t, export.ScrapedAt.Equal(scrapedAt))
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := fs.WriteExport(dir, &fs.Export{})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.NotContains(t, entries[0].Name(), ".tmp")
	})
}

func TestLoadAssessmentConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		weights, thresholds, err := fs.LoadAssessmentConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, sourcing.DefaultWeights(), weights)
		assert.Equal(t, sourcing.DefaultRiskThresholds(), thresholds)
	})

	t.Run("loads custom weights and thresholds", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "assessment.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
weights:
  quality: 0.4
  compliance: 0.3
  reliability: 0.1
  cost: 0.1
  service: 0.1
risk_thresholds:
  high: 0.8
  medium: 0.5
  low: 0.3
`), 0644))

		weights, thresholds, err := fs.LoadAssessmentConfig(path)
		require.NoError(t, err)
		assert.InEpsilon(t, 0.4, weights.Quality, 1e-9)
		assert.InEpsilon(t, 0.8, thresholds.High, 1e-9)
	})

	t.Run("rejects weights that do not sum to 1", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "assessment.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
weights:
  quality: 0.9
  compliance: 0.9
  reliability: 0.1
  cost: 0.1
  service: 0.1
`), 0644))

		_, _, err := fs.LoadAssessmentConfig(path)
		require.Error(t, err)
		assert.Equal(t, sourcing.EINVALID, sourcing.ErrorCode(err))
	})
}
