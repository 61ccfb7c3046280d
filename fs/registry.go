// Package fs handles the sourcing agent's files on disk: the seed
// registry, assessment configuration, and scraped data exports.
package fs

import (
	"os"

	"github.com/formul8/sourcing"
)

// LoadRegistry reads and parses the seed registry (sources.json).
func LoadRegistry(path string) (*sourcing.Registry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, sourcing.Errorf(sourcing.ENOTFOUND, "seed registry %s not found", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return sourcing.ParseRegistry(f)
}
