package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/formul8/sourcing"
)

// Export is the on-disk format of a scraped data dump.
type Export struct {
	ScrapedAt time.Time            `json:"scraped_at"`
	Suppliers []*sourcing.Supplier `json:"suppliers"`
	Snapshots []*sourcing.Snapshot `json:"snapshots,omitempty"`
}

// WriteExport writes a timestamped scraped data file into dir and returns
// its path. The file is written to a temp name and renamed so readers
// never see a partial export.
func WriteExport(dir string, export *Export) (string, error) {
	if export.ScrapedAt.IsZero() {
		export.ScrapedAt = time.Now().UTC()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("scraped_data_%s.json", export.ScrapedAt.Format("20060102_150405"))
	finalPath := filepath.Join(dir, name)
	tempPath := finalPath + ".tmp"

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", err
	}

	return finalPath, nil
}

// ReadExport reads a scraped data file written by WriteExport.
func ReadExport(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, sourcing.Errorf(sourcing.EINVALID, "invalid export file %s: %v", path, err)
	}
	return &export, nil
}
