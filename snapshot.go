package sourcing

import (
	"context"
	"time"
)

// Snapshot represents a scraped capture of a supplier page.
// Content is the page's main content converted to markdown; it is used as
// context for the advisor.
type Snapshot struct {
	ID          string    `json:"id"`
	SupplierID  string    `json:"supplierId"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.SupplierID == "" {
		return Errorf(EINVALID, "snapshot supplier ID required")
	}
	if s.SourceURL == "" {
		return Errorf(EINVALID, "snapshot source URL required")
	}
	return nil
}

// SnapshotService represents a service for managing page snapshots.
type SnapshotService interface {
	// CreateSnapshot creates a new snapshot.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshotsBySupplier removes all snapshots for a supplier.
	DeleteSnapshotsBySupplier(ctx context.Context, supplierID string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID         *string `json:"id"`
	SupplierID *string `json:"supplierId"`
	SourceURL  *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
