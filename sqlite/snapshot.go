package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/formul8/sourcing"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sourcing.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements sourcing.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

const snapshotColumns = `id, supplier_id, source_url, title, description, content, content_hash, fetched_at`

// CreateSnapshot creates a new snapshot.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *sourcing.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.SupplierID, snapshot.SourceURL, snapshot.Title,
		snapshot.Description, snapshot.Content, snapshot.ContentHash,
		snapshot.FetchedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return sourcing.Errorf(sourcing.ENOTFOUND, "supplier not found")
	}

	return err
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*sourcing.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE id = ?
	`, id)

	snapshot, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, sourcing.Errorf(sourcing.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// FindSnapshots retrieves snapshots matching the filter, most recent first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter sourcing.SnapshotFilter) ([]*sourcing.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + snapshotColumns + " FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SupplierID != nil {
		query.WriteString(" AND supplier_id = ?")
		args = append(args, *filter.SupplierID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*sourcing.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshotsBySupplier removes all snapshots for a supplier.
func (s *SnapshotService) DeleteSnapshotsBySupplier(ctx context.Context, supplierID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE supplier_id = ?", supplierID)
	return err
}

func scanSnapshot(row scanner) (*sourcing.Snapshot, error) {
	var snapshot sourcing.Snapshot
	var fetchedAt string

	if err := row.Scan(&snapshot.ID, &snapshot.SupplierID, &snapshot.SourceURL,
		&snapshot.Title, &snapshot.Description, &snapshot.Content,
		&snapshot.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if snapshot.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
