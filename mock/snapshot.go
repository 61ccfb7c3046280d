package mock

import (
	"context"

	"github.com/formul8/sourcing"
)

var _ sourcing.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of sourcing.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn            func(ctx context.Context, snapshot *sourcing.Snapshot) error
	FindSnapshotByIDFn          func(ctx context.Context, id string) (*sourcing.Snapshot, error)
	FindSnapshotsFn             func(ctx context.Context, filter sourcing.SnapshotFilter) ([]*sourcing.Snapshot, error)
	DeleteSnapshotsBySupplierFn func(ctx context.Context, supplierID string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *sourcing.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*sourcing.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter sourcing.SnapshotFilter) ([]*sourcing.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshotsBySupplier(ctx context.Context, supplierID string) error {
	return s.DeleteSnapshotsBySupplierFn(ctx, supplierID)
}
