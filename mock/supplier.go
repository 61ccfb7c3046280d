package mock

import (
	"context"

	"github.com/formul8/sourcing"
)

var _ sourcing.SupplierService = (*SupplierService)(nil)

// SupplierService is a mock implementation of sourcing.SupplierService.
type SupplierService struct {
	CreateSupplierFn   func(ctx context.Context, supplier *sourcing.Supplier) error
	FindSupplierByIDFn func(ctx context.Context, id string) (*sourcing.Supplier, error)
	FindSuppliersFn    func(ctx context.Context, filter sourcing.SupplierFilter) ([]*sourcing.Supplier, error)
	UpdateSupplierFn   func(ctx context.Context, id string, upd sourcing.SupplierUpdate) (*sourcing.Supplier, error)
	DeleteSupplierFn   func(ctx context.Context, id string) error
}

func (s *SupplierService) CreateSupplier(ctx context.Context, supplier *sourcing.Supplier) error {
	return s.CreateSupplierFn(ctx, supplier)
}

func (s *SupplierService) FindSupplierByID(ctx context.Context, id string) (*sourcing.Supplier, error) {
	return s.FindSupplierByIDFn(ctx, id)
}

func (s *SupplierService) FindSuppliers(ctx context.Context, filter sourcing.SupplierFilter) ([]*sourcing.Supplier, error) {
	return s.FindSuppliersFn(ctx, filter)
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, id string, upd sourcing.SupplierUpdate) (*sourcing.Supplier, error) {
	return s.UpdateSupplierFn(ctx, id, upd)
}

func (s *SupplierService) DeleteSupplier(ctx context.Context, id string) error {
	return s.DeleteSupplierFn(ctx, id)
}
