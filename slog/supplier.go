package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/formul8/sourcing"
)

// Ensure LoggingSupplierService implements sourcing.SupplierService.
var _ sourcing.SupplierService = (*LoggingSupplierService)(nil)

// LoggingSupplierService wraps a SupplierService with operation logging.
type LoggingSupplierService struct {
	next   sourcing.SupplierService
	logger *slog.Logger
}

// NewLoggingSupplierService creates a new LoggingSupplierService.
func NewLoggingSupplierService(next sourcing.SupplierService, logger *slog.Logger) *LoggingSupplierService {
	return &LoggingSupplierService{next: next, logger: logger}
}

func (s *LoggingSupplierService) CreateSupplier(ctx context.Context, supplier *sourcing.Supplier) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("supplier create", "name", supplier.Name, "url", supplier.SourceURL, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.CreateSupplier(ctx, supplier)
}

func (s *LoggingSupplierService) FindSupplierByID(ctx context.Context, id string) (supplier *sourcing.Supplier, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("supplier find", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindSupplierByID(ctx, id)
}

func (s *LoggingSupplierService) FindSuppliers(ctx context.Context, filter sourcing.SupplierFilter) (suppliers []*sourcing.Supplier, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("supplier list", "count", len(suppliers), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindSuppliers(ctx, filter)
}

func (s *LoggingSupplierService) UpdateSupplier(ctx context.Context, id string, upd sourcing.SupplierUpdate) (supplier *sourcing.Supplier, err error) {
	defer func(begin time.Time) {
		s.logger.Info("supplier update", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.UpdateSupplier(ctx, id, upd)
}

func (s *LoggingSupplierService) DeleteSupplier(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("supplier delete", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.DeleteSupplier(ctx, id)
}
