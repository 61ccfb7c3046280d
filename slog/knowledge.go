package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/formul8/sourcing"
)

// Ensure LoggingKnowledgeService implements sourcing.KnowledgeService.
var _ sourcing.KnowledgeService = (*LoggingKnowledgeService)(nil)

// LoggingKnowledgeService wraps a KnowledgeService with query logging.
type LoggingKnowledgeService struct {
	next   sourcing.KnowledgeService
	logger *slog.Logger
}

// NewLoggingKnowledgeService creates a new LoggingKnowledgeService.
func NewLoggingKnowledgeService(next sourcing.KnowledgeService, logger *slog.Logger) *LoggingKnowledgeService {
	return &LoggingKnowledgeService{next: next, logger: logger}
}

func (s *LoggingKnowledgeService) SupplierCategories(ctx context.Context) (categories []sourcing.SupplierCategory, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge query", "op", "supplier_categories", "count", len(categories), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.SupplierCategories(ctx)
}

func (s *LoggingKnowledgeService) QualityStandards(ctx context.Context) (standards []sourcing.QualityStandard, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge query", "op", "quality_standards", "count", len(standards), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.QualityStandards(ctx)
}

func (s *LoggingKnowledgeService) SourcingStrategies(ctx context.Context) (strategies []sourcing.SourcingStrategy, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge query", "op", "sourcing_strategies", "count", len(strategies), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.SourcingStrategies(ctx)
}

func (s *LoggingKnowledgeService) ComplianceRequirements(ctx context.Context) (requirements []sourcing.ComplianceRequirement, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge query", "op", "compliance_requirements", "count", len(requirements), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.ComplianceRequirements(ctx)
}

func (s *LoggingKnowledgeService) SearchCategories(ctx context.Context, query string) (categories []sourcing.SupplierCategory, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge query", "op", "search_categories", "query", query, "count", len(categories), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.SearchCategories(ctx, query)
}

func (s *LoggingKnowledgeService) SearchStandards(ctx context.Context, query string) (standards []sourcing.QualityStandard, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge query", "op", "search_standards", "query", query, "count", len(standards), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.SearchStandards(ctx, query)
}

func (s *LoggingKnowledgeService) Summary(ctx context.Context) (summary *sourcing.KnowledgeSummary, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("knowledge query", "op", "summary", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Summary(ctx)
}
