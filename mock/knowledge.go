package mock

import (
	"context"

	"github.com/formul8/sourcing"
)

var _ sourcing.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService is a mock implementation of sourcing.KnowledgeService.
type KnowledgeService struct {
	SupplierCategoriesFn     func(ctx context.Context) ([]sourcing.SupplierCategory, error)
	QualityStandardsFn       func(ctx context.Context) ([]sourcing.QualityStandard, error)
	SourcingStrategiesFn     func(ctx context.Context) ([]sourcing.SourcingStrategy, error)
	ComplianceRequirementsFn func(ctx context.Context) ([]sourcing.ComplianceRequirement, error)
	SearchCategoriesFn       func(ctx context.Context, query string) ([]sourcing.SupplierCategory, error)
	SearchStandardsFn        func(ctx context.Context, query string) ([]sourcing.QualityStandard, error)
	SummaryFn                func(ctx context.Context) (*sourcing.KnowledgeSummary, error)
}

func (s *KnowledgeService) SupplierCategories(ctx context.Context) ([]sourcing.SupplierCategory, error) {
	return s.SupplierCategoriesFn(ctx)
}

func (s *KnowledgeService) QualityStandards(ctx context.Context) ([]sourcing.QualityStandard, error) {
	return s.QualityStandardsFn(ctx)
}

func (s *KnowledgeService) SourcingStrategies(ctx context.Context) ([]sourcing.SourcingStrategy, error) {
	return s.SourcingStrategiesFn(ctx)
}

func (s *KnowledgeService) ComplianceRequirements(ctx context.Context) ([]sourcing.ComplianceRequirement, error) {
	return s.ComplianceRequirementsFn(ctx)
}

func (s *KnowledgeService) SearchCategories(ctx context.Context, query string) ([]sourcing.SupplierCategory, error) {
	return s.SearchCategoriesFn(ctx, query)
}

func (s *KnowledgeService) SearchStandards(ctx context.Context, query string) ([]sourcing.QualityStandard, error) {
	return s.SearchStandardsFn(ctx, query)
}

func (s *KnowledgeService) Summary(ctx context.Context) (*sourcing.KnowledgeSummary, error) {
	return s.SummaryFn(ctx)
}
