package sourcing

import (
	"context"
	"strings"
)

// SupplierCategory describes a class of suppliers in the knowledge base.
type SupplierCategory struct {
	URI            string   `json:"uri"`
	Label          string   `json:"label"`
	Products       []string `json:"products,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Services       []string `json:"services,omitempty"`
	Compliance     []string `json:"compliance,omitempty"`
}

// QualityStandard describes a quality standard in the knowledge base.
type QualityStandard struct {
	URI          string   `json:"uri"`
	Label        string   `json:"label"`
	Criteria     []string `json:"criteria,omitempty"`
	Testing      []string `json:"testing,omitempty"`
	Nutrients    []string `json:"nutrients,omitempty"`
	GrowingMedia []string `json:"growingMedia,omitempty"`
}

// SourcingStrategy describes a sourcing strategy in the knowledge base.
type SourcingStrategy struct {
	URI            string   `json:"uri"`
	Label          string   `json:"label"`
	Advantages     []string `json:"advantages,omitempty"`
	Challenges     []string `json:"challenges,omitempty"`
	Approach       []string `json:"approach,omitempty"`
	Benefits       []string `json:"benefits,omitempty"`
	Scope          []string `json:"scope,omitempty"`
	Considerations []string `json:"considerations,omitempty"`
}

// ComplianceRequirement describes a regulatory requirement in the
// knowledge base.
type ComplianceRequirement struct {
	URI           string   `json:"uri"`
	Label         string   `json:"label"`
	Regulations   []string `json:"regulations,omitempty"`
	Documentation []string `json:"documentation,omitempty"`
}

// KnowledgeSummary summarizes knowledge base contents.
type KnowledgeSummary struct {
	SupplierCategories     int      `json:"supplierCategories"`
	QualityStandards       int      `json:"qualityStandards"`
	SourcingStrategies     int      `json:"sourcingStrategies"`
	ComplianceRequirements int      `json:"complianceRequirements"`
	TotalTriples           int      `json:"totalTriples"`
	Namespaces             []string `json:"namespaces,omitempty"`
}

// KnowledgeService provides typed views over the sourcing ontology.
type KnowledgeService interface {
	// SupplierCategories returns all supplier categories.
	SupplierCategories(ctx context.Context) ([]SupplierCategory, error)

	// QualityStandards returns all quality standards.
	QualityStandards(ctx context.Context) ([]QualityStandard, error)

	// SourcingStrategies returns all sourcing strategies.
	SourcingStrategies(ctx context.Context) ([]SourcingStrategy, error)

	// ComplianceRequirements returns all compliance requirements.
	ComplianceRequirements(ctx context.Context) ([]ComplianceRequirement, error)

	// SearchCategories returns categories whose label contains the query,
	// case-insensitively.
	SearchCategories(ctx context.Context, query string) ([]SupplierCategory, error)

	// SearchStandards returns standards whose label contains the query,
	// case-insensitively.
	SearchStandards(ctx context.Context, query string) ([]QualityStandard, error)

	// Summary returns counts of knowledge base contents.
	Summary(ctx context.Context) (*KnowledgeSummary, error)
}

// SplitListValue parses a knowledge base literal into a list. Literals in
// the ontology hold comma-separated values; single values become a
// one-element list. Empty input returns nil.
func SplitListValue(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if !strings.Contains(value, ",") {
		return []string{value}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchLabel reports whether label contains query, case-insensitively.
// An empty query matches everything.
func MatchLabel(label, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(label), strings.ToLower(query))
}
