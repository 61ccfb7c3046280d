// Package turtle provides a sourcing.KnowledgeService backed by a Turtle
// (TTL) ontology file parsed with knakk/rdf.
package turtle

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/formul8/sourcing"
	"github.com/knakk/rdf"
)

// Ontology namespaces recognized by the knowledge base.
const (
	nsSourcing = "http://formul8.ai/ontology/sourcing#"
	nsSupplier = "http://formul8.ai/ontology/supplier#"
	nsCannabis = "http://formul8.ai/ontology/cannabis#"
	nsQuality  = "http://formul8.ai/ontology/quality#"

	rdfType   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfsLabel = "http://www.w3.org/2000/01/rdf-schema#label"
)

// Entity classes the knowledge base extracts typed views for.
const (
	classSupplierType = nsSupplier + "SupplierType"
	classStandard     = nsQuality + "Standard"
	classStrategy     = nsSourcing + "Strategy"
	classRegulation   = nsSourcing + "Regulation"
)

// Ensure KnowledgeBase implements sourcing.KnowledgeService at compile time.
var _ sourcing.KnowledgeService = (*KnowledgeBase)(nil)

// KnowledgeBase holds the parsed ontology. It is immutable after loading
// and safe for concurrent use.
type KnowledgeBase struct {
	categories   []sourcing.SupplierCategory
	standards    []sourcing.QualityStandard
	strategies   []sourcing.SourcingStrategy
	requirements []sourcing.ComplianceRequirement
	totalTriples int
}

// entity accumulates the properties of one subject during parsing.
type entity struct {
	uri   string
	types map[string]bool
	props map[string][]string
}

// Load parses the knowledge base from a Turtle file. A missing file yields
// an empty knowledge base, not an error, so the agent degrades gracefully
// when the ontology has not been installed.
func Load(path string) (*KnowledgeBase, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &KnowledgeBase{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses a Turtle document into a knowledge base.
func Parse(r io.Reader) (*KnowledgeBase, error) {
	entities := make(map[string]*entity)
	total := 0

	dec := rdf.NewTripleDecoder(r, rdf.Turtle)
	for {
		triple, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, sourcing.Errorf(sourcing.EINVALID, "invalid turtle document: %v", err)
		}
		total++

		subj := triple.Subj.String()
		pred := triple.Pred.String()
		obj := triple.Obj.String()

		e, ok := entities[subj]
		if !ok {
			e = &entity{
				uri:   subj,
				types: make(map[string]bool),
				props: make(map[string][]string),
			}
			entities[subj] = e
		}

		if pred == rdfType {
			e.types[obj] = true
			continue
		}
		e.props[pred] = append(e.props[pred], obj)
	}

	kb := &KnowledgeBase{totalTriples: total}
	for _, e := range entities {
		switch {
		case e.types[classSupplierType]:
			kb.categories = append(kb.categories, sourcing.SupplierCategory{
				URI:            e.uri,
				Label:          e.label(),
				Products:       e.list(nsSupplier + "products"),
				Qualifications: e.list(nsSupplier + "qualifications"),
				Certifications: e.list(nsSupplier + "certifications"),
				Services:       e.list(nsSupplier + "services"),
				Compliance:     e.list(nsSupplier + "compliance"),
			})
		case e.types[classStandard]:
			kb.standards = append(kb.standards, sourcing.QualityStandard{
				URI:          e.uri,
				Label:        e.label(),
				Criteria:     e.list(nsQuality + "criteria"),
				Testing:      e.list(nsQuality + "testing"),
				Nutrients:    e.list(nsQuality + "nutrients"),
				GrowingMedia: e.list(nsQuality + "growing_media"),
			})
		case e.types[classStrategy]:
			kb.strategies = append(kb.strategies, sourcing.SourcingStrategy{
				URI:            e.uri,
				Label:          e.label(),
				Advantages:     e.list(nsSourcing + "advantages"),
				Challenges:     e.list(nsSourcing + "challenges"),
				Approach:       e.list(nsSourcing + "approach"),
				Benefits:       e.list(nsSourcing + "benefits"),
				Scope:          e.list(nsSourcing + "scope"),
				Considerations: e.list(nsSourcing + "considerations"),
			})
		case e.types[classRegulation]:
			kb.requirements = append(kb.requirements, sourcing.ComplianceRequirement{
				URI:           e.uri,
				Label:         e.label(),
				Regulations:   e.list(nsSourcing + "regulations"),
				Documentation: e.list(nsSourcing + "documentation"),
			})
		}
	}

	sort.Slice(kb.categories, func(i, j int) bool { return kb.categories[i].Label < kb.categories[j].Label })
	sort.Slice(kb.standards, func(i, j int) bool { return kb.standards[i].Label < kb.standards[j].Label })
	sort.Slice(kb.strategies, func(i, j int) bool { return kb.strategies[i].Label < kb.strategies[j].Label })
	sort.Slice(kb.requirements, func(i, j int) bool { return kb.requirements[i].Label < kb.requirements[j].Label })

	return kb, nil
}

// label returns the entity's rdfs:label, falling back to the local name of
// its URI.
func (e *entity) label() string {
	if labels := e.props[rdfsLabel]; len(labels) > 0 {
		return labels[0]
	}
	if idx := strings.LastIndexAny(e.uri, "#/"); idx != -1 {
		return e.uri[idx+1:]
	}
	return e.uri
}

// list gathers all values of a property, splitting comma-separated
// literals.
func (e *entity) list(pred string) []string {
	var out []string
	for _, v := range e.props[pred] {
		out = append(out, sourcing.SplitListValue(v)...)
	}
	return out
}

// SupplierCategories returns all supplier categories.
func (kb *KnowledgeBase) SupplierCategories(_ context.Context) ([]sourcing.SupplierCategory, error) {
	return append([]sourcing.SupplierCategory(nil), kb.categories...), nil
}

// QualityStandards returns all quality standards.
func (kb *KnowledgeBase) QualityStandards(_ context.Context) ([]sourcing.QualityStandard, error) {
	return append([]sourcing.QualityStandard(nil), kb.standards...), nil
}

// SourcingStrategies returns all sourcing strategies.
func (kb *KnowledgeBase) SourcingStrategies(_ context.Context) ([]sourcing.SourcingStrategy, error) {
	return append([]sourcing.SourcingStrategy(nil), kb.strategies...), nil
}

// ComplianceRequirements returns all compliance requirements.
func (kb *KnowledgeBase) ComplianceRequirements(_ context.Context) ([]sourcing.ComplianceRequirement, error) {
	return append([]sourcing.ComplianceRequirement(nil), kb.requirements...), nil
}

// SearchCategories returns categories whose label contains the query.
func (kb *KnowledgeBase) SearchCategories(_ context.Context, query string) ([]sourcing.SupplierCategory, error) {
	var out []sourcing.SupplierCategory
	for _, c := range kb.categories {
		if sourcing.MatchLabel(c.Label, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

// SearchStandards returns standards whose label contains the query.
func (kb *KnowledgeBase) SearchStandards(_ context.Context, query string) ([]sourcing.QualityStandard, error) {
	var out []sourcing.QualityStandard
	for _, s := range kb.standards {
		if sourcing.MatchLabel(s.Label, query) {
			out = append(out, s)
		}
	}
	return out, nil
}

// Summary returns counts of knowledge base contents.
func (kb *KnowledgeBase) Summary(_ context.Context) (*sourcing.KnowledgeSummary, error) {
	return &sourcing.KnowledgeSummary{
		SupplierCategories:     len(kb.categories),
		QualityStandards:       len(kb.standards),
		SourcingStrategies:     len(kb.strategies),
		ComplianceRequirements: len(kb.requirements),
		TotalTriples:           kb.totalTriples,
		Namespaces:             []string{"sourcing", "supplier", "cannabis", "quality"},
	}, nil
}
