package sourcing

import "strings"

// FormatCategories formats supplier categories for display or LLM context.
func FormatCategories(categories []SupplierCategory) string {
	var b strings.Builder
	for _, c := range categories {
		b.WriteString("## ")
		b.WriteString(c.Label)
		b.WriteString("\n")
		writeListLine(&b, "Products", c.Products)
		writeListLine(&b, "Qualifications", c.Qualifications)
		writeListLine(&b, "Certifications", c.Certifications)
		writeListLine(&b, "Services", c.Services)
		writeListLine(&b, "Compliance", c.Compliance)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatStandards formats quality standards for display or LLM context.
func FormatStandards(standards []QualityStandard) string {
	var b strings.Builder
	for _, s := range standards {
		b.WriteString("## ")
		b.WriteString(s.Label)
		b.WriteString("\n")
		writeListLine(&b, "Criteria", s.Criteria)
		writeListLine(&b, "Testing", s.Testing)
		writeListLine(&b, "Nutrients", s.Nutrients)
		writeListLine(&b, "Growing media", s.GrowingMedia)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatStrategies formats sourcing strategies for display or LLM context.
func FormatStrategies(strategies []SourcingStrategy) string {
	var b strings.Builder
	for _, s := range strategies {
		b.WriteString("## ")
		b.WriteString(s.Label)
		b.WriteString("\n")
		writeListLine(&b, "Advantages", s.Advantages)
		writeListLine(&b, "Challenges", s.Challenges)
		writeListLine(&b, "Approach", s.Approach)
		writeListLine(&b, "Benefits", s.Benefits)
		writeListLine(&b, "Scope", s.Scope)
		writeListLine(&b, "Considerations", s.Considerations)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatCompliance formats compliance requirements for display or LLM
// context.
func FormatCompliance(requirements []ComplianceRequirement) string {
	var b strings.Builder
	for _, r := range requirements {
		b.WriteString("## ")
		b.WriteString(r.Label)
		b.WriteString("\n")
		writeListLine(&b, "Regulations", r.Regulations)
		writeListLine(&b, "Documentation", r.Documentation)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSnapshots formats page snapshots for LLM context.
// Uses title if available, falls back to source URL.
// Snapshots are separated by blank lines.
func FormatSnapshots(snapshots []*Snapshot) string {
	if len(snapshots) == 0 {
		return ""
	}

	parts := make([]string, 0, len(snapshots))
	for _, snap := range snapshots {
		header := snap.Title
		if header == "" {
			header = snap.SourceURL
		}
		parts = append(parts, "## Supplier page: "+header+"\n"+snap.Content)
	}

	return strings.Join(parts, "\n\n")
}

func writeListLine(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strings.Join(items, ", "))
	b.WriteString("\n")
}
