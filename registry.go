package sourcing

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
)

// SeedSource is a single scrape target from the seed registry, annotated
// with the registry section it came from.
type SeedSource struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Category    string   `json:"category,omitempty"`
	State       string   `json:"state,omitempty"`
	LegalStatus string   `json:"legal_status,omitempty"`
	Preferred   bool     `json:"preferred,omitempty"`
	Location    string   `json:"location,omitempty"`
	Products    []string `json:"products,omitempty"`
	Services    []string `json:"services,omitempty"`
}

// StateSources groups the suppliers of one state in the seed registry.
type StateSources struct {
	LegalStatus   string       `json:"legal_status,omitempty"`
	Materials     []SeedSource `json:"materials,omitempty"`
	Equipment     []SeedSource `json:"equipment,omitempty"`
	Dispensaries  []SeedSource `json:"dispensaries,omitempty"`
	Manufacturers []SeedSource `json:"manufacturers,omitempty"`
}

// NationalSuppliers groups country-wide suppliers by what they sell.
type NationalSuppliers struct {
	Materials []SeedSource `json:"materials,omitempty"`
	Equipment []SeedSource `json:"equipment,omitempty"`
	Packaging []SeedSource `json:"packaging,omitempty"`
	Testing   []SeedSource `json:"testing,omitempty"`
}

// RegistryMetadata holds bookkeeping fields of the seed registry file.
type RegistryMetadata struct {
	LastUpdated string `json:"last_updated,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Registry is the parsed sources.json seed file.
type Registry struct {
	PreferredSources   []SeedSource            `json:"preferred_sources,omitempty"`
	SourcesByState     map[string]StateSources `json:"sources_by_state,omitempty"`
	NationalSuppliers  NationalSuppliers       `json:"national_suppliers,omitempty"`
	ConsultingServices []SeedSource            `json:"consulting_services,omitempty"`
	Metadata           RegistryMetadata        `json:"metadata,omitempty"`
}

// ParseRegistry decodes a seed registry from JSON.
func ParseRegistry(r io.Reader) (*Registry, error) {
	var reg Registry
	if err := json.NewDecoder(r).Decode(&reg); err != nil {
		return nil, Errorf(EINVALID, "invalid registry JSON: %v", err)
	}
	return &reg, nil
}

// Flatten returns every seed in the registry as a single list, deduplicated
// by URL. Preferred sources are scanned first so a supplier listed both as
// preferred and in a state section keeps its preferred flag. Each seed's
// Category, State and LegalStatus are filled in from its registry section.
// States are visited in sorted order so output is deterministic.
func (r *Registry) Flatten() []SeedSource {
	var out []SeedSource
	seen := make(map[string]bool)

	add := func(s SeedSource) {
		key := NormalizeURL(s.URL)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		s.URL = key
		out = append(out, s)
	}

	for _, s := range r.PreferredSources {
		s.Preferred = true
		add(s)
	}

	states := make([]string, 0, len(r.SourcesByState))
	for state := range r.SourcesByState {
		states = append(states, state)
	}
	sort.Strings(states)

	for _, state := range states {
		ss := r.SourcesByState[state]
		annotate := func(seeds []SeedSource, category string) {
			for _, s := range seeds {
				s.State = state
				s.LegalStatus = ss.LegalStatus
				if s.Category == "" {
					s.Category = category
				}
				add(s)
			}
		}
		annotate(ss.Materials, CategoryMaterials)
		annotate(ss.Equipment, CategoryEquipment)
		annotate(ss.Dispensaries, CategoryDispensary)
		annotate(ss.Manufacturers, CategoryMaterials)
	}

	annotateNational := func(seeds []SeedSource, category string) {
		for _, s := range seeds {
			if s.Category == "" {
				s.Category = category
			}
			add(s)
		}
	}
	annotateNational(r.NationalSuppliers.Materials, CategoryMaterials)
	annotateNational(r.NationalSuppliers.Equipment, CategoryEquipment)
	annotateNational(r.NationalSuppliers.Packaging, CategoryPackaging)
	annotateNational(r.NationalSuppliers.Testing, CategoryTesting)

	for _, s := range r.ConsultingServices {
		if s.Category == "" {
			s.Category = CategoryConsulting
		}
		add(s)
	}

	return out
}

// RegistryMetrics summarizes the seed registry for dashboards.
type RegistryMetrics struct {
	TotalSources        int      `json:"total_sources"`
	PreferredSources    int      `json:"preferred_sources"`
	StatesCovered       int      `json:"states_covered"`
	Dispensaries        int      `json:"dispensaries"`
	Suppliers           int      `json:"suppliers"`
	Manufacturers       int      `json:"manufacturers"`
	TestingLabs         int      `json:"testing_labs"`
	RecreationalMedical int      `json:"recreational_medical"`
	MedicalOnly         int      `json:"medical_only"`
	LastUpdate          string   `json:"last_update,omitempty"`
	PreferredList       []string `json:"preferred_sources_list,omitempty"`
}

// Metrics computes dashboard counters from the registry.
func (r *Registry) Metrics() RegistryMetrics {
	m := RegistryMetrics{
		PreferredSources: len(r.PreferredSources),
		StatesCovered:    len(r.SourcesByState),
		LastUpdate:       r.Metadata.LastUpdated,
	}
	for _, s := range r.PreferredSources {
		m.PreferredList = append(m.PreferredList, s.Name)
	}

	for _, ss := range r.SourcesByState {
		switch ss.LegalStatus {
		case LegalRecreationalMedical:
			m.RecreationalMedical++
		case LegalMedicalOnly:
			m.MedicalOnly++
		}
		m.Dispensaries += len(ss.Dispensaries)
		m.Manufacturers += len(ss.Manufacturers)
		m.Suppliers += len(ss.Materials) + len(ss.Equipment)
	}

	m.Suppliers += len(r.NationalSuppliers.Materials) +
		len(r.NationalSuppliers.Equipment) +
		len(r.NationalSuppliers.Packaging) +
		len(r.ConsultingServices)
	m.TestingLabs = len(r.NationalSuppliers.Testing)

	m.TotalSources = len(r.Flatten())
	return m
}

// NormalizeURL prepends https:// to URLs missing a scheme and trims
// surrounding whitespace. Returns "" for empty input.
func NormalizeURL(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}
