package sourcing

import (
	"context"
	"time"
)

// Supplier categories recognized by the registry and knowledge base.
const (
	CategoryGenetics   = "genetics"
	CategoryNutrients  = "nutrients"
	CategoryEquipment  = "equipment"
	CategoryPackaging  = "packaging"
	CategoryTesting    = "testing"
	CategoryConsulting = "consulting"
	CategoryDispensary = "dispensary"
	CategoryMaterials  = "materials"
)

// Legal status values for state-level suppliers.
const (
	LegalRecreationalMedical = "recreational_medical"
	LegalMedicalOnly         = "medical_only"
)

// Contact holds contact details extracted from a supplier website.
type Contact struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Supplier represents a cannabis-industry supplier record.
type Supplier struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SourceURL      string    `json:"sourceUrl"`
	Category       string    `json:"category"`
	State          string    `json:"state,omitempty"`
	LegalStatus    string    `json:"legalStatus,omitempty"`
	Preferred      bool      `json:"preferred"`
	Location       string    `json:"location,omitempty"`
	Products       []string  `json:"products,omitempty"`
	Services       []string  `json:"services,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	Contact        Contact   `json:"contact"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate returns an error if the supplier contains invalid fields.
func (s *Supplier) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "supplier name required")
	}
	if s.SourceURL == "" {
		return Errorf(EINVALID, "supplier source URL required")
	}
	return nil
}

// SupplierService represents a service for managing supplier records.
type SupplierService interface {
	// CreateSupplier creates a new supplier.
	CreateSupplier(ctx context.Context, supplier *Supplier) error

	// FindSupplierByID retrieves a supplier by ID.
	// Returns ENOTFOUND if supplier does not exist.
	FindSupplierByID(ctx context.Context, id string) (*Supplier, error)

	// FindSuppliers retrieves suppliers matching the filter.
	FindSuppliers(ctx context.Context, filter SupplierFilter) ([]*Supplier, error)

	// UpdateSupplier updates an existing supplier.
	// Returns ENOTFOUND if supplier does not exist.
	UpdateSupplier(ctx context.Context, id string, upd SupplierUpdate) (*Supplier, error)

	// DeleteSupplier permanently removes a supplier and its snapshots.
	// Returns ENOTFOUND if supplier does not exist.
	DeleteSupplier(ctx context.Context, id string) error
}

// SupplierFilter represents a filter for FindSuppliers.
type SupplierFilter struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	SourceURL *string `json:"sourceUrl"`
	Category  *string `json:"category"`
	State     *string `json:"state"`
	Preferred *bool   `json:"preferred"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SupplierUpdate represents fields that can be updated on a supplier.
// Nil fields are left unchanged.
type SupplierUpdate struct {
	Name           *string   `json:"name"`
	SourceURL      *string   `json:"sourceUrl"`
	Category       *string   `json:"category"`
	State          *string   `json:"state"`
	LegalStatus    *string   `json:"legalStatus"`
	Preferred      *bool     `json:"preferred"`
	Location       *string   `json:"location"`
	Products       *[]string `json:"products"`
	Services       *[]string `json:"services"`
	Certifications *[]string `json:"certifications"`
	Contact        *Contact  `json:"contact"`
}
