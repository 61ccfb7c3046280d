package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/formul8/sourcing"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sourcing.SupplierService = (*SupplierService)(nil)

// SupplierService implements sourcing.SupplierService using SQLite.
type SupplierService struct {
	db *DB
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(db *DB) *SupplierService {
	return &SupplierService{db: db}
}

const supplierColumns = `id, name, source_url, category, state, legal_status, preferred,
	location, products, services, certifications,
	contact_email, contact_phone, contact_address, created_at, updated_at`

// CreateSupplier creates a new supplier. Returns ECONFLICT if a supplier
// with the same source URL already exists.
func (s *SupplierService) CreateSupplier(ctx context.Context, supplier *sourcing.Supplier) error {
	if err := supplier.Validate(); err != nil {
		return err
	}

	supplier.ID = uuid.New().String()
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	products, err := encodeList(supplier.Products)
	if err != nil {
		return err
	}
	services, err := encodeList(supplier.Services)
	if err != nil {
		return err
	}
	certifications, err := encodeList(supplier.Certifications)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, supplier.ID, supplier.Name, supplier.SourceURL, supplier.Category,
		supplier.State, supplier.LegalStatus, boolToInt(supplier.Preferred),
		supplier.Location, products, services, certifications,
		supplier.Contact.Email, supplier.Contact.Phone, supplier.Contact.Address,
		supplier.CreatedAt.Format(time.RFC3339), supplier.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return sourcing.Errorf(sourcing.ECONFLICT, "supplier with source URL %q already exists", supplier.SourceURL)
	}

	return err
}

// FindSupplierByID retrieves a supplier by ID.
func (s *SupplierService) FindSupplierByID(ctx context.Context, id string) (*sourcing.Supplier, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE id = ?
	`, id)

	supplier, err := scanSupplier(row)
	if err == sql.ErrNoRows {
		return nil, sourcing.Errorf(sourcing.ENOTFOUND, "supplier not found")
	}
	if err != nil {
		return nil, err
	}

	return supplier, nil
}

// FindSuppliers retrieves suppliers matching the filter.
func (s *SupplierService) FindSuppliers(ctx context.Context, filter sourcing.SupplierFilter) ([]*sourcing.Supplier, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + supplierColumns + " FROM suppliers WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.State != nil {
		query.WriteString(" AND state = ?")
		args = append(args, *filter.State)
	}
	if filter.Preferred != nil {
		query.WriteString(" AND preferred = ?")
		args = append(args, boolToInt(*filter.Preferred))
	}

	query.WriteString(" ORDER BY name ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*sourcing.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}

	return suppliers, rows.Err()
}

// UpdateSupplier updates an existing supplier.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id string, upd sourcing.SupplierUpdate) (*sourcing.Supplier, error) {
	supplier, err := s.FindSupplierByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		supplier.Name = *upd.Name
	}
	if upd.SourceURL != nil {
		supplier.SourceURL = *upd.SourceURL
	}
	if upd.Category != nil {
		supplier.Category = *upd.Category
	}
	if upd.State != nil {
		supplier.State = *upd.State
	}
	if upd.LegalStatus != nil {
		supplier.LegalStatus = *upd.LegalStatus
	}
	if upd.Preferred != nil {
		supplier.Preferred = *upd.Preferred
	}
	if upd.Location != nil {
		supplier.Location = *upd.Location
	}
	if upd.Products != nil {
		supplier.Products = *upd.Products
	}
	if upd.Services != nil {
		supplier.Services = *upd.Services
	}
	if upd.Certifications != nil {
		supplier.Certifications = *upd.Certifications
	}
	if upd.Contact != nil {
		supplier.Contact = *upd.Contact
	}

	if err := supplier.Validate(); err != nil {
		return nil, err
	}

	supplier.UpdatedAt = time.Now().UTC()

	products, err := encodeList(supplier.Products)
	if err != nil {
		return nil, err
	}
	services, err := encodeList(supplier.Services)
	if err != nil {
		return nil, err
	}
	certifications, err := encodeList(supplier.Certifications)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE suppliers
		SET name = ?, source_url = ?, category = ?, state = ?, legal_status = ?,
			preferred = ?, location = ?, products = ?, services = ?, certifications = ?,
			contact_email = ?, contact_phone = ?, contact_address = ?, updated_at = ?
		WHERE id = ?
	`, supplier.Name, supplier.SourceURL, supplier.Category, supplier.State,
		supplier.LegalStatus, boolToInt(supplier.Preferred), supplier.Location,
		products, services, certifications,
		supplier.Contact.Email, supplier.Contact.Phone, supplier.Contact.Address,
		supplier.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier permanently removes a supplier. Snapshots are removed by
// the foreign key cascade.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sourcing.Errorf(sourcing.ENOTFOUND, "supplier not found")
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanSupplier.
type scanner interface {
	Scan(dest ...any) error
}

func scanSupplier(row scanner) (*sourcing.Supplier, error) {
	var supplier sourcing.Supplier
	var preferred int
	var products, services, certifications string
	var createdAt, updatedAt string

	if err := row.Scan(&supplier.ID, &supplier.Name, &supplier.SourceURL,
		&supplier.Category, &supplier.State, &supplier.LegalStatus, &preferred,
		&supplier.Location, &products, &services, &certifications,
		&supplier.Contact.Email, &supplier.Contact.Phone, &supplier.Contact.Address,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	supplier.Preferred = preferred != 0

	var err error
	if supplier.Products, err = decodeList(products, "products"); err != nil {
		return nil, err
	}
	if supplier.Services, err = decodeList(services, "services"); err != nil {
		return nil, err
	}
	if supplier.Certifications, err = decodeList(certifications, "certifications"); err != nil {
		return nil, err
	}
	if supplier.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if supplier.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &supplier, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
