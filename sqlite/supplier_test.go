package sqlite_test

import (
	"context"
	"testing"

	"github.com/formul8/sourcing"
	"github.com/formul8/sourcing/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSupplier() *sourcing.Supplier {
	return &sourcing.Supplier{
		Name:           "Green Grow Supply",
		SourceURL:      "https://greengrowsupply.example.com",
		Category:       sourcing.CategoryEquipment,
		State:          "california",
		LegalStatus:    sourcing.LegalRecreationalMedical,
		Preferred:      true,
		Location:       "Oakland, CA",
		Products:       []string{"LED lights", "Hydroponic systems"},
		Certifications: []string{"UL listed"},
		Contact:        sourcing.Contact{Email: "sales@greengrowsupply.example.com"},
	}
}

func TestSupplierService_CreateSupplier(t *testing.T) {
	t.Parallel()

	t.Run("creates supplier with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))
		ctx := context.Background()

		supplier := newTestSupplier()
		require.NoError(t, s.CreateSupplier(ctx, supplier))
		assert.NotEmpty(t, supplier.ID)
		assert.False(t, supplier.CreatedAt.IsZero())

		got, err := s.FindSupplierByID(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, "Green Grow Supply", got.Name)
		assert.Equal(t, []string{"LED lights", "Hydroponic systems"}, got.Products)
		assert.Equal(t, "sales@greengrowsupply.example.com", got.Contact.Email)
		assert.True(t, got.Preferred)
	})

	t.Run("rejects supplier without name", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))

		err := s.CreateSupplier(context.Background(), &sourcing.Supplier{SourceURL: "https://a.example.com"})
		require.Error(t, err)
		assert.Equal(t, sourcing.EINVALID, sourcing.ErrorCode(err))
	})

	t.Run("rejects duplicate source URL", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, s.CreateSupplier(ctx, newTestSupplier()))

		err := s.CreateSupplier(ctx, newTestSupplier())
		require.Error(t, err)
		assert.Equal(t, sourcing.ECONFLICT, sourcing.ErrorCode(err))
	})
}

func TestSupplierService_FindSupplierByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing supplier", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))

		_, err := s.FindSupplierByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, sourcing.ENOTFOUND, sourcing.ErrorCode(err))
	})
}

func TestSupplierService_FindSuppliers(t *testing.T) {
	t.Parallel()

	s := sqlite.NewSupplierService(mustOpenDB(t))
	ctx := context.Background()

	a := newTestSupplier()
	require.NoError(t, s.CreateSupplier(ctx, a))

	b := &sourcing.Supplier{
		Name:      "Budding Genetics",
		SourceURL: "https://buddinggenetics.example.com",
		Category:  sourcing.CategoryGenetics,
		State:     "oregon",
	}
	require.NoError(t, s.CreateSupplier(ctx, b))

	t.Run("filters by category", func(t *testing.T) {
		category := sourcing.CategoryGenetics
		got, err := s.FindSuppliers(ctx, sourcing.SupplierFilter{Category: &category})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Budding Genetics", got[0].Name)
	})

	t.Run("filters by state", func(t *testing.T) {
		state := "california"
		got, err := s.FindSuppliers(ctx, sourcing.SupplierFilter{State: &state})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Green Grow Supply", got[0].Name)
	})

	t.Run("filters by preferred", func(t *testing.T) {
		preferred := true
		got, err := s.FindSuppliers(ctx, sourcing.SupplierFilter{Preferred: &preferred})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Green Grow Supply", got[0].Name)
	})

	t.Run("orders by name and paginates", func(t *testing.T) {
		got, err := s.FindSuppliers(ctx, sourcing.SupplierFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Budding Genetics", got[0].Name)

		got, err = s.FindSuppliers(ctx, sourcing.SupplierFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Green Grow Supply", got[0].Name)
	})

	t.Run("filters by source URL", func(t *testing.T) {
		url := "https://buddinggenetics.example.com"
		got, err := s.FindSuppliers(ctx, sourcing.SupplierFilter{SourceURL: &url})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, b.ID, got[0].ID)
	})
}

func TestSupplierService_UpdateSupplier(t *testing.T) {
	t.Parallel()

	t.Run("updates provided fields only", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))
		ctx := context.Background()

		supplier := newTestSupplier()
		require.NoError(t, s.CreateSupplier(ctx, supplier))

		name := "Green Grow Supply Co"
		products := []string{"LED lights"}
		got, err := s.UpdateSupplier(ctx, supplier.ID, sourcing.SupplierUpdate{
			Name:     &name,
			Products: &products,
		})
		require.NoError(t, err)
		assert.Equal(t, "Green Grow Supply Co", got.Name)
		assert.Equal(t, []string{"LED lights"}, got.Products)
		assert.Equal(t, "california", got.State)

		persisted, err := s.FindSupplierByID(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, "Green Grow Supply Co", persisted.Name)
	})

	t.Run("returns ENOTFOUND for missing supplier", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))

		name := "x"
		_, err := s.UpdateSupplier(context.Background(), "no-such-id", sourcing.SupplierUpdate{Name: &name})
		require.Error(t, err)
		assert.Equal(t, sourcing.ENOTFOUND, sourcing.ErrorCode(err))
	})

	t.Run("rejects update that clears required fields", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))
		ctx := context.Background()

		supplier := newTestSupplier()
		require.NoError(t, s.CreateSupplier(ctx, supplier))

		empty := ""
		_, err := s.UpdateSupplier(ctx, supplier.ID, sourcing.SupplierUpdate{Name: &empty})
		require.Error(t, err)
		assert.Equal(t, sourcing.EINVALID, sourcing.ErrorCode(err))
	})
}

func TestSupplierService_DeleteSupplier(t *testing.T) {
	t.Parallel()

	t.Run("deletes supplier and cascades to snapshots", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		suppliers := sqlite.NewSupplierService(db)
		snapshots := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		supplier := newTestSupplier()
		require.NoError(t, suppliers.CreateSupplier(ctx, supplier))
		require.NoError(t, snapshots.CreateSnapshot(ctx, &sourcing.Snapshot{
			SupplierID: supplier.ID,
			SourceURL:  supplier.SourceURL,
			Content:    "content",
		}))

		require.NoError(t, suppliers.DeleteSupplier(ctx, supplier.ID))

		_, err := suppliers.FindSupplierByID(ctx, supplier.ID)
		assert.Equal(t, sourcing.ENOTFOUND, sourcing.ErrorCode(err))

		got, err := snapshots.FindSnapshots(ctx, sourcing.SnapshotFilter{SupplierID: &supplier.ID})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns ENOTFOUND for missing supplier", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewSupplierService(mustOpenDB(t))

		err := s.DeleteSupplier(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, sourcing.ENOTFOUND, sourcing.ErrorCode(err))
	})
}
