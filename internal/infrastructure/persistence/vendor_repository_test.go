package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// newMockVendorRepository creates a GormVendorRepository with a mocked SQL connection
func newMockVendorRepository(t *testing.T) (*GormVendorRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormVendorRepository(gormDB), mock, mockDB
}

func TestGormVendorRepository_FindByID(t *testing.T) {
	t.Run("finds existing vendor", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "type", "status"}).
			AddRow(vendorID, "VND-001", "Shree Cement Agencies", "supplier", "active")

		mock.ExpectQuery(`SELECT \* FROM "vendors" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(vendorID, 1).
			WillReturnRows(rows)

		vendor, err := repo.FindByID(context.Background(), vendorID)

		assert.NoError(t, err)
		assert.NotNil(t, vendor)
		assert.Equal(t, vendorID, vendor.ID)
		assert.Equal(t, "VND-001", vendor.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent vendor", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "vendors" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(vendorID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		vendor, err := repo.FindByID(context.Background(), vendorID)

		assert.Error(t, err)
		assert.Nil(t, vendor)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVendorRepository_FindByCode(t *testing.T) {
	t.Run("finds vendor by code", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "type", "status"}).
			AddRow(vendorID, "VND-001", "Shree Cement Agencies", "supplier", "active")

		mock.ExpectQuery(`SELECT \* FROM "vendors" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("VND-001", 1).
			WillReturnRows(rows)

		vendor, err := repo.FindByCode(context.Background(), "VND-001")

		assert.NoError(t, err)
		assert.NotNil(t, vendor)
		assert.Equal(t, "Shree Cement Agencies", vendor.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVendorRepository_Count(t *testing.T) {
	t.Run("counts vendors", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "vendors"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(9), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts vendors filtered by status", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "vendors" WHERE status = \$1`).
			WithArgs("blocked").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.Count(context.Background(), shared.Filter{
			Filters: map[string]interface{}{"status": "blocked"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVendorRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when vendor exists", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "vendors" WHERE code = \$1`).
			WithArgs("VND-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "VND-001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when vendor does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "vendors" WHERE code = \$1`).
			WithArgs("VND-404").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCode(context.Background(), "VND-404")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVendorRepository_Save(t *testing.T) {
	t.Run("saves vendor", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		vendor, err := masterdata.NewVendor("VND-001", "Shree Cement Agencies", masterdata.VendorTypeSupplier)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "vendors" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), vendor)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormVendorRepository_Delete(t *testing.T) {
	t.Run("deletes existing vendor", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		mock.ExpectExec(`DELETE FROM "vendors" WHERE id = \$1`).
			WithArgs(vendorID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), vendorID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent vendor", func(t *testing.T) {
		repo, mock, mockDB := newMockVendorRepository(t)
		defer mockDB.Close()

		vendorID := uuid.New()

		mock.ExpectExec(`DELETE FROM "vendors" WHERE id = \$1`).
			WithArgs(vendorID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), vendorID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
