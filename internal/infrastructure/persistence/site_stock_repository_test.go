package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/shared"
)

// newMockSiteStockRepository creates a GormSiteStockRepository with a mocked SQL connection
func newMockSiteStockRepository(t *testing.T) (*GormSiteStockRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormSiteStockRepository(gormDB), mock, mockDB
}

func TestGormSiteStockRepository_FindBySiteAndItem(t *testing.T) {
	t.Run("finds stock row", func(t *testing.T) {
		repo, mock, mockDB := newMockSiteStockRepository(t)
		defer mockDB.Close()

		siteID := uuid.New()
		itemID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "site_id", "item_id", "quantity"}).
			AddRow(uuid.New(), siteID, itemID, decimal.NewFromInt(120))

		mock.ExpectQuery(`SELECT \* FROM "site_stocks" WHERE site_id = \$1 AND item_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(siteID, itemID, 1).
			WillReturnRows(rows)

		stockRow, err := repo.FindBySiteAndItem(context.Background(), siteID, itemID)

		assert.NoError(t, err)
		assert.NotNil(t, stockRow)
		assert.True(t, stockRow.Quantity.Equal(decimal.NewFromInt(120)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error when no stock row exists", func(t *testing.T) {
		repo, mock, mockDB := newMockSiteStockRepository(t)
		defer mockDB.Close()

		siteID := uuid.New()
		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "site_stocks" WHERE site_id = \$1 AND item_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(siteID, itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		stockRow, err := repo.FindBySiteAndItem(context.Background(), siteID, itemID)

		assert.Error(t, err)
		assert.Nil(t, stockRow)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSiteStockRepository_FindForUpdate(t *testing.T) {
	t.Run("takes a row lock", func(t *testing.T) {
		repo, mock, mockDB := newMockSiteStockRepository(t)
		defer mockDB.Close()

		siteID := uuid.New()
		itemID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "site_id", "item_id", "quantity"}).
			AddRow(uuid.New(), siteID, itemID, decimal.NewFromInt(40))

		mock.ExpectQuery(`SELECT \* FROM "site_stocks" WHERE site_id = \$1 AND item_id = \$2 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(siteID, itemID, 1).
			WillReturnRows(rows)

		stockRow, err := repo.FindForUpdate(context.Background(), siteID, itemID)

		assert.NoError(t, err)
		assert.NotNil(t, stockRow)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
