package stock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/stock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockSiteStockRepository struct {
	mock.Mock
}

func (m *MockSiteStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.SiteStock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.SiteStock), args.Error(1)
}

func (m *MockSiteStockRepository) FindBySiteAndItem(ctx context.Context, siteID, itemID uuid.UUID) (*stock.SiteStock, error) {
	args := m.Called(ctx, siteID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.SiteStock), args.Error(1)
}

func (m *MockSiteStockRepository) FindForUpdate(ctx context.Context, siteID, itemID uuid.UUID) (*stock.SiteStock, error) {
	args := m.Called(ctx, siteID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.SiteStock), args.Error(1)
}

func (m *MockSiteStockRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*stock.SiteStock, error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).([]*stock.SiteStock), args.Error(1)
}

func (m *MockSiteStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSiteStockRepository) Save(ctx context.Context, row *stock.SiteStock) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

type MockDailyConsumptionRepository struct {
	mock.Mock
}

func (m *MockDailyConsumptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.DailyConsumption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.DailyConsumption), args.Error(1)
}

func (m *MockDailyConsumptionRepository) FindBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) (*stock.DailyConsumption, error) {
	args := m.Called(ctx, siteID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.DailyConsumption), args.Error(1)
}

func (m *MockDailyConsumptionRepository) FindBySiteAndRange(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]*stock.DailyConsumption, error) {
	args := m.Called(ctx, siteID, from, to)
	return args.Get(0).([]*stock.DailyConsumption), args.Error(1)
}

func (m *MockDailyConsumptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*stock.DailyConsumption, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*stock.DailyConsumption), args.Error(1)
}

func (m *MockDailyConsumptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDailyConsumptionRepository) ExistsBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, siteID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockDailyConsumptionRepository) Save(ctx context.Context, consumption *stock.DailyConsumption) error {
	args := m.Called(ctx, consumption)
	return args.Error(0)
}

func (m *MockDailyConsumptionRepository) ReplaceLines(ctx context.Context, consumption *stock.DailyConsumption) error {
	args := m.Called(ctx, consumption)
	return args.Error(0)
}

type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Site), args.Error(1)
}

func (m *MockSiteRepository) FindByCode(ctx context.Context, code string) (*masterdata.Site, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Site), args.Error(1)
}

func (m *MockSiteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Site, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]masterdata.Site), args.Error(1)
}

func (m *MockSiteRepository) FindByZone(ctx context.Context, zoneID uuid.UUID, filter shared.Filter) ([]masterdata.Site, error) {
	args := m.Called(ctx, zoneID, filter)
	return args.Get(0).([]masterdata.Site), args.Error(1)
}

func (m *MockSiteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSiteRepository) CountByStatus(ctx context.Context, status masterdata.SiteStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSiteRepository) CountByZone(ctx context.Context, zoneID uuid.UUID) (int64, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSiteRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockSiteRepository) Save(ctx context.Context, site *masterdata.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*masterdata.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]masterdata.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]masterdata.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]masterdata.Item, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]masterdata.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]masterdata.Item), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *masterdata.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Test helpers
// =============================================================================

func activeSite(t *testing.T) *masterdata.Site {
	site, err := masterdata.NewSite("SITE-TA", "Tower A", uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	return site
}

func cementItem(t *testing.T) *masterdata.Item {
	item, err := masterdata.NewItem("CEM-OPC53", "OPC 53 Grade Cement", uuid.New(), "bag")
	require.NoError(t, err)
	return item
}

func stockRow(t *testing.T, siteID, itemID uuid.UUID, qty int64) *stock.SiteStock {
	row, err := stock.NewSiteStock(siteID, itemID)
	require.NoError(t, err)
	require.NoError(t, row.Add(decimal.NewFromInt(qty)))
	return row
}

func newConsumptionService(
	consumptionRepo *MockDailyConsumptionRepository,
	stockRepo *MockSiteStockRepository,
	siteRepo *MockSiteRepository,
	itemRepo *MockItemRepository,
) *ConsumptionService {
	return NewConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo,
		NewNoOpTransactionScope(stockRepo, consumptionRepo))
}

// =============================================================================
// ConsumptionService Tests
// =============================================================================

func TestConsumptionService_Post(t *testing.T) {
	t.Run("deducts stock and saves the record", func(t *testing.T) {
		consumptionRepo := new(MockDailyConsumptionRepository)
		stockRepo := new(MockSiteStockRepository)
		siteRepo := new(MockSiteRepository)
		itemRepo := new(MockItemRepository)
		svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

		site := activeSite(t)
		item := cementItem(t)
		row := stockRow(t, site.ID, item.ID, 100)

		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
		consumptionRepo.On("ExistsBySiteAndDate", mock.Anything, site.ID, mock.AnythingOfType("time.Time")).Return(false, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{*item}, nil)
		stockRepo.On("FindForUpdate", mock.Anything, site.ID, item.ID).Return(row, nil)
		stockRepo.On("Save", mock.Anything, row).Return(nil)
		consumptionRepo.On("Save", mock.Anything, mock.AnythingOfType("*stock.DailyConsumption")).Return(nil)

		resp, err := svc.Post(context.Background(), uuid.New(), PostConsumptionRequest{
			SiteID: site.ID,
			Date:   time.Now(),
			Lines: []ConsumptionLineRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(40), Purpose: "Slab casting, 3rd floor"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "posted", resp.Status)
		assert.Equal(t, "OPC 53 Grade Cement", resp.Lines[0].ItemName)
		assert.True(t, row.Quantity.Equal(decimal.NewFromInt(60)))
	})

	t.Run("rolls back when one line exceeds stock", func(t *testing.T) {
		consumptionRepo := new(MockDailyConsumptionRepository)
		stockRepo := new(MockSiteStockRepository)
		siteRepo := new(MockSiteRepository)
		itemRepo := new(MockItemRepository)
		svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

		site := activeSite(t)
		item := cementItem(t)
		row := stockRow(t, site.ID, item.ID, 25)

		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
		consumptionRepo.On("ExistsBySiteAndDate", mock.Anything, site.ID, mock.AnythingOfType("time.Time")).Return(false, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{*item}, nil)
		stockRepo.On("FindForUpdate", mock.Anything, site.ID, item.ID).Return(row, nil)

		_, err := svc.Post(context.Background(), uuid.New(), PostConsumptionRequest{
			SiteID: site.ID,
			Date:   time.Now(),
			Lines: []ConsumptionLineRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(40)},
			},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		stockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		consumptionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("treats a missing stock row as zero stock", func(t *testing.T) {
		consumptionRepo := new(MockDailyConsumptionRepository)
		stockRepo := new(MockSiteStockRepository)
		siteRepo := new(MockSiteRepository)
		itemRepo := new(MockItemRepository)
		svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

		site := activeSite(t)
		item := cementItem(t)

		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
		consumptionRepo.On("ExistsBySiteAndDate", mock.Anything, site.ID, mock.AnythingOfType("time.Time")).Return(false, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{*item}, nil)
		stockRepo.On("FindForUpdate", mock.Anything, site.ID, item.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.Post(context.Background(), uuid.New(), PostConsumptionRequest{
			SiteID: site.ID,
			Date:   time.Now(),
			Lines: []ConsumptionLineRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(5)},
			},
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects a second posting for the same date", func(t *testing.T) {
		consumptionRepo := new(MockDailyConsumptionRepository)
		stockRepo := new(MockSiteStockRepository)
		siteRepo := new(MockSiteRepository)
		itemRepo := new(MockItemRepository)
		svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

		site := activeSite(t)
		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
		consumptionRepo.On("ExistsBySiteAndDate", mock.Anything, site.ID, mock.AnythingOfType("time.Time")).Return(true, nil)

		_, err := svc.Post(context.Background(), uuid.New(), PostConsumptionRequest{
			SiteID: site.ID,
			Date:   time.Now(),
			Lines: []ConsumptionLineRequest{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_POSTED", domainErr.Code)
	})

	t.Run("rejects posting for a closed site", func(t *testing.T) {
		consumptionRepo := new(MockDailyConsumptionRepository)
		stockRepo := new(MockSiteStockRepository)
		siteRepo := new(MockSiteRepository)
		itemRepo := new(MockItemRepository)
		svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

		site := activeSite(t)
		require.NoError(t, site.Close())
		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)

		_, err := svc.Post(context.Background(), uuid.New(), PostConsumptionRequest{
			SiteID: site.ID,
			Date:   time.Now(),
			Lines: []ConsumptionLineRequest{
				{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SITE_NOT_ACTIVE", domainErr.Code)
	})
}

func TestConsumptionService_Amend(t *testing.T) {
	t.Run("reverses old lines and applies new ones", func(t *testing.T) {
		consumptionRepo := new(MockDailyConsumptionRepository)
		stockRepo := new(MockSiteStockRepository)
		siteRepo := new(MockSiteRepository)
		itemRepo := new(MockItemRepository)
		svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

		site := activeSite(t)
		item := cementItem(t)
		amendedBy := uuid.New()

		record, err := stock.NewDailyConsumption(site.ID, uuid.New(), time.Now().AddDate(0, 0, -1), "")
		require.NoError(t, err)
		require.NoError(t, record.AddLine(item.ID, item.Name, item.Unit, decimal.NewFromInt(40), ""))

		// 60 on hand after the original posting of 40
		row := stockRow(t, site.ID, item.ID, 60)

		consumptionRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{*item}, nil)
		stockRepo.On("FindForUpdate", mock.Anything, site.ID, item.ID).Return(row, nil)
		stockRepo.On("Save", mock.Anything, row).Return(nil)
		consumptionRepo.On("ReplaceLines", mock.Anything, record).Return(nil)

		resp, err := svc.Amend(context.Background(), record.ID, amendedBy, AmendConsumptionRequest{
			Lines: []ConsumptionLineRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(55), Purpose: "Corrected slab quantity"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "amended", resp.Status)
		assert.Equal(t, &amendedBy, resp.AmendedBy)
		// 60 + 40 reversed - 55 re-applied
		assert.True(t, row.Quantity.Equal(decimal.NewFromInt(45)))
	})

	t.Run("rolls back when the new lines exceed restored stock", func(t *testing.T) {
		consumptionRepo := new(MockDailyConsumptionRepository)
		stockRepo := new(MockSiteStockRepository)
		siteRepo := new(MockSiteRepository)
		itemRepo := new(MockItemRepository)
		svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

		site := activeSite(t)
		item := cementItem(t)

		record, err := stock.NewDailyConsumption(site.ID, uuid.New(), time.Now().AddDate(0, 0, -1), "")
		require.NoError(t, err)
		require.NoError(t, record.AddLine(item.ID, item.Name, item.Unit, decimal.NewFromInt(10), ""))

		row := stockRow(t, site.ID, item.ID, 5)

		consumptionRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{*item}, nil)
		stockRepo.On("FindForUpdate", mock.Anything, site.ID, item.ID).Return(row, nil)
		stockRepo.On("Save", mock.Anything, row).Return(nil)

		_, err = svc.Amend(context.Background(), record.ID, uuid.New(), AmendConsumptionRequest{
			Lines: []ConsumptionLineRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(100)},
			},
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		consumptionRepo.AssertNotCalled(t, "ReplaceLines", mock.Anything, mock.Anything)
	})
}

func TestConsumptionService_ListBySiteAndRange(t *testing.T) {
	consumptionRepo := new(MockDailyConsumptionRepository)
	stockRepo := new(MockSiteStockRepository)
	siteRepo := new(MockSiteRepository)
	itemRepo := new(MockItemRepository)
	svc := newConsumptionService(consumptionRepo, stockRepo, siteRepo, itemRepo)

	siteID := uuid.New()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("rejects an inverted range", func(t *testing.T) {
		_, err := svc.ListBySiteAndRange(context.Background(), siteID, to, from)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RANGE", domainErr.Code)
	})

	t.Run("returns records in range", func(t *testing.T) {
		record, err := stock.NewDailyConsumption(siteID, uuid.New(), from.AddDate(0, 0, 4), "")
		require.NoError(t, err)
		consumptionRepo.On("FindBySiteAndRange", mock.Anything, siteID, from, to).
			Return([]*stock.DailyConsumption{record}, nil)

		records, err := svc.ListBySiteAndRange(context.Background(), siteID, from, to)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, siteID, records[0].SiteID)
	})
}

// =============================================================================
// StockService Tests
// =============================================================================

func TestStockService_OnHand(t *testing.T) {
	stockRepo := new(MockSiteStockRepository)
	svc := NewStockService(stockRepo)

	siteID := uuid.New()

	t.Run("returns the row quantity", func(t *testing.T) {
		itemID := uuid.New()
		row := stockRow(t, siteID, itemID, 75)
		stockRepo.On("FindBySiteAndItem", mock.Anything, siteID, itemID).Return(row, nil)

		qty, err := svc.OnHand(context.Background(), siteID, itemID)
		require.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(75)))
	})

	t.Run("returns zero for an item never received", func(t *testing.T) {
		itemID := uuid.New()
		stockRepo.On("FindBySiteAndItem", mock.Anything, siteID, itemID).Return(nil, shared.ErrNotFound)

		qty, err := svc.OnHand(context.Background(), siteID, itemID)
		require.NoError(t, err)
		assert.True(t, qty.IsZero())
	})
}

func TestStockService_ListBySite(t *testing.T) {
	stockRepo := new(MockSiteStockRepository)
	svc := NewStockService(stockRepo)

	siteID := uuid.New()
	rows := []*stock.SiteStock{
		stockRow(t, siteID, uuid.New(), 100),
		stockRow(t, siteID, uuid.New(), 30),
	}

	stockRepo.On("FindBySite", mock.Anything, siteID, mock.AnythingOfType("shared.Filter")).Return(rows, nil)
	stockRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	result, err := svc.ListBySite(context.Background(), siteID, shared.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.Len(t, result.Items, 2)
}
