package procurement

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
	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockIndentRepository struct {
	mock.Mock
}

func (m *MockIndentRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Indent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Indent), args.Error(1)
}

func (m *MockIndentRepository) FindByNumber(ctx context.Context, indentNumber string) (*procurement.Indent, error) {
	args := m.Called(ctx, indentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Indent), args.Error(1)
}

func (m *MockIndentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*procurement.Indent, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*procurement.Indent), args.Error(1)
}

func (m *MockIndentRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*procurement.Indent, error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).([]*procurement.Indent), args.Error(1)
}

func (m *MockIndentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIndentRepository) CountByStatus(ctx context.Context, status procurement.IndentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIndentRepository) ExistsByNumber(ctx context.Context, indentNumber string) (bool, error) {
	args := m.Called(ctx, indentNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockIndentRepository) NextSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIndentRepository) Save(ctx context.Context, indent *procurement.Indent) error {
	args := m.Called(ctx, indent)
	return args.Error(0)
}

func (m *MockIndentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
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

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]masterdata.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]masterdata.Item, error) {
	args := m.Called(ctx, categoryID, filter)
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

func newTestIndentService() (*IndentService, *MockIndentRepository, *MockSiteRepository, *MockItemRepository) {
	indentRepo := new(MockIndentRepository)
	siteRepo := new(MockSiteRepository)
	itemRepo := new(MockItemRepository)
	return NewIndentService(indentRepo, siteRepo, itemRepo), indentRepo, siteRepo, itemRepo
}

func activeSite(t *testing.T) *masterdata.Site {
	site, err := masterdata.NewSite("SITE-PNQ-01", "Hinjewadi Tower A", uuid.New(), uuid.New(), time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	return site
}

func cementItem(t *testing.T) masterdata.Item {
	item, err := masterdata.NewItem("CEM-53", "OPC 53 Cement", uuid.New(), "bag")
	require.NoError(t, err)
	return *item
}

func submittedIndent(t *testing.T) *procurement.Indent {
	indent, err := procurement.NewIndent("IND-000001", uuid.New(), uuid.New(), nil, "")
	require.NoError(t, err)
	require.NoError(t, indent.AddItem(uuid.New(), "OPC 53 Cement", "CEM-53", "bag", decimal.NewFromInt(100)))
	require.NoError(t, indent.Submit())
	return indent
}

// =============================================================================
// IndentService Tests
// =============================================================================

func TestIndentService_Create(t *testing.T) {
	t.Run("raises draft indent", func(t *testing.T) {
		svc, indentRepo, siteRepo, itemRepo := newTestIndentService()
		site := activeSite(t)
		item := cementItem(t)

		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{item}, nil)
		indentRepo.On("NextSequence", mock.Anything).Return(int64(42), nil)
		indentRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Indent")).Return(nil)

		resp, err := svc.Create(context.Background(), uuid.New(), CreateIndentRequest{
			SiteID: site.ID,
			Items:  []IndentItemRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(100)}},
		})

		require.NoError(t, err)
		assert.Equal(t, "IND-000042", resp.IndentNumber)
		assert.Equal(t, "draft", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "CEM-53", resp.Items[0].ItemCode)
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		svc, _, siteRepo, itemRepo := newTestIndentService()
		site := activeSite(t)
		itemID := uuid.New()

		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{itemID}).Return([]masterdata.Item{}, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateIndentRequest{
			SiteID: site.ID,
			Items:  []IndentItemRequest{{ItemID: itemID, Quantity: decimal.NewFromInt(1)}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects inactive item", func(t *testing.T) {
		svc, _, siteRepo, itemRepo := newTestIndentService()
		site := activeSite(t)
		item := cementItem(t)
		require.NoError(t, item.Deactivate())

		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{item}, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateIndentRequest{
			SiteID: site.ID,
			Items:  []IndentItemRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(1)}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_INACTIVE", domainErr.Code)
	})

	t.Run("rejects indent on a closed site", func(t *testing.T) {
		svc, _, siteRepo, _ := newTestIndentService()
		site := activeSite(t)
		require.NoError(t, site.Close())

		siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateIndentRequest{
			SiteID: site.ID,
			Items:  []IndentItemRequest{{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SITE_NOT_ACTIVE", domainErr.Code)
	})
}

func TestIndentService_ApprovalFlow(t *testing.T) {
	svc, indentRepo, _, _ := newTestIndentService()
	indent := submittedIndent(t)

	indentRepo.On("FindByID", mock.Anything, indent.ID).Return(indent, nil)
	indentRepo.On("Save", mock.Anything, indent).Return(nil)

	l1 := uuid.New()
	resp, err := svc.ApproveL1(context.Background(), indent.ID, l1)
	require.NoError(t, err)
	assert.Equal(t, "approved_l1", resp.Status)

	// second approval by the same user must fail
	_, err = svc.ApproveL2(context.Background(), indent.ID, l1)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SAME_APPROVER", domainErr.Code)

	resp, err = svc.ApproveL2(context.Background(), indent.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}

func TestIndentService_Reject(t *testing.T) {
	svc, indentRepo, _, _ := newTestIndentService()
	indent := submittedIndent(t)

	indentRepo.On("FindByID", mock.Anything, indent.ID).Return(indent, nil)
	indentRepo.On("Save", mock.Anything, indent).Return(nil)

	resp, err := svc.Reject(context.Background(), indent.ID, uuid.New(), "budget exceeded for the month")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, "budget exceeded for the month", resp.RejectReason)
}

func TestIndentService_List(t *testing.T) {
	t.Run("scopes the total to the site", func(t *testing.T) {
		svc, indentRepo, _, _ := newTestIndentService()
		siteID := uuid.New()
		indent := submittedIndent(t)

		indentRepo.On("FindBySite", mock.Anything, siteID, mock.Anything).Return([]*procurement.Indent{indent}, nil)
		indentRepo.On("Count", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["site_id"] == siteID
		})).Return(int64(1), nil)

		result, err := svc.List(context.Background(), &siteID, shared.Filter{Page: 1, PageSize: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		indentRepo.AssertExpectations(t)
	})

	t.Run("counts the whole table when unscoped", func(t *testing.T) {
		svc, indentRepo, _, _ := newTestIndentService()
		indent := submittedIndent(t)

		indentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]*procurement.Indent{indent}, nil)
		indentRepo.On("Count", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			_, scoped := f.Filters["site_id"]
			return !scoped
		})).Return(int64(240), nil)

		result, err := svc.List(context.Background(), nil, shared.Filter{Page: 1, PageSize: 20})

		require.NoError(t, err)
		assert.Equal(t, int64(240), result.Total)
	})
}

func TestIndentService_Delete(t *testing.T) {
	svc, indentRepo, _, _ := newTestIndentService()
	indent := submittedIndent(t)

	indentRepo.On("FindByID", mock.Anything, indent.ID).Return(indent, nil)

	err := svc.Delete(context.Background(), indent.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_DRAFT", domainErr.Code)
	indentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// =============================================================================
// PurchaseOrderService Tests
// =============================================================================

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByCode(ctx context.Context, code string) (*masterdata.Vendor, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Vendor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]masterdata.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) CountByStatus(ctx context.Context, status masterdata.VendorStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *masterdata.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestPurchaseOrderService_Create(t *testing.T) {
	t.Run("creates order from approved indent and marks it ordered", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		indentRepo := new(MockIndentRepository)
		vendorRepo := new(MockVendorRepository)
		itemRepo := new(MockItemRepository)
		svc := NewPurchaseOrderService(orderRepo, indentRepo, vendorRepo, itemRepo, NewNoOpTransactionScope(orderRepo, indentRepo, new(MockInwardBillRepository), new(MockSiteStockRepository)))

		vendor, err := masterdata.NewVendor("VND-001", "Shree Traders", masterdata.VendorTypeSupplier)
		require.NoError(t, err)
		item := cementItem(t)

		indent := submittedIndent(t)
		require.NoError(t, indent.ApproveL1(uuid.New()))
		require.NoError(t, indent.ApproveL2(uuid.New()))

		vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
		indentRepo.On("FindByID", mock.Anything, indent.ID).Return(indent, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{item}, nil)
		orderRepo.On("NextSequence", mock.Anything).Return(int64(5), nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)
		indentRepo.On("Save", mock.Anything, indent).Return(nil)

		resp, err := svc.Create(context.Background(), uuid.New(), CreatePurchaseOrderRequest{
			SiteID:         indent.SiteID,
			VendorID:       vendor.ID,
			SourceIndentID: &indent.ID,
			OrderDate:      time.Now(),
			Items: []PurchaseOrderItemRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(100), Rate: decimal.NewFromFloat(62.5)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PO-000005", resp.OrderNumber)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(6250)))
		assert.Equal(t, procurement.IndentStatusOrdered, indent.Status)
	})

	t.Run("fails the whole conversion when the indent update fails", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		indentRepo := new(MockIndentRepository)
		vendorRepo := new(MockVendorRepository)
		itemRepo := new(MockItemRepository)
		svc := NewPurchaseOrderService(orderRepo, indentRepo, vendorRepo, itemRepo, NewNoOpTransactionScope(orderRepo, indentRepo, new(MockInwardBillRepository), new(MockSiteStockRepository)))

		vendor, err := masterdata.NewVendor("VND-001", "Shree Traders", masterdata.VendorTypeSupplier)
		require.NoError(t, err)
		item := cementItem(t)

		indent := submittedIndent(t)
		require.NoError(t, indent.ApproveL1(uuid.New()))
		require.NoError(t, indent.ApproveL2(uuid.New()))

		vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
		indentRepo.On("FindByID", mock.Anything, indent.ID).Return(indent, nil)
		itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{item.ID}).Return([]masterdata.Item{item}, nil)
		orderRepo.On("NextSequence", mock.Anything).Return(int64(6), nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)
		indentRepo.On("Save", mock.Anything, indent).Return(shared.ErrConcurrencyConflict)

		_, err = svc.Create(context.Background(), uuid.New(), CreatePurchaseOrderRequest{
			SiteID:         indent.SiteID,
			VendorID:       vendor.ID,
			SourceIndentID: &indent.ID,
			OrderDate:      time.Now(),
			Items: []PurchaseOrderItemRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(100), Rate: decimal.NewFromFloat(62.5)},
			},
		})

		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		indentRepo.AssertCalled(t, "Save", mock.Anything, indent)
	})

	t.Run("rejects order against unapproved indent", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		indentRepo := new(MockIndentRepository)
		vendorRepo := new(MockVendorRepository)
		itemRepo := new(MockItemRepository)
		svc := NewPurchaseOrderService(orderRepo, indentRepo, vendorRepo, itemRepo, NewNoOpTransactionScope(orderRepo, indentRepo, new(MockInwardBillRepository), new(MockSiteStockRepository)))

		vendor, err := masterdata.NewVendor("VND-001", "Shree Traders", masterdata.VendorTypeSupplier)
		require.NoError(t, err)
		indent := submittedIndent(t)

		vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
		indentRepo.On("FindByID", mock.Anything, indent.ID).Return(indent, nil)

		_, err = svc.Create(context.Background(), uuid.New(), CreatePurchaseOrderRequest{
			SiteID:         indent.SiteID,
			VendorID:       vendor.ID,
			SourceIndentID: &indent.ID,
			OrderDate:      time.Now(),
			Items:          []PurchaseOrderItemRequest{{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INDENT_NOT_APPROVED", domainErr.Code)
	})

	t.Run("rejects blocked vendor", func(t *testing.T) {
		orderRepo := new(MockPurchaseOrderRepository)
		indentRepo := new(MockIndentRepository)
		vendorRepo := new(MockVendorRepository)
		itemRepo := new(MockItemRepository)
		svc := NewPurchaseOrderService(orderRepo, indentRepo, vendorRepo, itemRepo, NewNoOpTransactionScope(orderRepo, indentRepo, new(MockInwardBillRepository), new(MockSiteStockRepository)))

		vendor, err := masterdata.NewVendor("VND-002", "Defaulting Traders", masterdata.VendorTypeSupplier)
		require.NoError(t, err)
		require.NoError(t, vendor.Block())

		vendorRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)

		_, err = svc.Create(context.Background(), uuid.New(), CreatePurchaseOrderRequest{
			SiteID:    uuid.New(),
			VendorID:  vendor.ID,
			OrderDate: time.Now(),
			Items:     []PurchaseOrderItemRequest{{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1)}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VENDOR_NOT_ACTIVE", domainErr.Code)
	})
}
