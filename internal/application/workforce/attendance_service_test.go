package workforce

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
	"github.com/siteops/backend/internal/domain/workforce"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockManpowerRepository struct {
	mock.Mock
}

func (m *MockManpowerRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Manpower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Manpower), args.Error(1)
}

func (m *MockManpowerRepository) FindByCode(ctx context.Context, code string) (*workforce.Manpower, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Manpower), args.Error(1)
}

func (m *MockManpowerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*workforce.Manpower, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*workforce.Manpower), args.Error(1)
}

func (m *MockManpowerRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*workforce.Manpower, error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).([]*workforce.Manpower), args.Error(1)
}

func (m *MockManpowerRepository) FindActiveBySite(ctx context.Context, siteID uuid.UUID) ([]*workforce.Manpower, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]*workforce.Manpower), args.Error(1)
}

func (m *MockManpowerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*workforce.Manpower, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*workforce.Manpower), args.Error(1)
}

func (m *MockManpowerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockManpowerRepository) CountBySite(ctx context.Context, siteID uuid.UUID) (int64, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockManpowerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockManpowerRepository) Save(ctx context.Context, worker *workforce.Manpower) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockManpowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Attendance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindByManpowerAndDate(ctx context.Context, manpowerID uuid.UUID, date time.Time) (*workforce.Attendance, error) {
	args := m.Called(ctx, manpowerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) ([]*workforce.Attendance, error) {
	args := m.Called(ctx, siteID, date)
	return args.Get(0).([]*workforce.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindByManpowerAndRange(ctx context.Context, manpowerID uuid.UUID, from, to time.Time) ([]*workforce.Attendance, error) {
	args := m.Called(ctx, manpowerID, from, to)
	return args.Get(0).([]*workforce.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindBySiteAndRange(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]*workforce.Attendance, error) {
	args := m.Called(ctx, siteID, from, to)
	return args.Get(0).([]*workforce.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ExistsByManpowerAndDate(ctx context.Context, manpowerID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, manpowerID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttendanceRepository) Save(ctx context.Context, attendance *workforce.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) SaveAll(ctx context.Context, records []*workforce.Attendance) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindByManpower(ctx context.Context, manpowerID uuid.UUID) ([]*workforce.Transfer, error) {
	args := m.Called(ctx, manpowerID)
	return args.Get(0).([]*workforce.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*workforce.Transfer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*workforce.Transfer), args.Error(1)
}

func (m *MockTransferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransferRepository) Save(ctx context.Context, transfer *workforce.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

// =============================================================================
// Test helpers
// =============================================================================

func activeWorker(t *testing.T, siteID uuid.UUID) *workforce.Manpower {
	worker, err := workforce.NewManpower("WKR-001", "Ramesh Kumar", workforce.TradeMason, siteID, nil, decimal.NewFromInt(800), time.Now().AddDate(0, -6, 0))
	require.NoError(t, err)
	return worker
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}

// =============================================================================
// AttendanceService Tests
// =============================================================================

func TestAttendanceService_Mark(t *testing.T) {
	t.Run("marks present with overtime", func(t *testing.T) {
		attendanceRepo := new(MockAttendanceRepository)
		manpowerRepo := new(MockManpowerRepository)
		svc := NewAttendanceService(attendanceRepo, manpowerRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, new(MockTransferRepository)))

		siteID := uuid.New()
		worker := activeWorker(t, siteID)

		manpowerRepo.On("FindByID", mock.Anything, worker.ID).Return(worker, nil)
		attendanceRepo.On("FindByManpowerAndDate", mock.Anything, worker.ID, mock.AnythingOfType("time.Time")).Return(nil, shared.ErrNotFound)
		attendanceRepo.On("Save", mock.Anything, mock.AnythingOfType("*workforce.Attendance")).Return(nil)

		resp, err := svc.Mark(context.Background(), uuid.New(), MarkAttendanceRequest{
			ManpowerID:    worker.ID,
			Date:          yesterday(),
			Mark:          "present",
			OvertimeHours: decimal.NewFromInt(2),
		})

		require.NoError(t, err)
		assert.Equal(t, "present", resp.Mark)
		assert.Equal(t, siteID, resp.SiteID)
	})

	t.Run("revises an already marked day in place", func(t *testing.T) {
		attendanceRepo := new(MockAttendanceRepository)
		manpowerRepo := new(MockManpowerRepository)
		svc := NewAttendanceService(attendanceRepo, manpowerRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, new(MockTransferRepository)))

		worker := activeWorker(t, uuid.New())
		existing, err := workforce.NewAttendance(worker.ID, worker.SiteID, uuid.New(), yesterday(), workforce.AttendancePresent, decimal.Zero)
		require.NoError(t, err)
		priorVersion := existing.Version

		manpowerRepo.On("FindByID", mock.Anything, worker.ID).Return(worker, nil)
		attendanceRepo.On("FindByManpowerAndDate", mock.Anything, worker.ID, mock.AnythingOfType("time.Time")).Return(existing, nil)
		attendanceRepo.On("Save", mock.Anything, existing).Return(nil)

		supervisor := uuid.New()
		resp, err := svc.Mark(context.Background(), supervisor, MarkAttendanceRequest{
			ManpowerID: worker.ID,
			Date:       yesterday(),
			Mark:       "half_day",
			Remark:     "left after lunch",
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
		assert.Equal(t, "half_day", resp.Mark)
		assert.Equal(t, workforce.AttendanceHalfDay, existing.Mark)
		assert.Equal(t, supervisor, existing.MarkedBy)
		assert.Greater(t, existing.Version, priorVersion)
		attendanceRepo.AssertExpectations(t)
	})

	t.Run("rejects exited worker", func(t *testing.T) {
		attendanceRepo := new(MockAttendanceRepository)
		manpowerRepo := new(MockManpowerRepository)
		svc := NewAttendanceService(attendanceRepo, manpowerRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, new(MockTransferRepository)))

		worker := activeWorker(t, uuid.New())
		require.NoError(t, worker.Exit(time.Now()))
		manpowerRepo.On("FindByID", mock.Anything, worker.ID).Return(worker, nil)

		_, err := svc.Mark(context.Background(), uuid.New(), MarkAttendanceRequest{
			ManpowerID: worker.ID,
			Date:       yesterday(),
			Mark:       "present",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "WORKER_NOT_ACTIVE", domainErr.Code)
	})
}

func TestAttendanceService_BulkMark(t *testing.T) {
	t.Run("marks whole muster in one call", func(t *testing.T) {
		attendanceRepo := new(MockAttendanceRepository)
		manpowerRepo := new(MockManpowerRepository)
		svc := NewAttendanceService(attendanceRepo, manpowerRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, new(MockTransferRepository)))

		siteID := uuid.New()
		w1 := activeWorker(t, siteID)
		w2, err := workforce.NewManpower("WKR-002", "Suresh Patil", workforce.TradeHelper, siteID, nil, decimal.NewFromInt(600), time.Now().AddDate(0, -3, 0))
		require.NoError(t, err)

		manpowerRepo.On("FindByIDs", mock.Anything, []uuid.UUID{w1.ID, w2.ID}).Return([]*workforce.Manpower{w1, w2}, nil)
		attendanceRepo.On("FindByManpowerAndDate", mock.Anything, mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		attendanceRepo.On("SaveAll", mock.Anything, mock.AnythingOfType("[]*workforce.Attendance")).Return(nil)

		responses, err := svc.BulkMark(context.Background(), uuid.New(), BulkMarkAttendanceRequest{
			SiteID: siteID,
			Date:   yesterday(),
			Entries: []BulkAttendanceEntry{
				{ManpowerID: w1.ID, Mark: "present"},
				{ManpowerID: w2.ID, Mark: "half_day"},
			},
		})

		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.Equal(t, "half_day", responses[1].Mark)
		attendanceRepo.AssertExpectations(t)
	})

	t.Run("revises already marked workers and inserts the rest", func(t *testing.T) {
		attendanceRepo := new(MockAttendanceRepository)
		manpowerRepo := new(MockManpowerRepository)
		svc := NewAttendanceService(attendanceRepo, manpowerRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, new(MockTransferRepository)))

		siteID := uuid.New()
		w1 := activeWorker(t, siteID)
		w2, err := workforce.NewManpower("WKR-002", "Suresh Patil", workforce.TradeHelper, siteID, nil, decimal.NewFromInt(600), time.Now().AddDate(0, -3, 0))
		require.NoError(t, err)

		existing, err := workforce.NewAttendance(w1.ID, siteID, uuid.New(), yesterday(), workforce.AttendancePresent, decimal.Zero)
		require.NoError(t, err)

		manpowerRepo.On("FindByIDs", mock.Anything, []uuid.UUID{w1.ID, w2.ID}).Return([]*workforce.Manpower{w1, w2}, nil)
		attendanceRepo.On("FindByManpowerAndDate", mock.Anything, w1.ID, mock.Anything).Return(existing, nil)
		attendanceRepo.On("FindByManpowerAndDate", mock.Anything, w2.ID, mock.Anything).Return(nil, shared.ErrNotFound)
		attendanceRepo.On("Save", mock.Anything, existing).Return(nil)
		attendanceRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(records []*workforce.Attendance) bool {
			return len(records) == 1 && records[0].ManpowerID == w2.ID
		})).Return(nil)

		responses, err := svc.BulkMark(context.Background(), uuid.New(), BulkMarkAttendanceRequest{
			SiteID: siteID,
			Date:   yesterday(),
			Entries: []BulkAttendanceEntry{
				{ManpowerID: w1.ID, Mark: "absent"},
				{ManpowerID: w2.ID, Mark: "present"},
			},
		})

		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.Equal(t, existing.ID, responses[0].ID)
		assert.Equal(t, "absent", responses[0].Mark)
		assert.Equal(t, workforce.AttendanceAbsent, existing.Mark)
		attendanceRepo.AssertExpectations(t)
	})

	t.Run("rejects worker from another site", func(t *testing.T) {
		attendanceRepo := new(MockAttendanceRepository)
		manpowerRepo := new(MockManpowerRepository)
		svc := NewAttendanceService(attendanceRepo, manpowerRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, new(MockTransferRepository)))

		siteID := uuid.New()
		outsider := activeWorker(t, uuid.New())

		manpowerRepo.On("FindByIDs", mock.Anything, []uuid.UUID{outsider.ID}).Return([]*workforce.Manpower{outsider}, nil)

		_, err := svc.BulkMark(context.Background(), uuid.New(), BulkMarkAttendanceRequest{
			SiteID:  siteID,
			Date:    yesterday(),
			Entries: []BulkAttendanceEntry{{ManpowerID: outsider.ID, Mark: "present"}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SITE_MISMATCH", domainErr.Code)
		attendanceRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate entries in the sheet", func(t *testing.T) {
		attendanceRepo := new(MockAttendanceRepository)
		manpowerRepo := new(MockManpowerRepository)
		svc := NewAttendanceService(attendanceRepo, manpowerRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, new(MockTransferRepository)))

		workerID := uuid.New()
		_, err := svc.BulkMark(context.Background(), uuid.New(), BulkMarkAttendanceRequest{
			SiteID: uuid.New(),
			Date:   yesterday(),
			Entries: []BulkAttendanceEntry{
				{ManpowerID: workerID, Mark: "present"},
				{ManpowerID: workerID, Mark: "absent"},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_WORKER", domainErr.Code)
	})
}

// =============================================================================
// TransferService Tests
// =============================================================================

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

func TestTransferService_Transfer(t *testing.T) {
	transferRepo := new(MockTransferRepository)
	manpowerRepo := new(MockManpowerRepository)
	attendanceRepo := new(MockAttendanceRepository)
	siteRepo := new(MockSiteRepository)
	svc := NewTransferService(transferRepo, manpowerRepo, siteRepo, NewNoOpTransactionScope(manpowerRepo, attendanceRepo, transferRepo))

	fromSite := uuid.New()
	worker := activeWorker(t, fromSite)
	toSite, err := masterdata.NewSite("SITE-MUM-02", "Andheri Wing B", uuid.New(), uuid.New(), time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)

	manpowerRepo.On("FindByID", mock.Anything, worker.ID).Return(worker, nil)
	siteRepo.On("FindByID", mock.Anything, toSite.ID).Return(toSite, nil)
	manpowerRepo.On("Save", mock.Anything, worker).Return(nil)
	transferRepo.On("Save", mock.Anything, mock.AnythingOfType("*workforce.Transfer")).Return(nil)

	resp, err := svc.Transfer(context.Background(), worker.ID, uuid.New(), TransferManpowerRequest{
		ToSiteID:     toSite.ID,
		TransferDate: yesterday(),
		Reason:       "slab work completed",
	})

	require.NoError(t, err)
	assert.Equal(t, fromSite, resp.FromSiteID)
	assert.Equal(t, toSite.ID, resp.ToSiteID)
	assert.Equal(t, toSite.ID, worker.SiteID)
	transferRepo.AssertExpectations(t)
}
