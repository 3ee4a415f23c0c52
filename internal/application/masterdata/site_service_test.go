package masterdata

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
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

type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Zone), args.Error(1)
}

func (m *MockZoneRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Zone, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]masterdata.Zone), args.Error(1)
}

func (m *MockZoneRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockZoneRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockZoneRepository) Save(ctx context.Context, zone *masterdata.Zone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.City), args.Error(1)
}

func (m *MockCityRepository) FindByState(ctx context.Context, stateID uuid.UUID, filter shared.Filter) ([]masterdata.City, error) {
	args := m.Called(ctx, stateID, filter)
	return args.Get(0).([]masterdata.City), args.Error(1)
}

func (m *MockCityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.City, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]masterdata.City), args.Error(1)
}

func (m *MockCityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCityRepository) ExistsByName(ctx context.Context, stateID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, stateID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityRepository) Save(ctx context.Context, city *masterdata.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// SiteService Tests
// =============================================================================

func newTestSiteService() (*SiteService, *MockSiteRepository, *MockZoneRepository, *MockCityRepository) {
	siteRepo := new(MockSiteRepository)
	zoneRepo := new(MockZoneRepository)
	cityRepo := new(MockCityRepository)
	return NewSiteService(siteRepo, zoneRepo, cityRepo), siteRepo, zoneRepo, cityRepo
}

func testZone(t *testing.T) *masterdata.Zone {
	zone, err := masterdata.NewZone("West Zone")
	require.NoError(t, err)
	return zone
}

func testCity(t *testing.T) *masterdata.City {
	city, err := masterdata.NewCity(uuid.New(), "Pune")
	require.NoError(t, err)
	return city
}

func testSite(t *testing.T) *masterdata.Site {
	site, err := masterdata.NewSite("SITE-PNQ-01", "Hinjewadi Tower A", uuid.New(), uuid.New(), time.Now().AddDate(0, -2, 0))
	require.NoError(t, err)
	return site
}

func TestSiteService_Create(t *testing.T) {
	t.Run("creates site", func(t *testing.T) {
		svc, siteRepo, zoneRepo, cityRepo := newTestSiteService()
		zone := testZone(t)
		city := testCity(t)

		siteRepo.On("ExistsByCode", mock.Anything, "SITE-PNQ-01").Return(false, nil)
		zoneRepo.On("FindByID", mock.Anything, zone.ID).Return(zone, nil)
		cityRepo.On("FindByID", mock.Anything, city.ID).Return(city, nil)
		siteRepo.On("Save", mock.Anything, mock.AnythingOfType("*masterdata.Site")).Return(nil)

		resp, err := svc.Create(context.Background(), CreateSiteRequest{
			Code:      "SITE-PNQ-01",
			Name:      "Hinjewadi Tower A",
			ZoneID:    zone.ID,
			CityID:    city.ID,
			StartDate: time.Now(),
		})

		require.NoError(t, err)
		assert.Equal(t, "SITE-PNQ-01", resp.Code)
		assert.Equal(t, "active", resp.Status)
		siteRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		svc, siteRepo, _, _ := newTestSiteService()
		siteRepo.On("ExistsByCode", mock.Anything, "SITE-PNQ-01").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateSiteRequest{
			Code:      "SITE-PNQ-01",
			Name:      "Hinjewadi Tower A",
			ZoneID:    uuid.New(),
			CityID:    uuid.New(),
			StartDate: time.Now(),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown zone", func(t *testing.T) {
		svc, siteRepo, zoneRepo, _ := newTestSiteService()
		zoneID := uuid.New()

		siteRepo.On("ExistsByCode", mock.Anything, "SITE-PNQ-02").Return(false, nil)
		zoneRepo.On("FindByID", mock.Anything, zoneID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(context.Background(), CreateSiteRequest{
			Code:      "SITE-PNQ-02",
			Name:      "Tower B",
			ZoneID:    zoneID,
			CityID:    uuid.New(),
			StartDate: time.Now(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSiteService_Hold(t *testing.T) {
	svc, siteRepo, _, _ := newTestSiteService()
	site := testSite(t)

	siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
	siteRepo.On("Save", mock.Anything, site).Return(nil)

	resp, err := svc.Hold(context.Background(), site.ID)
	require.NoError(t, err)
	assert.Equal(t, "on_hold", resp.Status)

	// holding twice is a domain error and must not save again
	siteRepo.On("FindByID", mock.Anything, site.ID).Return(site, nil)
	_, err = svc.Hold(context.Background(), site.ID)
	assert.Error(t, err)
}

func TestSiteService_List(t *testing.T) {
	svc, siteRepo, _, _ := newTestSiteService()
	site := testSite(t)

	siteRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]masterdata.Site{*site}, nil)
	siteRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	page, err := svc.List(context.Background(), nil, shared.Filter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, site.Code, page.Items[0].Code)
}

func TestZoneService_Delete(t *testing.T) {
	t.Run("blocks deletion when zone has sites", func(t *testing.T) {
		zoneRepo := new(MockZoneRepository)
		siteRepo := new(MockSiteRepository)
		svc := NewZoneService(zoneRepo, siteRepo)
		zoneID := uuid.New()

		siteRepo.On("CountByZone", mock.Anything, zoneID).Return(int64(3), nil)

		err := svc.Delete(context.Background(), zoneID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ZONE_IN_USE", domainErr.Code)
	})

	t.Run("deletes empty zone", func(t *testing.T) {
		zoneRepo := new(MockZoneRepository)
		siteRepo := new(MockSiteRepository)
		svc := NewZoneService(zoneRepo, siteRepo)
		zoneID := uuid.New()

		siteRepo.On("CountByZone", mock.Anything, zoneID).Return(int64(0), nil)
		zoneRepo.On("Delete", mock.Anything, zoneID).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), zoneID))
		zoneRepo.AssertExpectations(t)
	})
}
