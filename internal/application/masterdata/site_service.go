package masterdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// ZoneService handles zone master data operations
type ZoneService struct {
	zoneRepo masterdata.ZoneRepository
	siteRepo masterdata.SiteRepository
}

// NewZoneService creates a new ZoneService
func NewZoneService(zoneRepo masterdata.ZoneRepository, siteRepo masterdata.SiteRepository) *ZoneService {
	return &ZoneService{
		zoneRepo: zoneRepo,
		siteRepo: siteRepo,
	}
}

// Create creates a new zone
func (s *ZoneService) Create(ctx context.Context, req CreateZoneRequest) (*ZoneResponse, error) {
	exists, err := s.zoneRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Zone with this name already exists")
	}

	zone, err := masterdata.NewZone(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}

	resp := ToZoneResponse(zone)
	return &resp, nil
}

// GetByID retrieves a zone by ID
func (s *ZoneService) GetByID(ctx context.Context, id uuid.UUID) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToZoneResponse(zone)
	return &resp, nil
}

// List lists zones with pagination
func (s *ZoneService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ZoneResponse], error) {
	filter.Normalize()

	zones, err := s.zoneRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.zoneRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ZoneResponse, 0, len(zones))
	for i := range zones {
		items = append(items, ToZoneResponse(&zones[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update renames a zone
func (s *ZoneService) Update(ctx context.Context, id uuid.UUID, req UpdateZoneRequest) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := zone.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}
	resp := ToZoneResponse(zone)
	return &resp, nil
}

// Delete removes a zone with no sites under it
func (s *ZoneService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.siteRepo.CountByZone(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("ZONE_IN_USE", "Zone has sites and cannot be deleted")
	}
	return s.zoneRepo.Delete(ctx, id)
}

// SiteService handles construction site operations
type SiteService struct {
	siteRepo masterdata.SiteRepository
	zoneRepo masterdata.ZoneRepository
	cityRepo masterdata.CityRepository
}

// NewSiteService creates a new SiteService
func NewSiteService(siteRepo masterdata.SiteRepository, zoneRepo masterdata.ZoneRepository, cityRepo masterdata.CityRepository) *SiteService {
	return &SiteService{
		siteRepo: siteRepo,
		zoneRepo: zoneRepo,
		cityRepo: cityRepo,
	}
}

// Create creates a new site
func (s *SiteService) Create(ctx context.Context, req CreateSiteRequest) (*SiteResponse, error) {
	exists, err := s.siteRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Site with this code already exists")
	}
	if _, err := s.zoneRepo.FindByID(ctx, req.ZoneID); err != nil {
		return nil, err
	}
	if _, err := s.cityRepo.FindByID(ctx, req.CityID); err != nil {
		return nil, err
	}

	site, err := masterdata.NewSite(req.Code, req.Name, req.ZoneID, req.CityID, req.StartDate)
	if err != nil {
		return nil, err
	}
	if req.Address != "" || req.Notes != "" {
		if err := site.Update(req.Name, req.Address, req.Notes); err != nil {
			return nil, err
		}
	}
	if err := s.siteRepo.Save(ctx, site); err != nil {
		return nil, err
	}

	resp := ToSiteResponse(site)
	return &resp, nil
}

// GetByID retrieves a site by ID
func (s *SiteService) GetByID(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSiteResponse(site)
	return &resp, nil
}

// GetByCode retrieves a site by code
func (s *SiteService) GetByCode(ctx context.Context, code string) (*SiteResponse, error) {
	site, err := s.siteRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToSiteResponse(site)
	return &resp, nil
}

// List lists sites, optionally scoped to a zone
func (s *SiteService) List(ctx context.Context, zoneID *uuid.UUID, filter shared.Filter) (*shared.Paginated[SiteResponse], error) {
	filter.Normalize()

	var (
		sites []masterdata.Site
		err   error
	)
	if zoneID != nil {
		sites, err = s.siteRepo.FindByZone(ctx, *zoneID, filter)
	} else {
		sites, err = s.siteRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.siteRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SiteResponse, 0, len(sites))
	for i := range sites {
		items = append(items, ToSiteResponse(&sites[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes site attributes and placement
func (s *SiteService) Update(ctx context.Context, id uuid.UUID, req UpdateSiteRequest) (*SiteResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := site.Name
	if req.Name != nil {
		name = *req.Name
	}
	address := site.Address
	if req.Address != nil {
		address = *req.Address
	}
	notes := site.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := site.Update(name, address, notes); err != nil {
		return nil, err
	}

	if req.ZoneID != nil || req.CityID != nil {
		zoneID := site.ZoneID
		if req.ZoneID != nil {
			if _, err := s.zoneRepo.FindByID(ctx, *req.ZoneID); err != nil {
				return nil, err
			}
			zoneID = *req.ZoneID
		}
		cityID := site.CityID
		if req.CityID != nil {
			if _, err := s.cityRepo.FindByID(ctx, *req.CityID); err != nil {
				return nil, err
			}
			cityID = *req.CityID
		}
		if err := site.Relocate(zoneID, cityID); err != nil {
			return nil, err
		}
	}

	if err := s.siteRepo.Save(ctx, site); err != nil {
		return nil, err
	}
	resp := ToSiteResponse(site)
	return &resp, nil
}

// Hold puts an active site on hold
func (s *SiteService) Hold(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	return s.transition(ctx, id, (*masterdata.Site).Hold)
}

// Resume restores an on-hold site to active
func (s *SiteService) Resume(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	return s.transition(ctx, id, (*masterdata.Site).Resume)
}

// Close permanently closes a site
func (s *SiteService) Close(ctx context.Context, id uuid.UUID) (*SiteResponse, error) {
	return s.transition(ctx, id, (*masterdata.Site).Close)
}

func (s *SiteService) transition(ctx context.Context, id uuid.UUID, fn func(*masterdata.Site) error) (*SiteResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(site); err != nil {
		return nil, err
	}
	if err := s.siteRepo.Save(ctx, site); err != nil {
		return nil, err
	}
	resp := ToSiteResponse(site)
	return &resp, nil
}
