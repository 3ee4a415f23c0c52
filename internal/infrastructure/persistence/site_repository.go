package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormZoneRepository implements ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// FindByID finds a zone by its ID
func (r *GormZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Zone, error) {
	var zone masterdata.Zone
	if err := r.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindAll finds all zones matching the filter
func (r *GormZoneRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Zone, error) {
	var zones []masterdata.Zone
	query := applyListFilter(r.db.WithContext(ctx).Model(&masterdata.Zone{}), filter, CommonSortFields, "name ASC", "name")
	if err := query.Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// Count counts zones matching the filter
func (r *GormZoneRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&masterdata.Zone{}), filter, "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a zone with the given name exists
func (r *GormZoneRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.Zone{}).
		Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a zone
func (r *GormZoneRepository) Save(ctx context.Context, zone *masterdata.Zone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete deletes a zone
func (r *GormZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.Zone{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormSiteRepository implements SiteRepository using GORM
type GormSiteRepository struct {
	db *gorm.DB
}

// NewGormSiteRepository creates a new GormSiteRepository
func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

// FindByID finds a site by its ID
func (r *GormSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Site, error) {
	var site masterdata.Site
	if err := r.db.WithContext(ctx).First(&site, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &site, nil
}

// FindByCode finds a site by its code
func (r *GormSiteRepository) FindByCode(ctx context.Context, code string) (*masterdata.Site, error) {
	var site masterdata.Site
	if err := r.db.WithContext(ctx).First(&site, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &site, nil
}

// FindAll finds all sites matching the filter
func (r *GormSiteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Site, error) {
	var sites []masterdata.Site
	query := applyListFilter(r.db.WithContext(ctx).Model(&masterdata.Site{}), filter, CodedSortFields, "code ASC", "name", "code")
	if err := query.Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// FindByZone finds sites belonging to a zone
func (r *GormSiteRepository) FindByZone(ctx context.Context, zoneID uuid.UUID, filter shared.Filter) ([]masterdata.Site, error) {
	var sites []masterdata.Site
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&masterdata.Site{}).Where("zone_id = ?", zoneID),
		filter, CodedSortFields, "code ASC", "name", "code")
	if err := query.Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// Count counts sites matching the filter
func (r *GormSiteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&masterdata.Site{}), filter, "name", "code")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts sites in a given status
func (r *GormSiteRepository) CountByStatus(ctx context.Context, status masterdata.SiteStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.Site{}).
		Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByZone counts sites in a zone
func (r *GormSiteRepository) CountByZone(ctx context.Context, zoneID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.Site{}).
		Where("zone_id = ?", zoneID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a site with the given code exists
func (r *GormSiteRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.Site{}).
		Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a site
func (r *GormSiteRepository) Save(ctx context.Context, site *masterdata.Site) error {
	return r.db.WithContext(ctx).Save(site).Error
}

// Delete deletes a site
func (r *GormSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.Site{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure implementations satisfy the repository interfaces
var (
	_ masterdata.ZoneRepository = (*GormZoneRepository)(nil)
	_ masterdata.SiteRepository = (*GormSiteRepository)(nil)
)
