package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/workforce"
)

// GormManpowerRepository implements ManpowerRepository using GORM
type GormManpowerRepository struct {
	db *gorm.DB
}

// NewGormManpowerRepository creates a new GormManpowerRepository
func NewGormManpowerRepository(db *gorm.DB) *GormManpowerRepository {
	return &GormManpowerRepository{db: db}
}

// FindByID finds a worker by their ID
func (r *GormManpowerRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Manpower, error) {
	var worker workforce.Manpower
	if err := r.db.WithContext(ctx).First(&worker, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &worker, nil
}

// FindByCode finds a worker by their code
func (r *GormManpowerRepository) FindByCode(ctx context.Context, code string) (*workforce.Manpower, error) {
	var worker workforce.Manpower
	if err := r.db.WithContext(ctx).First(&worker, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &worker, nil
}

// FindAll finds workers matching the filter
func (r *GormManpowerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*workforce.Manpower, error) {
	var workers []*workforce.Manpower
	query := r.applyFilter(r.db.WithContext(ctx).Model(&workforce.Manpower{}), filter)
	if err := query.Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// FindBySite finds workers at a site matching the filter
func (r *GormManpowerRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*workforce.Manpower, error) {
	var workers []*workforce.Manpower
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&workforce.Manpower{}).Where("site_id = ?", siteID), filter)
	if err := query.Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// FindActiveBySite finds all active workers at a site
func (r *GormManpowerRepository) FindActiveBySite(ctx context.Context, siteID uuid.UUID) ([]*workforce.Manpower, error) {
	var workers []*workforce.Manpower
	if err := r.db.WithContext(ctx).
		Where("site_id = ? AND status = ?", siteID, workforce.ManpowerStatusActive).
		Order("code ASC").
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// FindByIDs finds workers by a set of IDs
func (r *GormManpowerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*workforce.Manpower, error) {
	if len(ids) == 0 {
		return []*workforce.Manpower{}, nil
	}
	var workers []*workforce.Manpower
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// Count counts workers matching the filter
func (r *GormManpowerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&workforce.Manpower{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySite counts workers at a site
func (r *GormManpowerRepository) CountBySite(ctx context.Context, siteID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&workforce.Manpower{}).
		Where("site_id = ?", siteID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether a worker with the code exists
func (r *GormManpowerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&workforce.Manpower{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a worker
func (r *GormManpowerRepository) Save(ctx context.Context, worker *workforce.Manpower) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

// Delete removes a worker
func (r *GormManpowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workforce.Manpower{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormManpowerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CodedSortFields, "code")
		return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	}
	return query.Order("code ASC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormManpowerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "site_id":
			query = query.Where("site_id = ?", value)
		case "trade":
			query = query.Where("trade = ?", value)
		case "contractor_id":
			query = query.Where("contractor_id = ?", value)
		}
	}
	return query
}

// Ensure GormManpowerRepository implements ManpowerRepository
var _ workforce.ManpowerRepository = (*GormManpowerRepository)(nil)
