package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/stock"
)

// GormDailyConsumptionRepository implements DailyConsumptionRepository using GORM
type GormDailyConsumptionRepository struct {
	db *gorm.DB
}

// NewGormDailyConsumptionRepository creates a new GormDailyConsumptionRepository
func NewGormDailyConsumptionRepository(db *gorm.DB) *GormDailyConsumptionRepository {
	return &GormDailyConsumptionRepository{db: db}
}

// FindByID finds a consumption record by its ID
func (r *GormDailyConsumptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.DailyConsumption, error) {
	var consumption stock.DailyConsumption
	if err := r.db.WithContext(ctx).Preload("Lines").First(&consumption, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &consumption, nil
}

// FindBySiteAndDate finds the consumption record for a site on a date
func (r *GormDailyConsumptionRepository) FindBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) (*stock.DailyConsumption, error) {
	var consumption stock.DailyConsumption
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("site_id = ? AND date = ?", siteID, date).
		First(&consumption).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &consumption, nil
}

// FindBySiteAndRange finds consumption records for a site within a date range
func (r *GormDailyConsumptionRepository) FindBySiteAndRange(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]*stock.DailyConsumption, error) {
	var consumptions []*stock.DailyConsumption
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("site_id = ? AND date >= ? AND date <= ?", siteID, from, to).
		Order("date ASC").
		Find(&consumptions).Error; err != nil {
		return nil, err
	}
	return consumptions, nil
}

// FindAll finds consumption records matching the filter
func (r *GormDailyConsumptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*stock.DailyConsumption, error) {
	var consumptions []*stock.DailyConsumption
	query := r.applyFilter(r.db.WithContext(ctx).Model(&stock.DailyConsumption{}).Preload("Lines"), filter)
	if err := query.Find(&consumptions).Error; err != nil {
		return nil, err
	}
	return consumptions, nil
}

// Count counts consumption records matching the filter
func (r *GormDailyConsumptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&stock.DailyConsumption{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySiteAndDate checks whether a consumption record exists for a site on a date
func (r *GormDailyConsumptionRepository) ExistsBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&stock.DailyConsumption{}).
		Where("site_id = ? AND date = ?", siteID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a consumption record together with its lines
func (r *GormDailyConsumptionRepository) Save(ctx context.Context, consumption *stock.DailyConsumption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(consumption).Error; err != nil {
			return err
		}
		return saveChildren(tx, "consumption_id", consumption.ID, consumption.Lines)
	})
}

// ReplaceLines replaces the line set of an existing consumption record
func (r *GormDailyConsumptionRepository) ReplaceLines(ctx context.Context, consumption *stock.DailyConsumption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(consumption).Error; err != nil {
			return err
		}
		return saveChildren(tx, "consumption_id", consumption.ID, consumption.Lines)
	})
}

// applyFilter applies filter options to the query
func (r *GormDailyConsumptionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, DocumentSortFields, "date")
		return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	}
	return query.Order("date DESC")
}

func (r *GormDailyConsumptionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("remark ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "site_id":
			query = query.Where("site_id = ?", value)
		}
	}
	return query
}

// Ensure GormDailyConsumptionRepository implements DailyConsumptionRepository
var _ stock.DailyConsumptionRepository = (*GormDailyConsumptionRepository)(nil)
