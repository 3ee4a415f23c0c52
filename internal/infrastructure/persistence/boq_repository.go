package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormBOQRepository implements BOQRepository using GORM
type GormBOQRepository struct {
	db *gorm.DB
}

// NewGormBOQRepository creates a new GormBOQRepository
func NewGormBOQRepository(db *gorm.DB) *GormBOQRepository {
	return &GormBOQRepository{db: db}
}

// FindByID finds a BOQ by its ID, including items
func (r *GormBOQRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BOQ, error) {
	var boq finance.BOQ
	if err := r.db.WithContext(ctx).Preload("Items").First(&boq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &boq, nil
}

// FindByNumber finds a BOQ by its document number
func (r *GormBOQRepository) FindByNumber(ctx context.Context, boqNumber string) (*finance.BOQ, error) {
	var boq finance.BOQ
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&boq, "boq_number = ?", boqNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &boq, nil
}

// FindAll finds BOQs matching the filter
func (r *GormBOQRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.BOQ, error) {
	var boqs []*finance.BOQ
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.BOQ{}).Preload("Items"), filter)
	if err := query.Find(&boqs).Error; err != nil {
		return nil, err
	}
	return boqs, nil
}

// FindBySite finds BOQs for a site matching the filter
func (r *GormBOQRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*finance.BOQ, error) {
	var boqs []*finance.BOQ
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.BOQ{}).Preload("Items").Where("site_id = ?", siteID), filter)
	if err := query.Find(&boqs).Error; err != nil {
		return nil, err
	}
	return boqs, nil
}

// Count counts BOQs matching the filter
func (r *GormBOQRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.BOQ{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks whether a BOQ with the number exists
func (r *GormBOQRepository) ExistsByNumber(ctx context.Context, boqNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.BOQ{}).
		Where("boq_number = ?", boqNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequence returns the next BOQ document number
func (r *GormBOQRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "boq_number_seq")
}

// Save creates or updates a BOQ together with its items
func (r *GormBOQRepository) Save(ctx context.Context, boq *finance.BOQ) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(boq).Error; err != nil {
			return err
		}
		return saveChildren(tx, "boq_id", boq.ID, boq.Items)
	})
}

// Delete removes a BOQ and its items
func (r *GormBOQRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("boq_id = ?", id).Delete(&finance.BOQItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&finance.BOQ{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormBOQRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
		return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	}
	return query.Order("created_at DESC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBOQRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("boq_number ILIKE ? OR title ILIKE ?", pattern, pattern)
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

// Ensure GormBOQRepository implements BOQRepository
var _ finance.BOQRepository = (*GormBOQRepository)(nil)
