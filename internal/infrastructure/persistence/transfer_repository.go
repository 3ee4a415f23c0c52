package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/workforce"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by its ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Transfer, error) {
	var transfer workforce.Transfer
	if err := r.db.WithContext(ctx).First(&transfer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindByManpower finds all transfers of a worker, newest first
func (r *GormTransferRepository) FindByManpower(ctx context.Context, manpowerID uuid.UUID) ([]*workforce.Transfer, error) {
	var transfers []*workforce.Transfer
	if err := r.db.WithContext(ctx).
		Where("manpower_id = ?", manpowerID).
		Order("transfer_date DESC").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// FindAll finds transfers matching the filter
func (r *GormTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*workforce.Transfer, error) {
	var transfers []*workforce.Transfer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&workforce.Transfer{}), filter)
	if err := query.Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Count counts transfers matching the filter
func (r *GormTransferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&workforce.Transfer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a transfer
func (r *GormTransferRepository) Save(ctx context.Context, transfer *workforce.Transfer) error {
	return r.db.WithContext(ctx).Save(transfer).Error
}

// applyFilter applies filter options to the query
func (r *GormTransferRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
		return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	}
	return query.Order("transfer_date DESC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTransferRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "manpower_id":
			query = query.Where("manpower_id = ?", value)
		case "from_site_id":
			query = query.Where("from_site_id = ?", value)
		case "to_site_id":
			query = query.Where("to_site_id = ?", value)
		}
	}
	return query
}

// Ensure GormTransferRepository implements TransferRepository
var _ workforce.TransferRepository = (*GormTransferRepository)(nil)
