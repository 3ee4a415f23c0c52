package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormCashbookRepository implements CashbookRepository using GORM
type GormCashbookRepository struct {
	db *gorm.DB
}

// NewGormCashbookRepository creates a new GormCashbookRepository
func NewGormCashbookRepository(db *gorm.DB) *GormCashbookRepository {
	return &GormCashbookRepository{db: db}
}

// FindByID finds a cashbook by its ID
func (r *GormCashbookRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Cashbook, error) {
	var cashbook finance.Cashbook
	if err := r.db.WithContext(ctx).First(&cashbook, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cashbook, nil
}

// FindBySite finds the cashbook of a site
func (r *GormCashbookRepository) FindBySite(ctx context.Context, siteID uuid.UUID) (*finance.Cashbook, error) {
	var cashbook finance.Cashbook
	if err := r.db.WithContext(ctx).First(&cashbook, "site_id = ?", siteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cashbook, nil
}

// FindAll finds cashbooks matching the filter
func (r *GormCashbookRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.Cashbook, error) {
	var cashbooks []*finance.Cashbook
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&finance.Cashbook{}),
		filter, CodedSortFields, "name ASC", "name")
	if err := query.Find(&cashbooks).Error; err != nil {
		return nil, err
	}
	return cashbooks, nil
}

// ExistsBySite checks whether a site already has a cashbook
func (r *GormCashbookRepository) ExistsBySite(ctx context.Context, siteID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.Cashbook{}).
		Where("site_id = ?", siteID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a cashbook
func (r *GormCashbookRepository) Save(ctx context.Context, cashbook *finance.Cashbook) error {
	return r.db.WithContext(ctx).Save(cashbook).Error
}

// Ensure GormCashbookRepository implements CashbookRepository
var _ finance.CashbookRepository = (*GormCashbookRepository)(nil)
