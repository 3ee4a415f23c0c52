package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/stock"
)

// GormSiteStockRepository implements SiteStockRepository using GORM
type GormSiteStockRepository struct {
	db *gorm.DB
}

// NewGormSiteStockRepository creates a new GormSiteStockRepository
func NewGormSiteStockRepository(db *gorm.DB) *GormSiteStockRepository {
	return &GormSiteStockRepository{db: db}
}

// FindByID finds a stock row by its ID
func (r *GormSiteStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.SiteStock, error) {
	var row stock.SiteStock
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindBySiteAndItem finds the stock row for an item at a site
func (r *GormSiteStockRepository) FindBySiteAndItem(ctx context.Context, siteID, itemID uuid.UUID) (*stock.SiteStock, error) {
	var row stock.SiteStock
	if err := r.db.WithContext(ctx).
		Where("site_id = ? AND item_id = ?", siteID, itemID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindForUpdate loads the stock row with a FOR UPDATE lock so receipt
// and consumption postings serialize per site and item. Must run inside
// a transaction.
func (r *GormSiteStockRepository) FindForUpdate(ctx context.Context, siteID, itemID uuid.UUID) (*stock.SiteStock, error) {
	var row stock.SiteStock
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("site_id = ? AND item_id = ?", siteID, itemID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindBySite finds all stock rows at a site
func (r *GormSiteStockRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*stock.SiteStock, error) {
	var rows []*stock.SiteStock
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&stock.SiteStock{}).Where("site_id = ?", siteID),
		filter, CommonSortFields, "created_at ASC")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count counts stock rows matching the filter
func (r *GormSiteStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&stock.SiteStock{})
	for key, value := range filter.Filters {
		switch key {
		case "site_id":
			query = query.Where("site_id = ?", value)
		case "item_id":
			query = query.Where("item_id = ?", value)
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock row
func (r *GormSiteStockRepository) Save(ctx context.Context, row *stock.SiteStock) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Ensure GormSiteStockRepository implements SiteStockRepository
var _ stock.SiteStockRepository = (*GormSiteStockRepository)(nil)
