package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormItemCategoryRepository implements ItemCategoryRepository using GORM
type GormItemCategoryRepository struct {
	db *gorm.DB
}

// NewGormItemCategoryRepository creates a new GormItemCategoryRepository
func NewGormItemCategoryRepository(db *gorm.DB) *GormItemCategoryRepository {
	return &GormItemCategoryRepository{db: db}
}

// FindByID finds an item category by its ID
func (r *GormItemCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.ItemCategory, error) {
	var category masterdata.ItemCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all item categories matching the filter
func (r *GormItemCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.ItemCategory, error) {
	var categories []masterdata.ItemCategory
	query := applyListFilter(r.db.WithContext(ctx).Model(&masterdata.ItemCategory{}), filter, CommonSortFields, "name ASC", "name")
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count counts item categories matching the filter
func (r *GormItemCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&masterdata.ItemCategory{}), filter, "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a category with the given name exists
func (r *GormItemCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.ItemCategory{}).
		Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an item category
func (r *GormItemCategoryRepository) Save(ctx context.Context, category *masterdata.ItemCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes an item category
func (r *GormItemCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.ItemCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Item, error) {
	var item masterdata.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCode finds an item by its code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*masterdata.Item, error) {
	var item masterdata.Item
	if err := r.db.WithContext(ctx).First(&item, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads all items for the given IDs
func (r *GormItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]masterdata.Item, error) {
	if len(ids) == 0 {
		return []masterdata.Item{}, nil
	}
	var items []masterdata.Item
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByCategory finds items belonging to a category
func (r *GormItemRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]masterdata.Item, error) {
	var items []masterdata.Item
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&masterdata.Item{}).Where("category_id = ?", categoryID),
		filter, CodedSortFields, "code ASC", "name", "code")
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Item, error) {
	var items []masterdata.Item
	query := applyListFilter(r.db.WithContext(ctx).Model(&masterdata.Item{}), filter, CodedSortFields, "code ASC", "name", "code")
	for key, value := range filter.Filters {
		if key == "category_id" {
			query = query.Where("category_id = ?", value)
		}
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&masterdata.Item{}), filter, "name", "code")
	for key, value := range filter.Filters {
		if key == "category_id" {
			query = query.Where("category_id = ?", value)
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCategory counts items in a category
func (r *GormItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.Item{}).
		Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if an item with the given code exists
func (r *GormItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&masterdata.Item{}).
		Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *masterdata.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.Item{}, "id = ?", id)
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
	_ masterdata.ItemCategoryRepository = (*GormItemCategoryRepository)(nil)
	_ masterdata.ItemRepository         = (*GormItemRepository)(nil)
)
