package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormIndentRepository implements IndentRepository using GORM
type GormIndentRepository struct {
	db *gorm.DB
}

// NewGormIndentRepository creates a new GormIndentRepository
func NewGormIndentRepository(db *gorm.DB) *GormIndentRepository {
	return &GormIndentRepository{db: db}
}

// FindByID finds an indent with its items by ID
func (r *GormIndentRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Indent, error) {
	var indent procurement.Indent
	if err := r.db.WithContext(ctx).Preload("Items").First(&indent, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &indent, nil
}

// FindByNumber finds an indent by its document number
func (r *GormIndentRepository) FindByNumber(ctx context.Context, indentNumber string) (*procurement.Indent, error) {
	var indent procurement.Indent
	if err := r.db.WithContext(ctx).Preload("Items").First(&indent, "indent_number = ?", indentNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &indent, nil
}

// FindAll finds all indents matching the filter
func (r *GormIndentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*procurement.Indent, error) {
	var indents []*procurement.Indent
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.Indent{}).Preload("Items"), filter)
	if err := query.Find(&indents).Error; err != nil {
		return nil, err
	}
	return indents, nil
}

// FindBySite finds indents raised for a site
func (r *GormIndentRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*procurement.Indent, error) {
	var indents []*procurement.Indent
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.Indent{}).Preload("Items").Where("site_id = ?", siteID),
		filter)
	if err := query.Find(&indents).Error; err != nil {
		return nil, err
	}
	return indents, nil
}

// Count counts indents matching the filter
func (r *GormIndentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.Indent{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts indents in a given status
func (r *GormIndentRepository) CountByStatus(ctx context.Context, status procurement.IndentStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&procurement.Indent{}).
		Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if an indent with the given number exists
func (r *GormIndentRepository) ExistsByNumber(ctx context.Context, indentNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&procurement.Indent{}).
		Where("indent_number = ?", indentNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequence returns the next indent document number
func (r *GormIndentRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "indent_number_seq")
}

// Save persists the indent and reconciles its item rows: removed items
// are deleted, the rest are upserted.
func (r *GormIndentRepository) Save(ctx context.Context, indent *procurement.Indent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(indent).Error; err != nil {
			return err
		}
		return saveChildren(tx, "indent_id", indent.ID, indent.Items)
	})
}

// Delete deletes an indent and its items
func (r *GormIndentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("indent_id = ?", id).Delete(&procurement.IndentItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.Indent{}, "id = ?", id)
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
func (r *GormIndentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormIndentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("indent_number ILIKE ? OR remark ILIKE ?", pattern, pattern)
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

// Ensure GormIndentRepository implements IndentRepository
var _ procurement.IndentRepository = (*GormIndentRepository)(nil)
