package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormWorkOrderRepository implements WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByID finds a work order by its ID, including items
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.WorkOrder, error) {
	var order finance.WorkOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds a work order by its document number
func (r *GormWorkOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*finance.WorkOrder, error) {
	var order finance.WorkOrder
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds work orders matching the filter
func (r *GormWorkOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.WorkOrder, error) {
	var orders []*finance.WorkOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.WorkOrder{}).Preload("Items"), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySite finds work orders for a site matching the filter
func (r *GormWorkOrderRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*finance.WorkOrder, error) {
	var orders []*finance.WorkOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.WorkOrder{}).Preload("Items").Where("site_id = ?", siteID), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByBOQ finds work orders raised against a BOQ
func (r *GormWorkOrderRepository) FindByBOQ(ctx context.Context, boqID uuid.UUID) ([]*finance.WorkOrder, error) {
	var orders []*finance.WorkOrder
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("boq_id = ?", boqID).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByContractor finds work orders awarded to a contractor
func (r *GormWorkOrderRepository) FindByContractor(ctx context.Context, contractorID uuid.UUID, filter shared.Filter) ([]*finance.WorkOrder, error) {
	var orders []*finance.WorkOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.WorkOrder{}).Preload("Items").Where("contractor_id = ?", contractorID), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts work orders matching the filter
func (r *GormWorkOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.WorkOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks whether a work order with the number exists
func (r *GormWorkOrderRepository) ExistsByNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.WorkOrder{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequence returns the next work order document number
func (r *GormWorkOrderRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "work_order_number_seq")
}

// Save creates or updates a work order together with its items
func (r *GormWorkOrderRepository) Save(ctx context.Context, order *finance.WorkOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		return saveChildren(tx, "work_order_id", order.ID, order.Items)
	})
}

// Delete removes a work order and its items
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", id).Delete(&finance.WorkOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&finance.WorkOrder{}, "id = ?", id)
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
func (r *GormWorkOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormWorkOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR terms ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "site_id":
			query = query.Where("site_id = ?", value)
		case "boq_id":
			query = query.Where("boq_id = ?", value)
		case "contractor_id":
			query = query.Where("contractor_id = ?", value)
		}
	}
	return query
}

// Ensure GormWorkOrderRepository implements WorkOrderRepository
var _ finance.WorkOrderRepository = (*GormWorkOrderRepository)(nil)
