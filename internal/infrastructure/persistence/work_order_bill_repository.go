package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormWorkOrderBillRepository implements WorkOrderBillRepository using GORM
type GormWorkOrderBillRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderBillRepository creates a new GormWorkOrderBillRepository
func NewGormWorkOrderBillRepository(db *gorm.DB) *GormWorkOrderBillRepository {
	return &GormWorkOrderBillRepository{db: db}
}

// FindByID finds an RA bill by its ID, including lines
func (r *GormWorkOrderBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.WorkOrderBill, error) {
	var bill finance.WorkOrderBill
	if err := r.db.WithContext(ctx).Preload("Lines").First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByNumber finds an RA bill by its document number
func (r *GormWorkOrderBillRepository) FindByNumber(ctx context.Context, billNumber string) (*finance.WorkOrderBill, error) {
	var bill finance.WorkOrderBill
	if err := r.db.WithContext(ctx).Preload("Lines").
		First(&bill, "bill_number = ?", billNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByWorkOrder finds all RA bills of a work order in RA sequence order
func (r *GormWorkOrderBillRepository) FindByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]*finance.WorkOrderBill, error) {
	var bills []*finance.WorkOrderBill
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("work_order_id = ?", workOrderID).
		Order("ra_number ASC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindAll finds RA bills matching the filter
func (r *GormWorkOrderBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.WorkOrderBill, error) {
	var bills []*finance.WorkOrderBill
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.WorkOrderBill{}).Preload("Lines"), filter)
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Count counts RA bills matching the filter
func (r *GormWorkOrderBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.WorkOrderBill{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByWorkOrder counts RA bills of a work order
func (r *GormWorkOrderBillRepository) CountByWorkOrder(ctx context.Context, workOrderID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.WorkOrderBill{}).
		Where("work_order_id = ?", workOrderID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks whether an RA bill with the number exists
func (r *GormWorkOrderBillRepository) ExistsByNumber(ctx context.Context, billNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.WorkOrderBill{}).
		Where("bill_number = ?", billNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequence returns the next RA bill document number
func (r *GormWorkOrderBillRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "work_order_bill_number_seq")
}

// Save creates or updates an RA bill together with its lines
func (r *GormWorkOrderBillRepository) Save(ctx context.Context, bill *finance.WorkOrderBill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(bill).Error; err != nil {
			return err
		}
		return saveChildren(tx, "bill_id", bill.ID, bill.Lines)
	})
}

// applyFilter applies filter options to the query
func (r *GormWorkOrderBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormWorkOrderBillRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("bill_number ILIKE ? OR remark ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "site_id":
			query = query.Where("site_id = ?", value)
		case "work_order_id":
			query = query.Where("work_order_id = ?", value)
		}
	}
	return query
}

// Ensure GormWorkOrderBillRepository implements WorkOrderBillRepository
var _ finance.WorkOrderBillRepository = (*GormWorkOrderBillRepository)(nil)
