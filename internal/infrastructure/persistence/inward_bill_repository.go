package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormInwardBillRepository implements InwardBillRepository using GORM
type GormInwardBillRepository struct {
	db *gorm.DB
}

// NewGormInwardBillRepository creates a new GormInwardBillRepository
func NewGormInwardBillRepository(db *gorm.DB) *GormInwardBillRepository {
	return &GormInwardBillRepository{db: db}
}

// FindByID finds an inward bill with its lines by ID
func (r *GormInwardBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.InwardBill, error) {
	var bill procurement.InwardBill
	if err := r.db.WithContext(ctx).Preload("Lines").First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByNumber finds an inward bill by its document number
func (r *GormInwardBillRepository) FindByNumber(ctx context.Context, billNumber string) (*procurement.InwardBill, error) {
	var bill procurement.InwardBill
	if err := r.db.WithContext(ctx).Preload("Lines").First(&bill, "bill_number = ?", billNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindAll finds all inward bills matching the filter
func (r *GormInwardBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*procurement.InwardBill, error) {
	var bills []*procurement.InwardBill
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.InwardBill{}).Preload("Lines"), filter)
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindByOrder finds inward bills recorded against a purchase order
func (r *GormInwardBillRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*procurement.InwardBill, error) {
	var bills []*procurement.InwardBill
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("purchase_order_id = ?", orderID).Order("bill_date ASC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindBySite finds inward bills recorded for a site
func (r *GormInwardBillRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*procurement.InwardBill, error) {
	var bills []*procurement.InwardBill
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.InwardBill{}).Preload("Lines").Where("site_id = ?", siteID),
		filter)
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Count counts inward bills matching the filter
func (r *GormInwardBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.InwardBill{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if an inward bill with the given number exists
func (r *GormInwardBillRepository) ExistsByNumber(ctx context.Context, billNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&procurement.InwardBill{}).
		Where("bill_number = ?", billNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequence returns the next inward bill document number
func (r *GormInwardBillRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "inward_bill_number_seq")
}

// Save persists the inward bill and reconciles its line rows
func (r *GormInwardBillRepository) Save(ctx context.Context, bill *procurement.InwardBill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(bill).Error; err != nil {
			return err
		}
		return saveChildren(tx, "bill_id", bill.ID, bill.Lines)
	})
}

// applyFilter applies filter options to the query
func (r *GormInwardBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormInwardBillRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("bill_number ILIKE ? OR vendor_invoice_no ILIKE ? OR vehicle_number ILIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "site_id":
			query = query.Where("site_id = ?", value)
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		}
	}
	return query
}

// Ensure GormInwardBillRepository implements InwardBillRepository
var _ procurement.InwardBillRepository = (*GormInwardBillRepository)(nil)
