package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormVoucherRepository implements VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher by its ID
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Voucher, error) {
	var voucher finance.Voucher
	if err := r.db.WithContext(ctx).First(&voucher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindByNumber finds a voucher by its document number
func (r *GormVoucherRepository) FindByNumber(ctx context.Context, voucherNumber string) (*finance.Voucher, error) {
	var voucher finance.Voucher
	if err := r.db.WithContext(ctx).First(&voucher, "voucher_number = ?", voucherNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindByCashbook finds vouchers of a cashbook matching the filter
func (r *GormVoucherRepository) FindByCashbook(ctx context.Context, cashbookID uuid.UUID, filter shared.Filter) ([]*finance.Voucher, error) {
	var vouchers []*finance.Voucher
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.Voucher{}).Where("cashbook_id = ?", cashbookID), filter)
	if err := query.Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// FindByCashbookAndRange finds vouchers of a cashbook within a date range,
// oldest first
func (r *GormVoucherRepository) FindByCashbookAndRange(ctx context.Context, cashbookID uuid.UUID, from, to time.Time) ([]*finance.Voucher, error) {
	var vouchers []*finance.Voucher
	if err := r.db.WithContext(ctx).
		Where("cashbook_id = ? AND voucher_date >= ? AND voucher_date <= ?", cashbookID, from, to).
		Order("voucher_date ASC, created_at ASC").
		Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// Count counts vouchers matching the filter
func (r *GormVoucherRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.Voucher{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByCashbook sums non-cancelled voucher amounts of the given type dated
// strictly before until
func (r *GormVoucherRepository) SumByCashbook(ctx context.Context, cashbookID uuid.UUID, vType finance.VoucherType, until time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&finance.Voucher{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("cashbook_id = ? AND type = ? AND cancelled = false AND voucher_date < ?", cashbookID, vType, until).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ExistsByNumber checks whether a voucher with the number exists
func (r *GormVoucherRepository) ExistsByNumber(ctx context.Context, voucherNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.Voucher{}).
		Where("voucher_number = ?", voucherNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequence returns the next voucher document number
func (r *GormVoucherRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "voucher_number_seq")
}

// Save creates or updates a voucher
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *finance.Voucher) error {
	return r.db.WithContext(ctx).Save(voucher).Error
}

// applyFilter applies filter options to the query
func (r *GormVoucherRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, DocumentSortFields, "voucher_date")
		return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	}
	return query.Order("voucher_date DESC, created_at DESC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVoucherRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("voucher_number ILIKE ? OR party_name ILIKE ? OR narration ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "mode":
			query = query.Where("mode = ?", value)
		case "head":
			query = query.Where("head = ?", value)
		case "cancelled":
			query = query.Where("cancelled = ?", value)
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		}
	}
	return query
}

// Ensure GormVoucherRepository implements VoucherRepository
var _ finance.VoucherRepository = (*GormVoucherRepository)(nil)
