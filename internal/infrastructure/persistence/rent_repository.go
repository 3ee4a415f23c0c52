package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/shared"
)

// GormRentAgreementRepository implements RentAgreementRepository using GORM
type GormRentAgreementRepository struct {
	db *gorm.DB
}

// NewGormRentAgreementRepository creates a new GormRentAgreementRepository
func NewGormRentAgreementRepository(db *gorm.DB) *GormRentAgreementRepository {
	return &GormRentAgreementRepository{db: db}
}

// FindByID finds a rent agreement by its ID
func (r *GormRentAgreementRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.RentAgreement, error) {
	var agreement finance.RentAgreement
	if err := r.db.WithContext(ctx).First(&agreement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &agreement, nil
}

// FindByNumber finds a rent agreement by its document number
func (r *GormRentAgreementRepository) FindByNumber(ctx context.Context, agreementNumber string) (*finance.RentAgreement, error) {
	var agreement finance.RentAgreement
	if err := r.db.WithContext(ctx).First(&agreement, "agreement_number = ?", agreementNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &agreement, nil
}

// FindAll finds rent agreements matching the filter
func (r *GormRentAgreementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.RentAgreement, error) {
	var agreements []*finance.RentAgreement
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.RentAgreement{}), filter)
	if err := query.Find(&agreements).Error; err != nil {
		return nil, err
	}
	return agreements, nil
}

// FindBySite finds rent agreements for a site matching the filter
func (r *GormRentAgreementRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*finance.RentAgreement, error) {
	var agreements []*finance.RentAgreement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.RentAgreement{}).Where("site_id = ?", siteID), filter)
	if err := query.Find(&agreements).Error; err != nil {
		return nil, err
	}
	return agreements, nil
}

// Count counts rent agreements matching the filter
func (r *GormRentAgreementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.RentAgreement{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks whether a rent agreement with the number exists
func (r *GormRentAgreementRepository) ExistsByNumber(ctx context.Context, agreementNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.RentAgreement{}).
		Where("agreement_number = ?", agreementNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequence returns the next rent agreement document number
func (r *GormRentAgreementRepository) NextSequence(ctx context.Context) (int64, error) {
	return nextSequence(ctx, r.db, "rent_agreement_number_seq")
}

// Save creates or updates a rent agreement
func (r *GormRentAgreementRepository) Save(ctx context.Context, agreement *finance.RentAgreement) error {
	return r.db.WithContext(ctx).Save(agreement).Error
}

// applyFilter applies filter options to the query
func (r *GormRentAgreementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormRentAgreementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("agreement_number ILIKE ? OR landlord_name ILIKE ? OR asset_description ILIKE ?", pattern, pattern, pattern)
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

// Ensure GormRentAgreementRepository implements RentAgreementRepository
var _ finance.RentAgreementRepository = (*GormRentAgreementRepository)(nil)

// GormRentPaymentRepository implements RentPaymentRepository using GORM
type GormRentPaymentRepository struct {
	db *gorm.DB
}

// NewGormRentPaymentRepository creates a new GormRentPaymentRepository
func NewGormRentPaymentRepository(db *gorm.DB) *GormRentPaymentRepository {
	return &GormRentPaymentRepository{db: db}
}

// FindByID finds a rent payment by its ID
func (r *GormRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.RentPayment, error) {
	var payment finance.RentPayment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByAgreement finds all payments under an agreement, newest month first
func (r *GormRentPaymentRepository) FindByAgreement(ctx context.Context, agreementID uuid.UUID) ([]*finance.RentPayment, error) {
	var payments []*finance.RentPayment
	if err := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		Order("year DESC, month DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ExistsByAgreementAndMonth checks whether a payment exists for the agreement
// in the given month
func (r *GormRentPaymentRepository) ExistsByAgreementAndMonth(ctx context.Context, agreementID uuid.UUID, year, month int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.RentPayment{}).
		Where("agreement_id = ? AND year = ? AND month = ?", agreementID, year, month).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a rent payment
func (r *GormRentPaymentRepository) Save(ctx context.Context, payment *finance.RentPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete removes a rent payment
func (r *GormRentPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.RentPayment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRentPaymentRepository implements RentPaymentRepository
var _ finance.RentPaymentRepository = (*GormRentPaymentRepository)(nil)
