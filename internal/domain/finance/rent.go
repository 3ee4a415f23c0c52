package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// RentAgreementStatus represents the status of a rent agreement
type RentAgreementStatus string

const (
	RentAgreementStatusActive RentAgreementStatus = "active"
	RentAgreementStatusClosed RentAgreementStatus = "closed"
)

// IsValid checks if the status is a valid RentAgreementStatus
func (s RentAgreementStatus) IsValid() bool {
	return s == RentAgreementStatusActive || s == RentAgreementStatusClosed
}

// RentAgreement covers recurring monthly rent for site assets: labour
// camps, offices, machinery and the like.
type RentAgreement struct {
	shared.BaseAggregateRoot
	AgreementNumber string              `gorm:"type:varchar(50);uniqueIndex;not null"`
	SiteID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	LandlordName    string              `gorm:"type:varchar(200);not null"`
	VendorID        *uuid.UUID          `gorm:"type:uuid;index"`
	AssetDescription string             `gorm:"type:varchar(500);not null"`
	MonthlyRent     decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Deposit         decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	StartDate       time.Time           `gorm:"type:date;not null"`
	EndDate         *time.Time          `gorm:"type:date"`
	Status          RentAgreementStatus `gorm:"type:varchar(20);not null;index"`
	Notes           string              `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (RentAgreement) TableName() string {
	return "rent_agreements"
}

// NewRentAgreement creates an active rent agreement
func NewRentAgreement(agreementNumber string, siteID uuid.UUID, vendorID *uuid.UUID, landlordName, assetDescription string, monthlyRent, deposit decimal.Decimal, startDate time.Time) (*RentAgreement, error) {
	if agreementNumber == "" {
		return nil, shared.NewDomainError("INVALID_AGREEMENT_NUMBER", "Agreement number cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if landlordName == "" {
		return nil, shared.NewDomainError("INVALID_LANDLORD", "Landlord name cannot be empty")
	}
	if assetDescription == "" {
		return nil, shared.NewDomainError("INVALID_ASSET", "Asset description cannot be empty")
	}
	if monthlyRent.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
	}
	if deposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Start date cannot be empty")
	}

	return &RentAgreement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AgreementNumber:   agreementNumber,
		SiteID:            siteID,
		LandlordName:      landlordName,
		VendorID:          vendorID,
		AssetDescription:  assetDescription,
		MonthlyRent:       monthlyRent,
		Deposit:           deposit,
		StartDate:         startDate,
		Status:            RentAgreementStatusActive,
	}, nil
}

// ReviseRent sets a new monthly rent on an active agreement
func (r *RentAgreement) ReviseRent(monthlyRent decimal.Decimal) error {
	if r.Status != RentAgreementStatusActive {
		return shared.NewDomainError("AGREEMENT_CLOSED", "Closed agreements cannot be revised")
	}
	if monthlyRent.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RENT", "Monthly rent must be positive")
	}
	r.MonthlyRent = monthlyRent
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Close ends the agreement on the given date
func (r *RentAgreement) Close(endDate time.Time) error {
	if r.Status != RentAgreementStatusActive {
		return shared.NewDomainError("AGREEMENT_CLOSED", "Agreement is already closed")
	}
	if endDate.Before(r.StartDate) {
		return shared.NewDomainError("INVALID_END_DATE", "End date cannot be before start date")
	}
	r.Status = RentAgreementStatusClosed
	r.EndDate = &endDate
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// IsActive returns true while the agreement is running
func (r *RentAgreement) IsActive() bool {
	return r.Status == RentAgreementStatusActive
}

// RentPayment records rent paid for one calendar month of an agreement.
// An agreement has at most one payment per month.
type RentPayment struct {
	shared.BaseAggregateRoot
	AgreementID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rent_payment_month"`
	Year        int             `gorm:"not null;uniqueIndex:idx_rent_payment_month"`
	Month       int             `gorm:"not null;uniqueIndex:idx_rent_payment_month"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidOn      time.Time       `gorm:"type:date;not null"`
	Mode        PaymentMode     `gorm:"type:varchar(20);not null"`
	Reference   string          `gorm:"type:varchar(100)"`
	Remark      string          `gorm:"type:varchar(500)"`
	EnteredBy   uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (RentPayment) TableName() string {
	return "rent_payments"
}

// NewRentPayment records a monthly rent payment
func NewRentPayment(agreementID, enteredBy uuid.UUID, year, month int, amount decimal.Decimal, paidOn time.Time, mode PaymentMode, reference, remark string) (*RentPayment, error) {
	if agreementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Agreement ID cannot be empty")
	}
	if enteredBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Entered-by user ID cannot be empty")
	}
	if year < 2000 || year > 2100 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Year is out of range")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode must be cash, bank or upi")
	}
	if paidOn.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date cannot be empty")
	}

	return &RentPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AgreementID:       agreementID,
		Year:              year,
		Month:             month,
		Amount:            amount,
		PaidOn:            paidOn,
		Mode:              mode,
		Reference:         reference,
		Remark:            remark,
		EnteredBy:         enteredBy,
	}, nil
}
