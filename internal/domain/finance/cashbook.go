package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// VoucherType distinguishes money in from money out
type VoucherType string

const (
	VoucherTypePayment VoucherType = "payment"
	VoucherTypeReceipt VoucherType = "receipt"
)

// IsValid checks if the type is a valid VoucherType
func (t VoucherType) IsValid() bool {
	return t == VoucherTypePayment || t == VoucherTypeReceipt
}

// PaymentMode is the instrument a voucher was settled with
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "cash"
	PaymentModeBank PaymentMode = "bank"
	PaymentModeUPI  PaymentMode = "upi"
)

// IsValid checks if the mode is a valid PaymentMode
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeBank, PaymentModeUPI:
		return true
	}
	return false
}

// Cashbook is a site's petty cash and bank ledger. Vouchers are entered
// against it and the running balance is derived from receipts minus
// payments.
type Cashbook struct {
	shared.BaseAggregateRoot
	SiteID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Name           string          `gorm:"type:varchar(200);not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OpenedOn       time.Time       `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (Cashbook) TableName() string {
	return "cashbooks"
}

// NewCashbook opens a cashbook for a site. One cashbook per site.
func NewCashbook(siteID uuid.UUID, name string, openingBalance decimal.Decimal, openedOn time.Time) (*Cashbook, error) {
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Cashbook name cannot be empty")
	}
	if openingBalance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Opening balance cannot be negative")
	}
	if openedOn.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Opening date cannot be empty")
	}

	return &Cashbook{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SiteID:            siteID,
		Name:              name,
		OpeningBalance:    openingBalance,
		OpenedOn:          openedOn,
	}, nil
}

// Rename changes the cashbook display name
func (c *Cashbook) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Cashbook name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Voucher is a single cashbook entry: a payment out or a receipt in
type Voucher struct {
	shared.BaseAggregateRoot
	VoucherNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	CashbookID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          VoucherType     `gorm:"type:varchar(20);not null;index"`
	Mode          PaymentMode     `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VoucherDate   time.Time       `gorm:"type:date;not null;index"`
	PartyName     string          `gorm:"type:varchar(200);not null"`
	VendorID      *uuid.UUID      `gorm:"type:uuid;index"`
	Head          string          `gorm:"type:varchar(100);not null"` // expense or income head
	Narration     string          `gorm:"type:varchar(1000)"`
	Reference     string          `gorm:"type:varchar(100)"` // cheque / UTR / UPI ref
	EnteredBy     uuid.UUID       `gorm:"type:uuid;not null"`
	Cancelled     bool            `gorm:"not null;default:false"`
	CancelReason  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Voucher) TableName() string {
	return "cashbook_vouchers"
}

// NewVoucher enters a payment or receipt voucher into a cashbook
func NewVoucher(voucherNumber string, cashbookID, enteredBy uuid.UUID, vType VoucherType, mode PaymentMode, amount decimal.Decimal, voucherDate time.Time, partyName, head, narration, reference string, vendorID *uuid.UUID) (*Voucher, error) {
	if voucherNumber == "" {
		return nil, shared.NewDomainError("INVALID_VOUCHER_NUMBER", "Voucher number cannot be empty")
	}
	if cashbookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASHBOOK", "Cashbook ID cannot be empty")
	}
	if enteredBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Entered-by user ID cannot be empty")
	}
	if !vType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be payment or receipt")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode must be cash, bank or upi")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Voucher amount must be positive")
	}
	if voucherDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Voucher date cannot be empty")
	}
	if voucherDate.After(time.Now()) {
		return nil, shared.NewDomainError("FUTURE_DATE", "Voucher date cannot be in the future")
	}
	if partyName == "" {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party name cannot be empty")
	}
	if head == "" {
		return nil, shared.NewDomainError("INVALID_HEAD", "Voucher head cannot be empty")
	}

	return &Voucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VoucherNumber:     voucherNumber,
		CashbookID:        cashbookID,
		Type:              vType,
		Mode:              mode,
		Amount:            amount,
		VoucherDate:       voucherDate,
		PartyName:         partyName,
		VendorID:          vendorID,
		Head:              head,
		Narration:         narration,
		Reference:         reference,
		EnteredBy:         enteredBy,
	}, nil
}

// SignedAmount returns the amount with receipts positive and payments
// negative, for running balance computation.
func (v *Voucher) SignedAmount() decimal.Decimal {
	if v.Cancelled {
		return decimal.Zero
	}
	if v.Type == VoucherTypeReceipt {
		return v.Amount
	}
	return v.Amount.Neg()
}

// Cancel voids the voucher. Cancelled vouchers stay in the ledger but
// no longer affect the balance.
func (v *Voucher) Cancel(reason string) error {
	if v.Cancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Voucher is already cancelled")
	}
	if reason == "" {
		return shared.NewDomainError("MISSING_REASON", "Cancellation reason cannot be empty")
	}
	v.Cancelled = true
	v.CancelReason = reason
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}
