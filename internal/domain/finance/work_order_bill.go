package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// WorkOrderBillStatus represents the status of an RA bill
type WorkOrderBillStatus string

const (
	WorkOrderBillStatusDraft     WorkOrderBillStatus = "draft"
	WorkOrderBillStatusCertified WorkOrderBillStatus = "certified"
)

// IsValid checks if the status is a valid WorkOrderBillStatus
func (s WorkOrderBillStatus) IsValid() bool {
	return s == WorkOrderBillStatusDraft || s == WorkOrderBillStatusCertified
}

// WorkOrderBillLine measures progress on one awarded work order item.
// Quantities are cumulative: PrevCumulativeQty is everything certified on
// earlier RA bills, ThisBillQty is the current measurement, and their sum
// may never exceed the awarded quantity.
type WorkOrderBillLine struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BillID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkOrderItemID   uuid.UUID       `gorm:"type:uuid;not null"`
	ItemNo            string          `gorm:"type:varchar(30);not null"`
	Description       string          `gorm:"type:varchar(1000);not null"`
	Unit              string          `gorm:"type:varchar(20);not null"`
	AwardedQty        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PrevCumulativeQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ThisBillQty       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"` // ThisBillQty * Rate
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkOrderBillLine) TableName() string {
	return "work_order_bill_lines"
}

// NewWorkOrderBillLine creates a progress line, rejecting measurements
// that would take the cumulative quantity past the awarded quantity.
func NewWorkOrderBillLine(billID, workOrderItemID uuid.UUID, itemNo, description, unit string, awardedQty, prevCumulativeQty, thisBillQty, rate decimal.Decimal) (*WorkOrderBillLine, error) {
	if workOrderItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER_ITEM", "Work order item ID cannot be empty")
	}
	if thisBillQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Billed quantity must be positive")
	}
	if prevCumulativeQty.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Previous cumulative quantity cannot be negative")
	}
	if prevCumulativeQty.Add(thisBillQty).GreaterThan(awardedQty) {
		return nil, shared.NewDomainError("OVER_BILLING", "Cumulative billed quantity exceeds awarded quantity")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	return &WorkOrderBillLine{
		ID:                uuid.New(),
		BillID:            billID,
		WorkOrderItemID:   workOrderItemID,
		ItemNo:            itemNo,
		Description:       description,
		Unit:              unit,
		AwardedQty:        awardedQty,
		PrevCumulativeQty: prevCumulativeQty,
		ThisBillQty:       thisBillQty,
		Rate:              rate,
		Amount:            thisBillQty.Mul(rate).Round(4),
		CreatedAt:         time.Now(),
	}, nil
}

// CumulativeQty returns the total certified quantity including this bill
func (l *WorkOrderBillLine) CumulativeQty() decimal.Decimal {
	return l.PrevCumulativeQty.Add(l.ThisBillQty)
}

// RemainingQty returns the awarded quantity still unbilled after this bill
func (l *WorkOrderBillLine) RemainingQty() decimal.Decimal {
	return l.AwardedQty.Sub(l.CumulativeQty())
}

// ProgressPercent returns the cumulative progress as a percentage of the
// awarded quantity, rounded to two decimals.
func (l *WorkOrderBillLine) ProgressPercent() decimal.Decimal {
	if l.AwardedQty.IsZero() {
		return decimal.Zero
	}
	return l.CumulativeQty().Div(l.AwardedQty).Mul(decimal.NewFromInt(100)).Round(2)
}

// WorkOrderBill is a running account (RA) bill measuring contractor
// progress against an issued work order.
type WorkOrderBill struct {
	shared.BaseAggregateRoot
	BillNumber  string              `gorm:"type:varchar(50);uniqueIndex;not null"`
	WorkOrderID uuid.UUID           `gorm:"type:uuid;not null;index"`
	SiteID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	RANumber    int                 `gorm:"not null"` // sequence of the bill within the work order
	Status      WorkOrderBillStatus `gorm:"type:varchar(20);not null;index"`
	BillDate    time.Time           `gorm:"type:date;not null"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Remark      string              `gorm:"type:varchar(500)"`
	CreatedBy   uuid.UUID           `gorm:"type:uuid;not null"`
	CertifiedBy *uuid.UUID          `gorm:"type:uuid"`
	CertifiedAt *time.Time
	Lines       []WorkOrderBillLine `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for GORM
func (WorkOrderBill) TableName() string {
	return "work_order_bills"
}

// NewWorkOrderBill creates a draft RA bill against a work order
func NewWorkOrderBill(billNumber string, workOrderID, siteID, createdBy uuid.UUID, raNumber int, billDate time.Time) (*WorkOrderBill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER", "Work order ID cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Created-by user ID cannot be empty")
	}
	if raNumber < 1 {
		return nil, shared.NewDomainError("INVALID_RA_NUMBER", "RA number must be positive")
	}
	if billDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_BILL_DATE", "Bill date cannot be empty")
	}

	return &WorkOrderBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		WorkOrderID:       workOrderID,
		SiteID:            siteID,
		RANumber:          raNumber,
		Status:            WorkOrderBillStatusDraft,
		BillDate:          billDate,
		TotalAmount:       decimal.Zero,
		CreatedBy:         createdBy,
		Lines:             make([]WorkOrderBillLine, 0),
	}, nil
}

// AddLine measures progress on a work order item. Each item may appear
// at most once per bill.
func (b *WorkOrderBill) AddLine(workOrderItemID uuid.UUID, itemNo, description, unit string, awardedQty, prevCumulativeQty, thisBillQty, rate decimal.Decimal) error {
	if b.Status != WorkOrderBillStatusDraft {
		return shared.NewDomainError("BILL_NOT_EDITABLE", "Certified bills cannot be modified")
	}
	for _, l := range b.Lines {
		if l.WorkOrderItemID == workOrderItemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Work order item already measured on this bill")
		}
	}

	line, err := NewWorkOrderBillLine(b.ID, workOrderItemID, itemNo, description, unit, awardedQty, prevCumulativeQty, thisBillQty, rate)
	if err != nil {
		return err
	}
	b.Lines = append(b.Lines, *line)
	b.TotalAmount = b.TotalAmount.Add(line.Amount)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Certify approves the measured quantities for payment
func (b *WorkOrderBill) Certify(certifierID uuid.UUID) error {
	if b.Status != WorkOrderBillStatusDraft {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only draft bills can be certified")
	}
	if len(b.Lines) == 0 {
		return shared.NewDomainError("EMPTY_BILL", "Bill must have at least one line")
	}
	if certifierID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Certifier ID cannot be empty")
	}

	now := time.Now()
	b.Status = WorkOrderBillStatusCertified
	b.CertifiedBy = &certifierID
	b.CertifiedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()
	return nil
}
