package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// InwardBillStatus represents the status of an inward bill
type InwardBillStatus string

const (
	InwardBillStatusRecorded InwardBillStatus = "recorded"
	InwardBillStatusVerified InwardBillStatus = "verified"
)

// IsValid checks if the status is a valid InwardBillStatus
func (s InwardBillStatus) IsValid() bool {
	return s == InwardBillStatusRecorded || s == InwardBillStatusVerified
}

// String returns the string representation of InwardBillStatus
func (s InwardBillStatus) String() string {
	return string(s)
}

// InwardBillLine represents a received quantity on an inward bill
type InwardBillLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName    string          `gorm:"type:varchar(200);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	ReceivedQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Remark      string          `gorm:"type:varchar(500)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InwardBillLine) TableName() string {
	return "inward_bill_lines"
}

// NewInwardBillLine creates a new inward bill line
func NewInwardBillLine(billID, itemID uuid.UUID, itemName, unit string, receivedQty, rate decimal.Decimal) (*InwardBillLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if receivedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	return &InwardBillLine{
		ID:          uuid.New(),
		BillID:      billID,
		ItemID:      itemID,
		ItemName:    itemName,
		Unit:        unit,
		ReceivedQty: receivedQty,
		Rate:        rate,
		Amount:      receivedQty.Mul(rate).Round(4),
		CreatedAt:   time.Now(),
	}, nil
}

// InwardBill records a goods receipt against an issued purchase order.
// Posting a bill increments site stock and advances the order status.
type InwardBill struct {
	shared.BaseAggregateRoot
	BillNumber       string           `gorm:"type:varchar(50);uniqueIndex;not null"`
	PurchaseOrderID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	SiteID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	VendorID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status           InwardBillStatus `gorm:"type:varchar(20);not null;index"`
	BillDate         time.Time        `gorm:"type:date;not null"`
	VendorInvoiceNo  string           `gorm:"type:varchar(100)"`
	VehicleNumber    string           `gorm:"type:varchar(30)"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Remark           string           `gorm:"type:varchar(500)"`
	RecordedBy       uuid.UUID        `gorm:"type:uuid;not null"`
	VerifiedBy       *uuid.UUID       `gorm:"type:uuid"`
	VerifiedAt       *time.Time
	Lines            []InwardBillLine `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for GORM
func (InwardBill) TableName() string {
	return "inward_bills"
}

// NewInwardBill creates a new inward bill in recorded status
func NewInwardBill(billNumber string, orderID, siteID, vendorID, recordedBy uuid.UUID, billDate time.Time) (*InwardBill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Purchase order ID cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Recorded-by user ID cannot be empty")
	}
	if billDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_BILL_DATE", "Bill date cannot be empty")
	}
	if billDate.After(time.Now()) {
		return nil, shared.NewDomainError("FUTURE_BILL_DATE", "Bill date cannot be in the future")
	}

	return &InwardBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		PurchaseOrderID:   orderID,
		SiteID:            siteID,
		VendorID:          vendorID,
		Status:            InwardBillStatusRecorded,
		BillDate:          billDate,
		TotalAmount:       decimal.Zero,
		Lines:             make([]InwardBillLine, 0),
		RecordedBy:        recordedBy,
	}, nil
}

// AddLine appends a received line and updates the bill total
func (b *InwardBill) AddLine(itemID uuid.UUID, itemName, unit string, receivedQty, rate decimal.Decimal) error {
	if b.Status != InwardBillStatusRecorded {
		return shared.NewDomainError("BILL_NOT_EDITABLE", "Verified bills cannot be modified")
	}
	for _, l := range b.Lines {
		if l.ItemID == itemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item already exists on bill")
		}
	}

	line, err := NewInwardBillLine(b.ID, itemID, itemName, unit, receivedQty, rate)
	if err != nil {
		return err
	}
	b.Lines = append(b.Lines, *line)
	b.TotalAmount = b.TotalAmount.Add(line.Amount)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetTransport records the vendor invoice and vehicle references
func (b *InwardBill) SetTransport(vendorInvoiceNo, vehicleNumber string) {
	b.VendorInvoiceNo = vendorInvoiceNo
	b.VehicleNumber = vehicleNumber
	b.UpdatedAt = time.Now()
}

// Verify marks the bill as checked against the physical receipt
func (b *InwardBill) Verify(verifierID uuid.UUID) error {
	if b.Status != InwardBillStatusRecorded {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only recorded bills can be verified")
	}
	if verifierID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Verifier ID cannot be empty")
	}

	now := time.Now()
	b.Status = InwardBillStatusVerified
	b.VerifiedBy = &verifierID
	b.VerifiedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()
	return nil
}

// ReceiptLines converts the bill lines into order receipt lines
func (b *InwardBill) ReceiptLines() []ReceiptLine {
	lines := make([]ReceiptLine, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, ReceiptLine{ItemID: l.ItemID, Quantity: l.ReceivedQty})
	}
	return lines
}
