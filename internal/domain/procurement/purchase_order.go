package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "draft"
	PurchaseOrderStatusIssued            PurchaseOrderStatus = "issued"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusIssued, PurchaseOrderStatusPartiallyReceived,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusIssued || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusIssued:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false // terminal
	}
	return false
}

// CanReceive returns true if goods can be received against this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusIssued || s == PurchaseOrderStatusPartiallyReceived
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName    string          `gorm:"type:varchar(200);not null"`
	ItemCode    string          `gorm:"type:varchar(50);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	OrderedQty  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // OrderedQty * Rate
	Remark      string          `gorm:"type:varchar(500)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order line
func NewPurchaseOrderItem(orderID, itemID uuid.UUID, itemName, itemCode, unit string, quantity, rate decimal.Decimal) (*PurchaseOrderItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ItemID:      itemID,
		ItemName:    itemName,
		ItemCode:    itemCode,
		Unit:        unit,
		OrderedQty:  quantity,
		ReceivedQty: decimal.Zero,
		Rate:        rate,
		Amount:      quantity.Mul(rate).Round(4),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the ordered quantity and recalculates the amount
func (i *PurchaseOrderItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity.LessThan(i.ReceivedQty) {
		return shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity cannot be less than received quantity")
	}
	i.OrderedQty = quantity
	i.Amount = quantity.Mul(i.Rate).Round(4)
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateRate updates the unit rate and recalculates the amount
func (i *PurchaseOrderItem) UpdateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	i.Rate = rate
	i.Amount = i.OrderedQty.Mul(rate).Round(4)
	i.UpdatedAt = time.Now()
	return nil
}

// PendingQty returns the quantity still to be received
func (i *PurchaseOrderItem) PendingQty() decimal.Decimal {
	return i.OrderedQty.Sub(i.ReceivedQty)
}

// AddReceivedQty accumulates a received quantity, never beyond ordered
func (i *PurchaseOrderItem) AddReceivedQty(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if quantity.GreaterThan(i.PendingQty()) {
		return shared.NewDomainError("OVER_RECEIPT", "Received quantity exceeds pending quantity")
	}
	i.ReceivedQty = i.ReceivedQty.Add(quantity)
	i.UpdatedAt = time.Now()
	return nil
}

// FullyReceived returns true when the ordered quantity has been received
func (i *PurchaseOrderItem) FullyReceived() bool {
	return i.ReceivedQty.GreaterThanOrEqual(i.OrderedQty)
}

// PurchaseOrder is an order placed on a vendor for delivery to a site,
// optionally raised against an approved indent.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber    string              `gorm:"type:varchar(50);uniqueIndex;not null"`
	SiteID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	VendorID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	SourceIndentID *uuid.UUID          `gorm:"type:uuid;index"`
	Status         PurchaseOrderStatus `gorm:"type:varchar(20);not null;index"`
	OrderDate      time.Time           `gorm:"type:date;not null"`
	ExpectedDate   *time.Time          `gorm:"type:date"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Terms          string              `gorm:"type:varchar(1000)"`
	Remark         string              `gorm:"type:varchar(500)"`
	CreatedBy      uuid.UUID           `gorm:"type:uuid;not null"`
	IssuedAt       *time.Time
	CancelledAt    *time.Time
	CancelReason   string              `gorm:"type:varchar(500)"`
	Items          []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in draft status
func NewPurchaseOrder(orderNumber string, siteID, vendorID, createdBy uuid.UUID, orderDate time.Time, sourceIndentID *uuid.UUID) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Created-by user ID cannot be empty")
	}
	if orderDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ORDER_DATE", "Order date cannot be empty")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SiteID:            siteID,
		VendorID:          vendorID,
		SourceIndentID:    sourceIndentID,
		Status:            PurchaseOrderStatusDraft,
		OrderDate:         orderDate,
		TotalAmount:       decimal.Zero,
		Items:             make([]PurchaseOrderItem, 0),
		CreatedBy:         createdBy,
	}, nil
}

// IsEditable returns true if items can still be changed
func (o *PurchaseOrder) IsEditable() bool {
	return o.Status == PurchaseOrderStatusDraft
}

func (o *PurchaseOrder) recalcTotal() {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Amount)
	}
	o.TotalAmount = total
}

// AddItem adds a line to a draft order. Each item may appear at most once.
func (o *PurchaseOrder) AddItem(itemID uuid.UUID, itemName, itemCode, unit string, quantity, rate decimal.Decimal) error {
	if !o.IsEditable() {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Only draft orders can be modified")
	}
	for _, it := range o.Items {
		if it.ItemID == itemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in order")
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, itemID, itemName, itemCode, unit, quantity, rate)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, *item)
	o.recalcTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// UpdateItem changes the quantity and rate of an existing line
func (o *PurchaseOrder) UpdateItem(itemID uuid.UUID, quantity, rate decimal.Decimal) error {
	if !o.IsEditable() {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Only draft orders can be modified")
	}
	for idx := range o.Items {
		if o.Items[idx].ItemID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			if err := o.Items[idx].UpdateRate(rate); err != nil {
				return err
			}
			o.recalcTotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in order")
}

// RemoveItem removes a line from a draft order
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if !o.IsEditable() {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Only draft orders can be modified")
	}
	for idx, it := range o.Items {
		if it.ItemID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalcTotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in order")
}

// SetTerms updates the free-text terms and remark
func (o *PurchaseOrder) SetTerms(terms, remark string) error {
	if !o.IsEditable() {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Only draft orders can be modified")
	}
	o.Terms = terms
	o.Remark = remark
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Issue releases the order to the vendor
func (o *PurchaseOrder) Issue() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusIssued) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only draft orders can be issued")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must have at least one item")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusIssued
	o.IssuedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// Cancel cancels an order with no receipts against it
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Order cannot be cancelled in its current status")
	}
	for _, it := range o.Items {
		if it.ReceivedQty.IsPositive() {
			return shared.NewDomainError("ORDER_HAS_RECEIPTS", "Order with received goods cannot be cancelled")
		}
	}
	if reason == "" {
		return shared.NewDomainError("MISSING_REASON", "Cancellation reason cannot be empty")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// ReceiptLine is one received quantity applied against an order line
type ReceiptLine struct {
	ItemID   uuid.UUID
	Quantity decimal.Decimal
}

// Receive applies receipt quantities to the order lines and advances the
// order status to partially_received or received.
func (o *PurchaseOrder) Receive(lines []ReceiptLine) error {
	if !o.Status.CanReceive() {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Order is not open for receiving")
	}
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_RECEIPT", "Receipt must have at least one line")
	}

	for _, line := range lines {
		found := false
		for idx := range o.Items {
			if o.Items[idx].ItemID == line.ItemID {
				if err := o.Items[idx].AddReceivedQty(line.Quantity); err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			return shared.NewDomainError("ITEM_NOT_FOUND", "Receipt line does not match any order item")
		}
	}

	allReceived := true
	for _, it := range o.Items {
		if !it.FullyReceived() {
			allReceived = false
			break
		}
	}
	if allReceived {
		o.Status = PurchaseOrderStatusReceived
	} else {
		o.Status = PurchaseOrderStatusPartiallyReceived
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}
