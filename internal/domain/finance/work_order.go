package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// WorkOrderStatus represents the status of a work order
type WorkOrderStatus string

const (
	WorkOrderStatusDraft     WorkOrderStatus = "draft"
	WorkOrderStatusIssued    WorkOrderStatus = "issued"
	WorkOrderStatusCompleted WorkOrderStatus = "completed"
	WorkOrderStatusCancelled WorkOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid WorkOrderStatus
func (s WorkOrderStatus) IsValid() bool {
	switch s {
	case WorkOrderStatusDraft, WorkOrderStatusIssued, WorkOrderStatusCompleted, WorkOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s WorkOrderStatus) CanTransitionTo(target WorkOrderStatus) bool {
	switch s {
	case WorkOrderStatusDraft:
		return target == WorkOrderStatusIssued || target == WorkOrderStatusCancelled
	case WorkOrderStatusIssued:
		return target == WorkOrderStatusCompleted || target == WorkOrderStatusCancelled
	case WorkOrderStatusCompleted, WorkOrderStatusCancelled:
		return false // terminal
	}
	return false
}

// WorkOrderItem is an awarded line referencing a finalized BOQ item
type WorkOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BOQItemID   uuid.UUID       `gorm:"type:uuid;not null"`
	ItemNo      string          `gorm:"type:varchar(30);not null"`
	Description string          `gorm:"type:varchar(1000);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	AwardedQty  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkOrderItem) TableName() string {
	return "work_order_items"
}

// NewWorkOrderItem creates a new awarded work line
func NewWorkOrderItem(workOrderID, boqItemID uuid.UUID, itemNo, description, unit string, awardedQty, rate decimal.Decimal) (*WorkOrderItem, error) {
	if boqItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOQ_ITEM", "BOQ item ID cannot be empty")
	}
	if awardedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Awarded quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	now := time.Now()
	return &WorkOrderItem{
		ID:          uuid.New(),
		WorkOrderID: workOrderID,
		BOQItemID:   boqItemID,
		ItemNo:      itemNo,
		Description: description,
		Unit:        unit,
		AwardedQty:  awardedQty,
		Rate:        rate,
		Amount:      awardedQty.Mul(rate).Round(4),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// WorkOrder awards BOQ work to a contractor. RA (running account) bills
// are raised against it as work progresses.
type WorkOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	SiteID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BOQID        uuid.UUID       `gorm:"column:boq_id;type:uuid;not null;index"`
	ContractorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status       WorkOrderStatus `gorm:"type:varchar(20);not null;index"`
	AwardDate    time.Time       `gorm:"type:date;not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Terms        string          `gorm:"type:varchar(1000)"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	IssuedAt     *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string          `gorm:"type:varchar(500)"`
	Items        []WorkOrderItem `gorm:"foreignKey:WorkOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (WorkOrder) TableName() string {
	return "work_orders"
}

// NewWorkOrder creates a draft work order against a finalized BOQ
func NewWorkOrder(orderNumber string, siteID, boqID, contractorID, createdBy uuid.UUID, awardDate time.Time) (*WorkOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if boqID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOQ", "BOQ ID cannot be empty")
	}
	if contractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Created-by user ID cannot be empty")
	}
	if awardDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_AWARD_DATE", "Award date cannot be empty")
	}

	return &WorkOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SiteID:            siteID,
		BOQID:             boqID,
		ContractorID:      contractorID,
		Status:            WorkOrderStatusDraft,
		AwardDate:         awardDate,
		TotalAmount:       decimal.Zero,
		CreatedBy:         createdBy,
		Items:             make([]WorkOrderItem, 0),
	}, nil
}

// IsEditable returns true while the order is a draft
func (w *WorkOrder) IsEditable() bool {
	return w.Status == WorkOrderStatusDraft
}

func (w *WorkOrder) recalcTotal() {
	total := decimal.Zero
	for _, it := range w.Items {
		total = total.Add(it.Amount)
	}
	w.TotalAmount = total
}

// AddItem awards a BOQ line on a draft order. Each BOQ item may be awarded
// at most once per order.
func (w *WorkOrder) AddItem(boqItemID uuid.UUID, itemNo, description, unit string, awardedQty, rate decimal.Decimal) error {
	if !w.IsEditable() {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Only draft work orders can be modified")
	}
	for _, it := range w.Items {
		if it.BOQItemID == boqItemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "BOQ item already awarded on this order")
		}
	}

	item, err := NewWorkOrderItem(w.ID, boqItemID, itemNo, description, unit, awardedQty, rate)
	if err != nil {
		return err
	}
	w.Items = append(w.Items, *item)
	w.recalcTotal()
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// RemoveItem removes an awarded line from a draft order
func (w *WorkOrder) RemoveItem(boqItemID uuid.UUID) error {
	if !w.IsEditable() {
		return shared.NewDomainError("ORDER_NOT_EDITABLE", "Only draft work orders can be modified")
	}
	for idx, it := range w.Items {
		if it.BOQItemID == boqItemID {
			w.Items = append(w.Items[:idx], w.Items[idx+1:]...)
			w.recalcTotal()
			w.UpdatedAt = time.Now()
			w.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in work order")
}

// Issue releases the order to the contractor
func (w *WorkOrder) Issue() error {
	if !w.Status.CanTransitionTo(WorkOrderStatusIssued) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only draft work orders can be issued")
	}
	if len(w.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Work order must have at least one item")
	}

	now := time.Now()
	w.Status = WorkOrderStatusIssued
	w.IssuedAt = &now
	w.UpdatedAt = now
	w.IncrementVersion()
	return nil
}

// Complete closes out a fully billed order
func (w *WorkOrder) Complete() error {
	if !w.Status.CanTransitionTo(WorkOrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only issued work orders can be completed")
	}

	now := time.Now()
	w.Status = WorkOrderStatusCompleted
	w.CompletedAt = &now
	w.UpdatedAt = now
	w.IncrementVersion()
	return nil
}

// Cancel cancels a draft or issued order
func (w *WorkOrder) Cancel(reason string) error {
	if !w.Status.CanTransitionTo(WorkOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Work order cannot be cancelled in its current status")
	}
	if reason == "" {
		return shared.NewDomainError("MISSING_REASON", "Cancellation reason cannot be empty")
	}

	now := time.Now()
	w.Status = WorkOrderStatusCancelled
	w.CancelledAt = &now
	w.CancelReason = reason
	w.UpdatedAt = now
	w.IncrementVersion()
	return nil
}
