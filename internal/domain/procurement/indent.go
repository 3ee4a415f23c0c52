package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// IndentStatus represents the status of a material indent
type IndentStatus string

const (
	IndentStatusDraft      IndentStatus = "draft"
	IndentStatusSubmitted  IndentStatus = "submitted"
	IndentStatusApprovedL1 IndentStatus = "approved_l1"
	IndentStatusApproved   IndentStatus = "approved"
	IndentStatusRejected   IndentStatus = "rejected"
	IndentStatusOrdered    IndentStatus = "ordered"
	IndentStatusClosed     IndentStatus = "closed"
)

// IsValid checks if the status is a valid IndentStatus
func (s IndentStatus) IsValid() bool {
	switch s {
	case IndentStatusDraft, IndentStatusSubmitted, IndentStatusApprovedL1,
		IndentStatusApproved, IndentStatusRejected, IndentStatusOrdered, IndentStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of IndentStatus
func (s IndentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s IndentStatus) CanTransitionTo(target IndentStatus) bool {
	switch s {
	case IndentStatusDraft:
		return target == IndentStatusSubmitted
	case IndentStatusSubmitted:
		return target == IndentStatusApprovedL1 || target == IndentStatusRejected
	case IndentStatusApprovedL1:
		return target == IndentStatusApproved || target == IndentStatusRejected
	case IndentStatusApproved:
		return target == IndentStatusOrdered || target == IndentStatusClosed
	case IndentStatusOrdered:
		return target == IndentStatusClosed
	case IndentStatusRejected, IndentStatusClosed:
		return false // terminal
	}
	return false
}

// IndentItem represents a requested line in a material indent
type IndentItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	IndentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	ItemCode  string          `gorm:"type:varchar(50);not null"`
	Unit      string          `gorm:"type:varchar(20);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Remark    string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (IndentItem) TableName() string {
	return "indent_items"
}

// NewIndentItem creates a new indent line item
func NewIndentItem(indentID, itemID uuid.UUID, itemName, itemCode, unit string, quantity decimal.Decimal) (*IndentItem, error) {
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

	now := time.Now()
	return &IndentItem{
		ID:        uuid.New(),
		IndentID:  indentID,
		ItemID:    itemID,
		ItemName:  itemName,
		ItemCode:  itemCode,
		Unit:      unit,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateQuantity updates the requested quantity
func (i *IndentItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// Indent is a site material requisition routed through two approval levels
// before it can be converted into a purchase order.
type Indent struct {
	shared.BaseAggregateRoot
	IndentNumber string       `gorm:"type:varchar(50);uniqueIndex;not null"`
	SiteID       uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status       IndentStatus `gorm:"type:varchar(20);not null;index"`
	RequiredBy   *time.Time   `gorm:"type:date"`
	Remark       string       `gorm:"type:varchar(500)"`
	RequestedBy  uuid.UUID    `gorm:"type:uuid;not null"`
	SubmittedAt  *time.Time
	L1ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	L1ApprovedAt *time.Time
	L2ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	L2ApprovedAt *time.Time
	RejectedBy   *uuid.UUID `gorm:"type:uuid"`
	RejectedAt   *time.Time
	RejectReason string       `gorm:"type:varchar(500)"`
	Items        []IndentItem `gorm:"foreignKey:IndentID;references:ID"`
}

// TableName returns the table name for GORM
func (Indent) TableName() string {
	return "indents"
}

// NewIndent creates a new indent in draft status
func NewIndent(indentNumber string, siteID, requestedBy uuid.UUID, requiredBy *time.Time, remark string) (*Indent, error) {
	if indentNumber == "" {
		return nil, shared.NewDomainError("INVALID_INDENT_NUMBER", "Indent number cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requested-by user ID cannot be empty")
	}

	return &Indent{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IndentNumber:      indentNumber,
		SiteID:            siteID,
		Status:            IndentStatusDraft,
		RequiredBy:        requiredBy,
		Remark:            remark,
		RequestedBy:       requestedBy,
		Items:             make([]IndentItem, 0),
	}, nil
}

// IsEditable returns true if items can still be changed
func (n *Indent) IsEditable() bool {
	return n.Status == IndentStatusDraft
}

// AddItem adds a line to a draft indent. Each item may appear at most once.
func (n *Indent) AddItem(itemID uuid.UUID, itemName, itemCode, unit string, quantity decimal.Decimal) error {
	if !n.IsEditable() {
		return shared.NewDomainError("INDENT_NOT_EDITABLE", "Only draft indents can be modified")
	}
	for _, it := range n.Items {
		if it.ItemID == itemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in indent")
		}
	}

	item, err := NewIndentItem(n.ID, itemID, itemName, itemCode, unit, quantity)
	if err != nil {
		return err
	}
	n.Items = append(n.Items, *item)
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
	return nil
}

// UpdateItemQuantity changes the quantity of an existing line
func (n *Indent) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if !n.IsEditable() {
		return shared.NewDomainError("INDENT_NOT_EDITABLE", "Only draft indents can be modified")
	}
	for idx := range n.Items {
		if n.Items[idx].ItemID == itemID {
			if err := n.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			n.UpdatedAt = time.Now()
			n.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in indent")
}

// RemoveItem removes a line from a draft indent
func (n *Indent) RemoveItem(itemID uuid.UUID) error {
	if !n.IsEditable() {
		return shared.NewDomainError("INDENT_NOT_EDITABLE", "Only draft indents can be modified")
	}
	for idx, it := range n.Items {
		if it.ItemID == itemID {
			n.Items = append(n.Items[:idx], n.Items[idx+1:]...)
			n.UpdatedAt = time.Now()
			n.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in indent")
}

// Submit moves a draft indent into the approval flow
func (n *Indent) Submit() error {
	if !n.Status.CanTransitionTo(IndentStatusSubmitted) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only draft indents can be submitted")
	}
	if len(n.Items) == 0 {
		return shared.NewDomainError("EMPTY_INDENT", "Indent must have at least one item")
	}

	now := time.Now()
	n.Status = IndentStatusSubmitted
	n.SubmittedAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()
	return nil
}

// ApproveL1 records first-level approval
func (n *Indent) ApproveL1(approverID uuid.UUID) error {
	if !n.Status.CanTransitionTo(IndentStatusApprovedL1) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only submitted indents can be approved at level 1")
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	n.Status = IndentStatusApprovedL1
	n.L1ApprovedBy = &approverID
	n.L1ApprovedAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()
	return nil
}

// ApproveL2 records final approval
func (n *Indent) ApproveL2(approverID uuid.UUID) error {
	if !n.Status.CanTransitionTo(IndentStatusApproved) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only level-1 approved indents can receive final approval")
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}
	if n.L1ApprovedBy != nil && *n.L1ApprovedBy == approverID {
		return shared.NewDomainError("SAME_APPROVER", "Level 2 approver must differ from level 1 approver")
	}

	now := time.Now()
	n.Status = IndentStatusApproved
	n.L2ApprovedBy = &approverID
	n.L2ApprovedAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()
	return nil
}

// Reject rejects a pending indent with a reason
func (n *Indent) Reject(rejectorID uuid.UUID, reason string) error {
	if !n.Status.CanTransitionTo(IndentStatusRejected) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only pending indents can be rejected")
	}
	if rejectorID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Rejector ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("MISSING_REASON", "Rejection reason cannot be empty")
	}

	now := time.Now()
	n.Status = IndentStatusRejected
	n.RejectedBy = &rejectorID
	n.RejectedAt = &now
	n.RejectReason = reason
	n.UpdatedAt = now
	n.IncrementVersion()
	return nil
}

// MarkOrdered flags the indent as converted into a purchase order
func (n *Indent) MarkOrdered() error {
	if !n.Status.CanTransitionTo(IndentStatusOrdered) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only approved indents can be ordered")
	}
	n.Status = IndentStatusOrdered
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
	return nil
}

// Close closes a fully processed indent
func (n *Indent) Close() error {
	if !n.Status.CanTransitionTo(IndentStatusClosed) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only approved or ordered indents can be closed")
	}
	n.Status = IndentStatusClosed
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
	return nil
}
