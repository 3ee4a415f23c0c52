package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// BOQStatus represents the status of a bill of quantities
type BOQStatus string

const (
	BOQStatusDraft     BOQStatus = "draft"
	BOQStatusFinalized BOQStatus = "finalized"
)

// IsValid checks if the status is a valid BOQStatus
func (s BOQStatus) IsValid() bool {
	return s == BOQStatusDraft || s == BOQStatusFinalized
}

// BOQItem is one measurable work line in a bill of quantities
type BOQItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BOQID       uuid.UUID       `gorm:"column:boq_id;type:uuid;not null;index"`
	ItemNo      string          `gorm:"type:varchar(30);not null"`
	Description string          `gorm:"type:varchar(1000);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BOQItem) TableName() string {
	return "boq_items"
}

// NewBOQItem creates a new BOQ work line
func NewBOQItem(boqID uuid.UUID, itemNo, description, unit string, quantity, rate decimal.Decimal) (*BOQItem, error) {
	if itemNo == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NO", "Item number cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
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
	return &BOQItem{
		ID:          uuid.New(),
		BOQID:       boqID,
		ItemNo:      itemNo,
		Description: description,
		Unit:        unit,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      quantity.Mul(rate).Round(4),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// BOQ is the bill of quantities for a site: the priced schedule of work
// items that work orders are awarded against. Only finalized BOQs can back
// a work order.
type BOQ struct {
	shared.BaseAggregateRoot
	BOQNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	SiteID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Status      BOQStatus       `gorm:"type:varchar(20);not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Remark      string          `gorm:"type:varchar(500)"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	FinalizedBy *uuid.UUID      `gorm:"type:uuid"`
	FinalizedAt *time.Time
	Items       []BOQItem `gorm:"foreignKey:BOQID;references:ID"`
}

// TableName returns the table name for GORM
func (BOQ) TableName() string {
	return "boqs"
}

// NewBOQ creates a new draft bill of quantities
func NewBOQ(boqNumber string, siteID, createdBy uuid.UUID, title, remark string) (*BOQ, error) {
	if boqNumber == "" {
		return nil, shared.NewDomainError("INVALID_BOQ_NUMBER", "BOQ number cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Created-by user ID cannot be empty")
	}

	return &BOQ{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BOQNumber:         boqNumber,
		SiteID:            siteID,
		Title:             title,
		Status:            BOQStatusDraft,
		TotalAmount:       decimal.Zero,
		Remark:            remark,
		CreatedBy:         createdBy,
		Items:             make([]BOQItem, 0),
	}, nil
}

// IsEditable returns true while the BOQ is still a draft
func (b *BOQ) IsEditable() bool {
	return b.Status == BOQStatusDraft
}

func (b *BOQ) recalcTotal() {
	total := decimal.Zero
	for _, it := range b.Items {
		total = total.Add(it.Amount)
	}
	b.TotalAmount = total
}

// AddItem adds a work line to a draft BOQ. Item numbers must be unique.
func (b *BOQ) AddItem(itemNo, description, unit string, quantity, rate decimal.Decimal) error {
	if !b.IsEditable() {
		return shared.NewDomainError("BOQ_NOT_EDITABLE", "Finalized BOQs cannot be modified")
	}
	for _, it := range b.Items {
		if it.ItemNo == itemNo {
			return shared.NewDomainError("DUPLICATE_ITEM_NO", "Item number already exists in BOQ")
		}
	}

	item, err := NewBOQItem(b.ID, itemNo, description, unit, quantity, rate)
	if err != nil {
		return err
	}
	b.Items = append(b.Items, *item)
	b.recalcTotal()
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// UpdateItem revises quantity and rate of a draft BOQ line
func (b *BOQ) UpdateItem(itemID uuid.UUID, quantity, rate decimal.Decimal) error {
	if !b.IsEditable() {
		return shared.NewDomainError("BOQ_NOT_EDITABLE", "Finalized BOQs cannot be modified")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	for idx := range b.Items {
		if b.Items[idx].ID == itemID {
			b.Items[idx].Quantity = quantity
			b.Items[idx].Rate = rate
			b.Items[idx].Amount = quantity.Mul(rate).Round(4)
			b.Items[idx].UpdatedAt = time.Now()
			b.recalcTotal()
			b.UpdatedAt = time.Now()
			b.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in BOQ")
}

// RemoveItem removes a work line from a draft BOQ
func (b *BOQ) RemoveItem(itemID uuid.UUID) error {
	if !b.IsEditable() {
		return shared.NewDomainError("BOQ_NOT_EDITABLE", "Finalized BOQs cannot be modified")
	}
	for idx, it := range b.Items {
		if it.ID == itemID {
			b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
			b.recalcTotal()
			b.UpdatedAt = time.Now()
			b.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in BOQ")
}

// Finalize locks the BOQ so work orders can be awarded against it
func (b *BOQ) Finalize(finalizedBy uuid.UUID) error {
	if b.Status != BOQStatusDraft {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "BOQ is already finalized")
	}
	if len(b.Items) == 0 {
		return shared.NewDomainError("EMPTY_BOQ", "BOQ must have at least one item")
	}
	if finalizedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Finalized-by user ID cannot be empty")
	}

	now := time.Now()
	b.Status = BOQStatusFinalized
	b.FinalizedBy = &finalizedBy
	b.FinalizedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()
	return nil
}
