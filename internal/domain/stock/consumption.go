package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// ConsumptionStatus represents the status of a daily consumption record
type ConsumptionStatus string

const (
	ConsumptionStatusPosted  ConsumptionStatus = "posted"
	ConsumptionStatusAmended ConsumptionStatus = "amended"
)

// IsValid checks if the status is a valid ConsumptionStatus
func (s ConsumptionStatus) IsValid() bool {
	return s == ConsumptionStatusPosted || s == ConsumptionStatusAmended
}

// ConsumptionLine is one item drawn from site stock on a given day
type ConsumptionLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ConsumptionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName      string          `gorm:"type:varchar(200);not null"`
	Unit          string          `gorm:"type:varchar(20);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Purpose       string          `gorm:"type:varchar(500)"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ConsumptionLine) TableName() string {
	return "daily_consumption_lines"
}

// NewConsumptionLine creates a consumption line
func NewConsumptionLine(consumptionID, itemID uuid.UUID, itemName, unit string, quantity decimal.Decimal, purpose string) (*ConsumptionLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Consumed quantity must be positive")
	}

	return &ConsumptionLine{
		ID:            uuid.New(),
		ConsumptionID: consumptionID,
		ItemID:        itemID,
		ItemName:      itemName,
		Unit:          unit,
		Quantity:      quantity,
		Purpose:       purpose,
		CreatedAt:     time.Now(),
	}, nil
}

// DailyConsumption records the material drawn from a site's stock on one
// calendar date. Posting it deducts site stock; amending it reverses the
// previous deductions and applies the new lines.
type DailyConsumption struct {
	shared.BaseAggregateRoot
	SiteID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_consumption_site_date"`
	Date       time.Time         `gorm:"type:date;not null;uniqueIndex:idx_consumption_site_date"`
	Status     ConsumptionStatus `gorm:"type:varchar(20);not null"`
	Remark     string            `gorm:"type:varchar(500)"`
	PostedBy   uuid.UUID         `gorm:"type:uuid;not null"`
	AmendedBy  *uuid.UUID        `gorm:"type:uuid"`
	AmendedAt  *time.Time
	Lines      []ConsumptionLine `gorm:"foreignKey:ConsumptionID;references:ID"`
}

// TableName returns the table name for GORM
func (DailyConsumption) TableName() string {
	return "daily_consumptions"
}

// truncateToDate drops the time-of-day component
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NewDailyConsumption creates a consumption record for a site and date
func NewDailyConsumption(siteID, postedBy uuid.UUID, date time.Time, remark string) (*DailyConsumption, error) {
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if postedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Posted-by user ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Consumption date cannot be empty")
	}
	day := truncateToDate(date)
	if day.After(truncateToDate(time.Now())) {
		return nil, shared.NewDomainError("FUTURE_DATE", "Consumption cannot be posted for a future date")
	}

	return &DailyConsumption{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SiteID:            siteID,
		Date:              day,
		Status:            ConsumptionStatusPosted,
		Remark:            remark,
		PostedBy:          postedBy,
		Lines:             make([]ConsumptionLine, 0),
	}, nil
}

// AddLine appends a consumption line. Each item may appear at most once.
func (c *DailyConsumption) AddLine(itemID uuid.UUID, itemName, unit string, quantity decimal.Decimal, purpose string) error {
	for _, l := range c.Lines {
		if l.ItemID == itemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item already consumed on this record")
		}
	}

	line, err := NewConsumptionLine(c.ID, itemID, itemName, unit, quantity, purpose)
	if err != nil {
		return err
	}
	c.Lines = append(c.Lines, *line)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Amend replaces the record's lines with a new set. The caller reverses
// the old deductions and applies the new ones in the same transaction.
func (c *DailyConsumption) Amend(amendedBy uuid.UUID, lines []ConsumptionLine) error {
	if amendedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_CREATOR", "Amended-by user ID cannot be empty")
	}
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_CONSUMPTION", "Consumption must have at least one line")
	}
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, l := range lines {
		if seen[l.ItemID] {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item appears more than once")
		}
		seen[l.ItemID] = true
	}

	now := time.Now()
	for idx := range lines {
		lines[idx].ConsumptionID = c.ID
	}
	c.Lines = lines
	c.Status = ConsumptionStatusAmended
	c.AmendedBy = &amendedBy
	c.AmendedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()
	return nil
}
