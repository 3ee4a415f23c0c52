package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// SiteStock is the on-hand quantity of one item at one site. The quantity
// can never go negative: receipts add to it, consumption draws it down.
type SiteStock struct {
	shared.BaseAggregateRoot
	SiteID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_site_stock_site_item"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_site_stock_site_item"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SiteStock) TableName() string {
	return "site_stocks"
}

// NewSiteStock creates a stock row for a site and item with zero quantity
func NewSiteStock(siteID, itemID uuid.UUID) (*SiteStock, error) {
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}

	return &SiteStock{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SiteID:            siteID,
		ItemID:            itemID,
		Quantity:          decimal.Zero,
	}, nil
}

// Add increases the on-hand quantity
func (s *SiteStock) Add(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to add must be positive")
	}
	s.Quantity = s.Quantity.Add(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deduct decreases the on-hand quantity, never below zero
func (s *SiteStock) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to deduct must be positive")
	}
	if quantity.GreaterThan(s.Quantity) {
		return shared.ErrInsufficientStock
	}
	s.Quantity = s.Quantity.Sub(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
